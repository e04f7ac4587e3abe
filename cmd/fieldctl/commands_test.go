package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/apikey"
)

const testKey = "fp_abcdefabcdef.c2VjcmV0LXNlY3JldC1zZWNyZXQ"

func run(stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func header(out, name string) string {
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, name+": "); ok {
			return v
		}
	}
	return ""
}

var _ = Describe("fieldctl", func() {
	It("signs a body that the receiving side verifies", func() {
		body := `{"action":"availability.check","data":{}}`
		out, err := run(body, "sign", "--key", testKey)
		Expect(err).NotTo(HaveOccurred())

		ts := header(out, "X-Timestamp")
		sig := header(out, "X-Signature")
		Expect(header(out, "X-API-Key")).To(Equal(testKey))

		_, secret, err := apikey.Parse(testKey)
		Expect(err).NotTo(HaveOccurred())
		Expect(apikey.VerifySignature(secret, ts, []byte(body), sig)).To(Succeed())
	})

	Describe("verify", func() {
		It("accepts a matching signature", func() {
			ts := fmt.Sprintf("%d", time.Now().Unix())
			sig := apikey.Sign("whsec", ts, []byte(`{"type":"contact.created"}`))

			out, err := run(`{"type":"contact.created"}`, "verify", "--secret", "whsec", "--timestamp", ts, "--signature", "sha256="+sig, "--tolerance", "5m")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("signature ok"))
		})

		It("rejects a modified body", func() {
			ts := fmt.Sprintf("%d", time.Now().Unix())
			sig := apikey.Sign("whsec", ts, []byte(`{"type":"contact.created"}`))

			_, err := run(`{"type":"contact.deleted"}`, "verify", "--secret", "whsec", "--timestamp", ts, "--signature", sig)
			Expect(err).To(MatchError(apikey.ErrInvalidSignature))
		})

		It("rejects stale timestamps when a tolerance is given", func() {
			ts := fmt.Sprintf("%d", time.Now().Add(-time.Hour).Unix())
			sig := apikey.Sign("whsec", ts, nil)

			_, err := run("", "verify", "--secret", "whsec", "--timestamp", ts, "--signature", sig, "--tolerance", "5m")
			Expect(err).To(MatchError(apikey.ErrStaleTimestamp))
		})
	})

	Describe("send", func() {
		It("posts a signed envelope and prints the rate limit headers", func() {
			var got *http.Request
			var gotBody []byte
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r
				gotBody, _ = readAll(r)
				w.Header().Set("X-RateLimit-Remaining", "59")
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"action":"contact.create"}`))
			}))
			defer server.Close()

			out, err := run("", "send", "contact.create", "--key", testKey, "--url", server.URL, "--data", `{"first_name":"Grace"}`)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("201 Created"))
			Expect(out).To(ContainSubstring("X-RateLimit-Remaining: 59"))

			var envelope map[string]any
			Expect(json.Unmarshal(gotBody, &envelope)).To(Succeed())
			Expect(envelope["action"]).To(Equal("contact.create"))

			_, secret, _ := apikey.Parse(testKey)
			Expect(apikey.VerifySignature(secret, got.Header.Get("X-Timestamp"), gotBody, got.Header.Get("X-Signature"))).To(Succeed())
		})

		It("fails on invalid data", func() {
			_, err := run("", "send", "contact.create", "--key", testKey, "--data", `{`)
			Expect(err).To(HaveOccurred())
		})
	})

	It("prints the schema of one action", func() {
		out, err := run("", "schema", "event.create")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring(`"scope": "events:create"`))

		_, err = run("", "schema", "invoice.create")
		Expect(err).To(MatchError(ContainSubstring("unknown action")))
	})
})

func readAll(r *http.Request) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(r.Body)
	return buf.Bytes(), err
}
