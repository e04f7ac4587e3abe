package worker_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/apikey"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/worker"
)

var _ = Describe("HTTPSender", func() {
	var (
		server   *httptest.Server
		received *http.Request
		body     []byte
		status   int
		sender   *worker.HTTPSender
		endpoint *model.WebhookEndpoint
		delivery *model.WebhookDelivery
	)

	BeforeEach(func() {
		status = http.StatusNoContent
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			received = r
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(status)
			_, _ = w.Write([]byte("nope"))
		}))
		DeferCleanup(server.Close)

		sender = worker.NewHTTPSender(worker.HTTPSenderConfig{Timeout: 2 * time.Second})
		endpoint = &model.WebhookEndpoint{ID: 1, URL: server.URL, Secret: "whsec_test", Active: true}
		delivery = &model.WebhookDelivery{ID: 77, EventType: model.EventInvoicePaid, Payload: []byte(`{"type":"invoice.paid"}`)}
	})

	It("posts the payload with a verifiable signature", func() {
		code, err := sender.Send(context.Background(), endpoint, delivery)

		Expect(err).NotTo(HaveOccurred())
		Expect(code).To(Equal(http.StatusNoContent))
		Expect(received.Method).To(Equal(http.MethodPost))
		Expect(received.Header.Get("Content-Type")).To(Equal("application/json"))
		Expect(received.Header.Get(worker.HeaderEvent)).To(Equal("invoice.paid"))
		Expect(received.Header.Get(worker.HeaderID)).To(Equal("77"))
		Expect(string(body)).To(Equal(`{"type":"invoice.paid"}`))

		ts := received.Header.Get(worker.HeaderTimestamp)
		unix, err := strconv.ParseInt(ts, 10, 64)
		Expect(err).NotTo(HaveOccurred())
		Expect(time.Unix(unix, 0)).To(BeTemporally("~", time.Now(), 5*time.Second))
		Expect(apikey.VerifySignature("whsec_test", ts, body, received.Header.Get(worker.HeaderSignature))).To(Succeed())
	})

	It("reports non-2xx responses as errors with the status code", func() {
		status = http.StatusBadGateway

		code, err := sender.Send(context.Background(), endpoint, delivery)

		Expect(code).To(Equal(http.StatusBadGateway))
		Expect(err).To(MatchError(ContainSubstring("endpoint returned 502: nope")))
	})

	It("returns code 0 when the endpoint is unreachable", func() {
		server.Close()

		code, err := sender.Send(context.Background(), endpoint, delivery)

		Expect(code).To(BeZero())
		Expect(err).To(HaveOccurred())
	})
})
