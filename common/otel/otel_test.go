package otel_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/common/otel"
	"fieldpro.app/relay/core/config"
)

var _ = Describe("ParseHeaders", func() {
	It("parses comma separated pairs", func() {
		Expect(otel.ParseHeaders("Authorization=Basic abc, x-tenant = fieldpro")).To(Equal(map[string]string{
			"Authorization": "Basic abc",
			"x-tenant":      "fieldpro",
		}))
	})

	It("skips malformed pairs", func() {
		Expect(otel.ParseHeaders("novalue,=empty,k=v")).To(Equal(map[string]string{"k": "v"}))
		Expect(otel.ParseHeaders("")).To(BeEmpty())
	})
})

var _ = Describe("Setup", func() {
	It("is a no-op without an endpoint", func() {
		telemetry, err := otel.Setup(context.Background(), config.OTelConfig{ServiceName: "fieldpro-relay-test"})
		Expect(err).NotTo(HaveOccurred())
		Expect(telemetry).To(BeNil())
	})
})
