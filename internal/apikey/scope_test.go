package apikey_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/apikey"
)

var _ = Describe("Scopes", func() {
	DescribeTable("Allows",
		func(granted []string, required string, want bool) {
			Expect(apikey.Allows(granted, required)).To(Equal(want))
		},
		Entry("exact match", []string{"contacts:create"}, "contacts:create", true),
		Entry("global wildcard", []string{"*"}, "events:delete", true),
		Entry("resource wildcard", []string{"events:*"}, "events:read", true),
		Entry("resource wildcard on another resource", []string{"events:*"}, "contacts:create", false),
		Entry("different verb", []string{"contacts:create"}, "contacts:delete", false),
		Entry("no scopes", []string{}, "events:read", false),
		Entry("prefix is not a wildcard", []string{"event:*"}, "events:read", false),
	)

	Describe("ValidateScopes", func() {
		It("should dedupe and sort known scopes", func() {
			scopes, err := apikey.ValidateScopes([]string{"events:read", "contacts:*", "events:read"})
			Expect(err).NotTo(HaveOccurred())
			Expect(scopes).To(Equal([]string{"contacts:*", "events:read"}))
		})

		It("should accept the global wildcard", func() {
			scopes, err := apikey.ValidateScopes([]string{"*"})
			Expect(err).NotTo(HaveOccurred())
			Expect(scopes).To(Equal([]string{"*"}))
		})

		It("should reject unknown scopes", func() {
			_, err := apikey.ValidateScopes([]string{"invoices:create"})
			Expect(err).To(HaveOccurred())
			_, err = apikey.ValidateScopes([]string{"invoices:*"})
			Expect(err).To(HaveOccurred())
		})

		It("should reject an empty list", func() {
			_, err := apikey.ValidateScopes(nil)
			Expect(err).To(HaveOccurred())
		})
	})
})
