package model_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/model"
)

var _ = Describe("ComputeTotals", func() {
	It("sums quantity times unit price and applies tax", func() {
		totals := model.ComputeTotals([]model.LineItem{
			{Description: "Call-out", Quantity: 2, UnitPriceCents: 1500},
			{Description: "Labour", Quantity: 1.5, UnitPriceCents: 8000},
		}, 825)

		Expect(totals).To(Equal(model.Totals{
			SubtotalCents: 15000,
			TaxRateBps:    825,
			TaxCents:      1238,
			TotalCents:    16238,
		}))
	})

	It("rounds each line to whole cents", func() {
		item := model.LineItem{Quantity: 0.333, UnitPriceCents: 100}
		Expect(item.TotalCents()).To(Equal(int64(33)))

		item = model.LineItem{Quantity: 0.125, UnitPriceCents: 100}
		Expect(item.TotalCents()).To(Equal(int64(13)))
	})

	It("returns zeros for an empty quote", func() {
		Expect(model.ComputeTotals(nil, 1000)).To(Equal(model.Totals{TaxRateBps: 1000}))
	})
})

var _ = Describe("Event", func() {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	event := model.Event{StartsAt: start, EndsAt: start.Add(time.Hour)}

	DescribeTable("Overlaps uses half-open ranges",
		func(from, to time.Duration, want bool) {
			Expect(event.Overlaps(start.Add(from), start.Add(to))).To(Equal(want))
		},
		Entry("ends when the event starts", -time.Hour, time.Duration(0), false),
		Entry("starts when the event ends", time.Hour, 2*time.Hour, false),
		Entry("inside", 15*time.Minute, 30*time.Minute, true),
		Entry("straddles the start", -30*time.Minute, 30*time.Minute, true),
		Entry("covers the event", -time.Hour, 2*time.Hour, true),
	)
})

var _ = Describe("JSON ids", func() {
	It("encodes ids as strings so JavaScript callers keep full precision", func() {
		contactID := int64(1234567890123456789)
		raw, err := json.Marshal(model.Event{ID: 9007199254740993, ContactID: &contactID})
		Expect(err).NotTo(HaveOccurred())

		var decoded map[string]any
		Expect(json.Unmarshal(raw, &decoded)).To(Succeed())
		Expect(decoded["id"]).To(Equal("9007199254740993"))
		Expect(decoded["contact_id"]).To(Equal("1234567890123456789"))
	})
})
