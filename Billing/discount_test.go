package Billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		1: {ID: 1, Name: "Cleaning", Price: decimal.NewFromInt(10000), Duration: 30, IsActive: true},
		2: {ID: 2, Name: "Consultation", Price: decimal.NewFromInt(5000), Duration: 15, IsActive: true},
		3: {ID: 3, Name: "Filling", Price: decimal.RequireFromString("7500.50"), Duration: 45, IsActive: true},
	}
}

func TestComputeTotalNoDiscount(t *testing.T) {
	items := []LineItem{{ServiceID: 1, Quantity: 2}, {ServiceID: 2, Quantity: 1}}

	total, err := ComputeTotal(items, testCatalog(), DiscountSpec{Type: DiscountNone})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25000).Equal(total), "got %s", total)
}

func TestComputeTotalPercentage(t *testing.T) {
	items := []LineItem{{ServiceID: 1, Quantity: 2}, {ServiceID: 2, Quantity: 1}}

	cases := []struct {
		percent  string
		expected string
	}{
		{percent: "0", expected: "25000"},
		{percent: "10", expected: "22500"},
		{percent: "25", expected: "18750"},
		{percent: "50", expected: "12500"},
		{percent: "100", expected: "0"},
		{percent: "150", expected: "0"}, // clamped to a full discount
	}

	for _, c := range cases {
		discount := DiscountSpec{Type: DiscountPercentage, Value: decimal.RequireFromString(c.percent)}
		total, err := ComputeTotal(items, testCatalog(), discount)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString(c.expected).Equal(total),
			"percent %s: expected %s, got %s", c.percent, c.expected, total)
	}
}

func TestComputeTotalPercentageMonotonic(t *testing.T) {
	items := []LineItem{{ServiceID: 1, Quantity: 3}, {ServiceID: 3, Quantity: 2}}

	previous := decimal.NewFromInt(1 << 40)
	for percent := int64(0); percent <= 100; percent += 5 {
		discount := DiscountSpec{Type: DiscountPercentage, Value: decimal.NewFromInt(percent)}
		total, err := ComputeTotal(items, testCatalog(), discount)
		require.NoError(t, err)
		assert.True(t, total.LessThanOrEqual(previous),
			"total must not grow as the percentage grows: %d%% -> %s", percent, total)
		previous = total
	}
}

func TestComputeTotalFixed(t *testing.T) {
	items := []LineItem{{ServiceID: 1, Quantity: 2}, {ServiceID: 2, Quantity: 1}}

	total, err := ComputeTotal(items, testCatalog(), DiscountSpec{Type: DiscountFixed, Value: decimal.NewFromInt(4000)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(21000).Equal(total))

	// A fixed discount above the subtotal floors at zero, never negative.
	total, err = ComputeTotal(items, testCatalog(), DiscountSpec{Type: DiscountFixed, Value: decimal.NewFromInt(30000)})
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "got %s", total)
}

func TestComputeTotalRoundsOnceAtTheEnd(t *testing.T) {
	// 7500.50 * 3 = 22501.50; 7% off = 20926.395 -> 20926.40 half-up.
	items := []LineItem{{ServiceID: 3, Quantity: 3}}

	discount := DiscountSpec{Type: DiscountPercentage, Value: decimal.NewFromInt(7)}
	total, err := ComputeTotal(items, testCatalog(), discount)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("20926.40").Equal(total), "got %s", total)
}

func TestComputeTotalNegativeDiscountRejected(t *testing.T) {
	items := []LineItem{{ServiceID: 2, Quantity: 1}}

	discount := DiscountSpec{Type: DiscountFixed, Value: decimal.NewFromInt(-100)}
	_, err := ComputeTotal(items, testCatalog(), discount)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestComputeTotalUnknownService(t *testing.T) {
	items := []LineItem{{ServiceID: 99, Quantity: 1}}

	_, err := ComputeTotal(items, testCatalog(), DiscountSpec{Type: DiscountNone})
	assert.ErrorIs(t, err, ErrUnknownService)
}
