package Billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() CompletionForm {
	return CompletionForm{
		Diagnosis:   "Caries on 36",
		Items:       []LineItem{{ServiceID: 1, Quantity: 2}, {ServiceID: 2, Quantity: 1}},
		Discount:    DiscountSpec{Type: DiscountNone},
		PaymentType: PaymentCash,
	}
}

func TestCompleteVisitReceipt(t *testing.T) {
	engine := NewEngine(testCatalog())

	form := validForm()
	form.Discount = DiscountSpec{Type: DiscountPercentage, Value: decimal.NewFromInt(10)}

	receipt, err := engine.CompleteVisit(11, "key-1", form, true)
	require.NoError(t, err)

	assert.Equal(t, uint(11), receipt.VisitID)
	assert.Equal(t, "key-1", receipt.CompletionKey)
	assert.True(t, decimal.NewFromInt(25000).Equal(receipt.Subtotal))
	assert.True(t, decimal.NewFromInt(2500).Equal(receipt.DiscountAmount))
	assert.True(t, decimal.NewFromInt(22500).Equal(receipt.Total))
	assert.Equal(t, PaymentCash, receipt.PaymentType)
	assert.False(t, receipt.IssuedAt.IsZero())

	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "Cleaning", receipt.Lines[0].Name)
	assert.True(t, decimal.NewFromInt(20000).Equal(receipt.Lines[0].LineTotal))
	assert.Equal(t, "Consultation", receipt.Lines[1].Name)
}

func TestCompleteVisitGeneratesCompletionKey(t *testing.T) {
	engine := NewEngine(testCatalog())

	receipt, err := engine.CompleteVisit(1, "", validForm(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.CompletionKey)
}

func TestCompleteVisitDiscountNotPermitted(t *testing.T) {
	engine := NewEngine(testCatalog())

	// An unpermitted discount must fail loudly, never be dropped silently.
	for _, discount := range []DiscountSpec{
		{Type: DiscountPercentage, Value: decimal.NewFromInt(5)},
		{Type: DiscountFixed, Value: decimal.NewFromInt(1)},
	} {
		form := validForm()
		form.Discount = discount
		_, err := engine.CompleteVisit(1, "", form, false)
		assert.ErrorIs(t, err, ErrDiscountNotPermitted)
	}

	// A "none" discount needs no grant.
	_, err := engine.CompleteVisit(1, "", validForm(), false)
	assert.NoError(t, err)
}

func TestCompleteVisitValidation(t *testing.T) {
	engine := NewEngine(testCatalog())

	cases := []struct {
		name     string
		mutate   func(*CompletionForm)
		expected error
	}{
		{
			name:     "empty diagnosis",
			mutate:   func(f *CompletionForm) { f.Diagnosis = "" },
			expected: ErrEmptyDiagnosis,
		},
		{
			name:     "no services",
			mutate:   func(f *CompletionForm) { f.Items = nil },
			expected: ErrNoServicesSelected,
		},
		{
			name:     "zero quantity",
			mutate:   func(f *CompletionForm) { f.Items[0].Quantity = 0 },
			expected: ErrInvalidQuantity,
		},
		{
			name:     "unknown service",
			mutate:   func(f *CompletionForm) { f.Items[0].ServiceID = 404 },
			expected: ErrUnknownService,
		},
		{
			name:     "bad payment type",
			mutate:   func(f *CompletionForm) { f.PaymentType = "crypto" },
			expected: ErrInvalidPaymentType,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			form := validForm()
			c.mutate(&form)
			_, err := engine.CompleteVisit(1, "", form, true)
			assert.ErrorIs(t, err, c.expected)
		})
	}
}

func TestValidateDraftSkipsEmptinessChecks(t *testing.T) {
	engine := NewEngine(testCatalog())

	// A draft with nothing filled in yet is fine.
	err := engine.ValidateDraft(CompletionForm{}, false)
	assert.NoError(t, err)

	// The discount permission rule still applies to drafts.
	draft := CompletionForm{Discount: DiscountSpec{Type: DiscountPercentage, Value: decimal.NewFromInt(10)}}
	err = engine.ValidateDraft(draft, false)
	assert.ErrorIs(t, err, ErrDiscountNotPermitted)

	// So do quantity bounds.
	draft = CompletionForm{Items: []LineItem{{ServiceID: 1, Quantity: 0}}}
	err = engine.ValidateDraft(draft, true)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
