package Controllers

import (
	"testing"
	"time"

	"github.com/yunusabdullaev/crm-clinic-sub000/Billing"
	"github.com/yunusabdullaev/crm-clinic-sub000/Models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func completedVisit() *Models.Visit {
	key := "11111111-2222-3333-4444-555555555555"
	completedAt := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	return &Models.Visit{
		Model:          gorm.Model{ID: 42},
		PatientName:    "Anna",
		DoctorName:     "Dr. Aziz",
		Status:         Models.VisitStatusCompleted,
		DiscountType:   string(Billing.DiscountPercentage),
		DiscountValue:  decimal.NewFromInt(10),
		PaymentType:    string(Billing.PaymentCash),
		Subtotal:       decimal.NewFromInt(25000),
		DiscountAmount: decimal.NewFromInt(2500),
		TotalPrice:     decimal.NewFromInt(22500),
		CompletionKey:  &key,
		CompletedAt:    &completedAt,
		Services: []Models.VisitService{
			{VisitID: 42, ServiceID: 1, ServiceName: "Cleaning", UnitPrice: decimal.NewFromInt(10000), Quantity: 2, Position: 0},
			{VisitID: 42, ServiceID: 2, ServiceName: "Consultation", UnitPrice: decimal.NewFromInt(5000), Quantity: 1, Position: 1},
		},
	}
}

func TestBuildReceiptFromStoredVisit(t *testing.T) {
	visit := completedVisit()

	receipt := buildReceipt(visit)

	assert.Equal(t, uint(42), receipt.VisitID)
	assert.Equal(t, *visit.CompletionKey, receipt.CompletionKey)
	assert.True(t, decimal.NewFromInt(25000).Equal(receipt.Subtotal))
	assert.True(t, decimal.NewFromInt(2500).Equal(receipt.DiscountAmount))
	assert.True(t, decimal.NewFromInt(22500).Equal(receipt.Total))
	assert.Equal(t, Billing.PaymentCash, receipt.PaymentType)
	assert.Equal(t, *visit.CompletedAt, receipt.IssuedAt)

	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "Cleaning", receipt.Lines[0].Name)
	assert.True(t, decimal.NewFromInt(20000).Equal(receipt.Lines[0].LineTotal))
	assert.Equal(t, "Consultation", receipt.Lines[1].Name)
	assert.True(t, decimal.NewFromInt(5000).Equal(receipt.Lines[1].LineTotal))
}

func TestCompletedVisitResponseReplaysStoredKey(t *testing.T) {
	visit := completedVisit()

	receipt, ok := completedVisitResponse(visit, *visit.CompletionKey)
	require.True(t, ok)
	assert.Equal(t, *visit.CompletionKey, receipt.CompletionKey)
	assert.True(t, decimal.NewFromInt(22500).Equal(receipt.Total))
}

func TestCompletedVisitResponseConflicts(t *testing.T) {
	visit := completedVisit()

	// A different key on a completed visit is a conflict, not a rebill.
	_, ok := completedVisitResponse(visit, "99999999-8888-7777-6666-555555555555")
	assert.False(t, ok)

	// An omitted key never matches, even against a stored one.
	_, ok = completedVisitResponse(visit, "")
	assert.False(t, ok)

	// A visit completed without a stored key can only conflict.
	visit.CompletionKey = nil
	_, ok = completedVisitResponse(visit, "anything")
	assert.False(t, ok)
}
