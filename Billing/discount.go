package Billing

import (
	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// DiscountSpec describes the discount applied to a visit. For percentage the
// value is interpreted as 0-100, for fixed it is an absolute currency amount,
// for none it is ignored.
type DiscountSpec struct {
	Type  DiscountType    `json:"discount_type"`
	Value decimal.Decimal `json:"discount_value"`
}

func (d DiscountSpec) IsNone() bool {
	return d.Type == DiscountNone || d.Type == ""
}

// CatalogService is the billing view of a clinic service.
type CatalogService struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Duration uint            `json:"duration"`
	IsActive bool            `json:"is_active"`
}

// Catalog indexes services by id for pricing.
type Catalog map[uint]CatalogService

func (c Catalog) Lookup(serviceID uint) (CatalogService, bool) {
	service, ok := c[serviceID]
	return service, ok
}

var oneHundred = decimal.NewFromInt(100)

// Subtotal prices the line items against the catalog. Every referenced
// service must exist in the catalog.
func Subtotal(items []LineItem, catalog Catalog) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, item := range items {
		service, ok := catalog.Lookup(item.ServiceID)
		if !ok {
			return decimal.Zero, ErrUnknownService
		}
		quantity := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(service.Price.Mul(quantity))
	}
	return subtotal, nil
}

// ComputeTotal applies the discount to the priced line items. Percentage
// values are clamped to [0,100] so the result can never go negative through
// the percentage path; fixed discounts larger than the subtotal floor at
// zero. The result is rounded half-up to the smallest currency unit at the
// final step only.
func ComputeTotal(items []LineItem, catalog Catalog, discount DiscountSpec) (decimal.Decimal, error) {
	subtotal, err := Subtotal(items, catalog)
	if err != nil {
		return decimal.Zero, err
	}
	if discount.Value.IsNegative() {
		return decimal.Zero, ErrInvalidDiscount
	}

	var discountAmount decimal.Decimal
	switch discount.Type {
	case DiscountPercentage:
		percent := discount.Value
		if percent.GreaterThan(oneHundred) {
			percent = oneHundred
		}
		discountAmount = subtotal.Mul(percent).Div(oneHundred)
	case DiscountFixed:
		discountAmount = discount.Value
	default:
		discountAmount = decimal.Zero
	}

	total := subtotal.Sub(discountAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return total.Round(2), nil
}
