package Billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentCash PaymentType = "cash"
	PaymentCard PaymentType = "card"
)

type PlanStep struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// CompletionForm is everything the doctor fills in before finishing a visit.
type CompletionForm struct {
	Diagnosis     string       `json:"diagnosis"`
	Items         []LineItem   `json:"services"`
	Discount      DiscountSpec `json:"discount"`
	PaymentType   PaymentType  `json:"payment_type"`
	AffectedTeeth []string     `json:"affected_teeth"`
	PlanSteps     []PlanStep   `json:"plan_steps"`
	Comment       string       `json:"comment"`
	XrayImageRefs []string     `json:"xray_images"`
}

type ReceiptLine struct {
	ServiceID uint            `json:"service_id"`
	Name      string          `json:"name"`
	Quantity  uint            `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Receipt is the itemized outcome of a completed visit.
type Receipt struct {
	VisitID        uint            `json:"visit_id"`
	CompletionKey  string          `json:"completion_key"`
	Lines          []ReceiptLine   `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
	PaymentType    PaymentType     `json:"payment_type"`
	IssuedAt       time.Time       `json:"issued_at"`
}

// Engine validates visit-completion forms and prices them against a catalog.
// The canDiscount flag must come from the authoritative store at submission
// time, never from the request itself.
type Engine struct {
	Catalog Catalog
}

func NewEngine(catalog Catalog) *Engine {
	return &Engine{Catalog: catalog}
}

// NewCompletionKey generates the client-replayable idempotency token for one
// completion attempt.
func NewCompletionKey() string {
	return uuid.NewString()
}

func validateQuantities(items []LineItem) error {
	for _, item := range items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

func validateDiscount(discount DiscountSpec, canDiscount bool) error {
	if discount.Value.IsNegative() {
		return ErrInvalidDiscount
	}
	if discount.IsNone() {
		return nil
	}
	if !canDiscount {
		return ErrDiscountNotPermitted
	}
	return nil
}

// ValidateDraft checks a partially filled form. Empty diagnosis and empty
// line items are allowed on drafts; the discount permission rule and
// quantity bounds still apply.
func (e *Engine) ValidateDraft(form CompletionForm, canDiscount bool) error {
	if err := validateQuantities(form.Items); err != nil {
		return err
	}
	if _, err := Subtotal(form.Items, e.Catalog); err != nil {
		return err
	}
	return validateDiscount(form.Discount, canDiscount)
}

// ValidateCompletion checks a form for final submission. Fail fast: a
// validation error means nothing may be written or sent anywhere.
func (e *Engine) ValidateCompletion(form CompletionForm, canDiscount bool) error {
	if form.Diagnosis == "" {
		return ErrEmptyDiagnosis
	}
	if len(form.Items) == 0 {
		return ErrNoServicesSelected
	}
	if err := validateQuantities(form.Items); err != nil {
		return err
	}
	if _, err := Subtotal(form.Items, e.Catalog); err != nil {
		return err
	}
	if form.PaymentType != PaymentCash && form.PaymentType != PaymentCard {
		return ErrInvalidPaymentType
	}
	return validateDiscount(form.Discount, canDiscount)
}

// CompleteVisit validates the form and produces the receipt for it. The
// completion key is kept on the receipt so a replayed submission can be
// answered with the already issued receipt instead of billing twice.
func (e *Engine) CompleteVisit(visitID uint, completionKey string, form CompletionForm, canDiscount bool) (*Receipt, error) {
	if err := e.ValidateCompletion(form, canDiscount); err != nil {
		return nil, err
	}

	subtotal, err := Subtotal(form.Items, e.Catalog)
	if err != nil {
		return nil, err
	}
	total, err := ComputeTotal(form.Items, e.Catalog, form.Discount)
	if err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, 0, len(form.Items))
	for _, item := range form.Items {
		service, _ := e.Catalog.Lookup(item.ServiceID)
		quantity := decimal.NewFromInt(int64(item.Quantity))
		lines = append(lines, ReceiptLine{
			ServiceID: item.ServiceID,
			Name:      service.Name,
			Quantity:  item.Quantity,
			UnitPrice: service.Price,
			LineTotal: service.Price.Mul(quantity),
		})
	}

	if completionKey == "" {
		completionKey = NewCompletionKey()
	}

	return &Receipt{
		VisitID:        visitID,
		CompletionKey:  completionKey,
		Lines:          lines,
		Subtotal:       subtotal,
		DiscountAmount: subtotal.Sub(total),
		Total:          total,
		PaymentType:    form.PaymentType,
		IssuedAt:       time.Now(),
	}, nil
}
