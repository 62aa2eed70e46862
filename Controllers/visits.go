package Controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/yunusabdullaev/crm-clinic-sub000/Billing"
	"github.com/yunusabdullaev/crm-clinic-sub000/FirebaseMessaging"
	"github.com/yunusabdullaev/crm-clinic-sub000/Models"
	"github.com/yunusabdullaev/crm-clinic-sub000/SSE"
	"github.com/yunusabdullaev/crm-clinic-sub000/Utils/Token"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VisitFormInput is the wire shape of both draft saves and final
// completions.
type VisitFormInput struct {
	VisitID       uint               `json:"visit_id" binding:"required"`
	CompletionKey string             `json:"completion_key"`
	Diagnosis     string             `json:"diagnosis"`
	Services      []Billing.LineItem `json:"services"`
	DiscountType  string             `json:"discount_type"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
	PaymentType   string             `json:"payment_type"`
	AffectedTeeth []string           `json:"affected_teeth"`
	PlanSteps     []Billing.PlanStep `json:"plan_steps"`
	Comment       string             `json:"comment"`
}

func (input *VisitFormInput) toForm() Billing.CompletionForm {
	discountType := Billing.DiscountType(input.DiscountType)
	if input.DiscountType == "" {
		discountType = Billing.DiscountNone
	}
	return Billing.CompletionForm{
		Diagnosis:     input.Diagnosis,
		Items:         input.Services,
		Discount:      Billing.DiscountSpec{Type: discountType, Value: input.DiscountValue},
		PaymentType:   Billing.PaymentType(input.PaymentType),
		AffectedTeeth: input.AffectedTeeth,
		PlanSteps:     input.PlanSteps,
		Comment:       input.Comment,
	}
}

func billingErrorStatus(err error) int {
	if errors.Is(err, Billing.ErrDiscountNotPermitted) {
		return http.StatusForbidden
	}
	return http.StatusBadRequest
}

// StartVisit opens a clinical encounter between the calling doctor and a
// patient.
func StartVisit(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	doctor, err := Models.GetDoctorByUserID(user_id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Doctor profile not found"})
		return
	}

	var patient Models.Patient
	if err := getScopedDB(c, "").First(&patient, input.PatientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	visit := Models.Visit{
		PatientID:     patient.ID,
		PatientName:   patient.Name,
		DoctorID:      doctor.ID,
		DoctorName:    doctor.Name,
		Status:        Models.VisitStatusStarted,
		DiscountType:  string(Billing.DiscountNone),
		ClinicGroupID: patient.ClinicGroupID,
	}
	if err := Models.DB.Create(&visit).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	SSE.NotifyVisitsChanged()
	c.JSON(http.StatusOK, visit)
}

// resolveLineItems prices the incoming selection. Services already drafted
// on the visit keep the unit price captured when they were first added; new
// ids are priced from the current catalog and must be active.
func resolveLineItems(c *gin.Context, visit *Models.Visit, items []Billing.LineItem) (Billing.Catalog, []Models.VisitService, error) {
	stored := make(map[uint]Models.VisitService)
	for _, row := range visit.Services {
		stored[row.ServiceID] = row
	}

	catalog := Billing.Catalog{}
	rows := make([]Models.VisitService, 0, len(items))
	for position, item := range items {
		var name string
		var price decimal.Decimal

		if row, ok := stored[item.ServiceID]; ok {
			name = row.ServiceName
			price = row.UnitPrice
		} else {
			var service Models.Service
			err := getScopedDB(c, "").Where("id = ? AND is_active = ?", item.ServiceID, true).First(&service).Error
			if err != nil {
				return nil, nil, Billing.ErrUnknownService
			}
			name = service.Name
			price = service.Price
		}

		catalog[item.ServiceID] = Billing.CatalogService{
			ID:       item.ServiceID,
			Name:     name,
			Price:    price,
			IsActive: true,
		}
		rows = append(rows, Models.VisitService{
			VisitID:     visit.ID,
			ServiceID:   item.ServiceID,
			ServiceName: name,
			UnitPrice:   price,
			Quantity:    item.Quantity,
			Position:    position,
		})
	}
	return catalog, rows, nil
}

func loadVisitForDoctor(c *gin.Context, visitID uint) (*Models.Visit, error) {
	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		return nil, err
	}
	doctor, err := Models.GetDoctorByUserID(user_id)
	if err != nil {
		return nil, errors.New("Doctor profile not found")
	}

	var visit Models.Visit
	err = getScopedDB(c, "visits").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("PlanSteps", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("XrayImages").
		First(&visit, visitID).Error
	if err != nil {
		return nil, errors.New("Visit not found")
	}
	if visit.DoctorID != doctor.ID {
		return nil, errors.New("Visit belongs to another doctor")
	}
	return &visit, nil
}

func replaceVisitChildren(tx *gorm.DB, visit *Models.Visit, rows []Models.VisitService, steps []Billing.PlanStep) error {
	if err := tx.Unscoped().Delete(&Models.VisitService{}, "visit_id = ?", visit.ID).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Delete(&Models.PlanStep{}, "visit_id = ?", visit.ID).Error; err != nil {
		return err
	}
	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(steps) > 0 {
		planSteps := make([]Models.PlanStep, 0, len(steps))
		for position, step := range steps {
			planSteps = append(planSteps, Models.PlanStep{
				VisitID:     visit.ID,
				Description: step.Description,
				Completed:   step.Completed,
				Position:    position,
			})
		}
		if err := tx.Create(&planSteps).Error; err != nil {
			return err
		}
	}
	return nil
}

// SaveVisitDraft persists partial completion-form state on a started visit.
// Empty diagnosis and an empty selection are allowed here; the discount
// permission rule is not.
func SaveVisitDraft(c *gin.Context) {
	var input VisitFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	normalized, err := Billing.NormalizeLineItems(input.Services)
	if err != nil {
		c.JSON(billingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	input.Services = normalized

	visit, err := loadVisitForDoctor(c, input.VisitID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if visit.IsCompleted() {
		c.JSON(http.StatusConflict, gin.H{"error": "Visit already completed"})
		return
	}

	catalog, rows, err := resolveLineItems(c, visit, input.Services)
	if err != nil {
		c.JSON(billingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	canDiscount := Models.DoctorCanDiscount(visit.DoctorID)
	engine := Billing.NewEngine(catalog)
	if err := engine.ValidateDraft(input.toForm(), canDiscount); err != nil {
		c.JSON(billingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	visit.Diagnosis = input.Diagnosis
	visit.DiscountType = input.DiscountType
	if visit.DiscountType == "" {
		visit.DiscountType = string(Billing.DiscountNone)
	}
	visit.DiscountValue = input.DiscountValue
	visit.PaymentType = input.PaymentType
	visit.Comment = input.Comment
	visit.SetAffectedTeeth(input.AffectedTeeth)

	result := tx.Model(&Models.Visit{}).
		Where("id = ? AND status = ?", visit.ID, Models.VisitStatusStarted).
		Updates(map[string]interface{}{
			"diagnosis":      visit.Diagnosis,
			"discount_type":  visit.DiscountType,
			"discount_value": visit.DiscountValue,
			"payment_type":   visit.PaymentType,
			"comment":        visit.Comment,
			"affected_teeth": visit.AffectedTeeth,
		})
	if result.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to save draft"})
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusConflict, gin.H{"error": "Visit already completed"})
		return
	}

	if err := replaceVisitChildren(tx, visit, rows, input.PlanSteps); err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to save draft items"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	SSE.NotifyVisitsChanged()
	c.JSON(http.StatusOK, gin.H{"message": "Draft Saved Successfully"})
}

// CompleteVisit finishes a started visit: validates the form, prices it,
// stores the receipt and marks the visit terminal. Replaying the same
// completion key returns the already issued receipt instead of billing
// twice.
func CompleteVisit(c *gin.Context) {
	var input VisitFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	normalized, err := Billing.NormalizeLineItems(input.Services)
	if err != nil {
		c.JSON(billingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	input.Services = normalized

	visit, err := loadVisitForDoctor(c, input.VisitID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if visit.IsCompleted() {
		if receipt, ok := completedVisitResponse(visit, input.CompletionKey); ok {
			c.JSON(http.StatusOK, receipt)
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Visit already completed"})
		return
	}

	catalog, rows, err := resolveLineItems(c, visit, input.Services)
	if err != nil {
		c.JSON(billingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	// The discount grant is read fresh from the database here; whatever the
	// client believes about its own permission is irrelevant.
	canDiscount := Models.DoctorCanDiscount(visit.DoctorID)

	engine := Billing.NewEngine(catalog)
	receipt, err := engine.CompleteVisit(visit.ID, input.CompletionKey, input.toForm(), canDiscount)
	if err != nil {
		c.JSON(billingErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	now := time.Now()
	visit.SetAffectedTeeth(input.AffectedTeeth)
	discountType := input.DiscountType
	if discountType == "" {
		discountType = string(Billing.DiscountNone)
	}
	// The status guard makes completion first-writer-wins: a submission that
	// raced past the check above finds the row already terminal and updates
	// nothing.
	result := tx.Model(&Models.Visit{}).
		Where("id = ? AND status = ?", visit.ID, Models.VisitStatusStarted).
		Updates(map[string]interface{}{
			"status":          Models.VisitStatusCompleted,
			"diagnosis":       input.Diagnosis,
			"discount_type":   discountType,
			"discount_value":  input.DiscountValue,
			"payment_type":    input.PaymentType,
			"comment":         input.Comment,
			"affected_teeth":  visit.AffectedTeeth,
			"subtotal":        receipt.Subtotal,
			"discount_amount": receipt.DiscountAmount,
			"total_price":     receipt.Total,
			"completion_key":  receipt.CompletionKey,
			"completed_at":    now,
		})
	if result.Error != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to complete visit"})
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		var current Models.Visit
		err := Models.DB.
			Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
			First(&current, visit.ID).Error
		if err == nil && current.IsCompleted() {
			if stored, ok := completedVisitResponse(&current, input.CompletionKey); ok {
				c.JSON(http.StatusOK, stored)
				return
			}
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Visit already completed"})
		return
	}

	if err := replaceVisitChildren(tx, visit, rows, input.PlanSteps); err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to save visit items"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	SSE.NotifyVisitsChanged()
	go func(groupID uint, patientName string, total decimal.Decimal) {
		tokens, err := Models.GetGroupFCMs(groupID)
		if err != nil || len(tokens) == 0 {
			return
		}
		body := fmt.Sprintf("Visit for %s completed, total %s", patientName, total.StringFixed(2))
		if err := FirebaseMessaging.SendMessage(Models.NotificationRequest{
			Tokens: tokens,
			Title:  "Visit Completed",
			Body:   body,
		}); err != nil {
			log.Println(err)
		}
	}(visit.ClinicGroupID, visit.PatientName, receipt.Total)

	c.JSON(http.StatusOK, receipt)
}

// completedVisitResponse decides how to answer a submission against an
// already completed visit. Replaying the completion key the visit was
// finished with returns the receipt issued back then; an omitted or
// different key is a conflict, never a second billing.
func completedVisitResponse(visit *Models.Visit, completionKey string) (*Billing.Receipt, bool) {
	if visit.CompletionKey == nil || completionKey == "" {
		return nil, false
	}
	if *visit.CompletionKey != completionKey {
		return nil, false
	}
	return buildReceipt(visit), true
}

// buildReceipt reconstructs the receipt of a completed visit from its stored
// rows.
func buildReceipt(visit *Models.Visit) *Billing.Receipt {
	lines := make([]Billing.ReceiptLine, 0, len(visit.Services))
	for _, row := range visit.Services {
		quantity := decimal.NewFromInt(int64(row.Quantity))
		lines = append(lines, Billing.ReceiptLine{
			ServiceID: row.ServiceID,
			Name:      row.ServiceName,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			LineTotal: row.UnitPrice.Mul(quantity),
		})
	}

	receipt := &Billing.Receipt{
		VisitID:        visit.ID,
		Lines:          lines,
		Subtotal:       visit.Subtotal,
		DiscountAmount: visit.DiscountAmount,
		Total:          visit.TotalPrice,
		PaymentType:    Billing.PaymentType(visit.PaymentType),
	}
	if visit.CompletionKey != nil {
		receipt.CompletionKey = *visit.CompletionKey
	}
	if visit.CompletedAt != nil {
		receipt.IssuedAt = *visit.CompletedAt
	}
	return receipt
}

func FetchPatientVisits(c *gin.Context) {
	var input struct {
		PatientID uint `json:"patient_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var visits []Models.Visit
	err := getScopedDB(c, "visits").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("visits.patient_id = ?", input.PatientID).
		Order("visits.created_at DESC").
		Find(&visits).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, visits)
}

func FetchVisit(c *gin.Context) {
	var input struct {
		VisitID uint `json:"visit_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var visit Models.Visit
	err := getScopedDB(c, "visits").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("PlanSteps", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("XrayImages").
		First(&visit, input.VisitID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Visit not found"})
		return
	}

	var output struct {
		Visit         Models.Visit     `json:"visit"`
		AffectedTeeth []string         `json:"affected_teeth"`
		Receipt       *Billing.Receipt `json:"receipt,omitempty"`
	}
	output.Visit = visit
	output.AffectedTeeth = visit.AffectedTeethList()
	if visit.IsCompleted() {
		output.Receipt = buildReceipt(&visit)
	}
	c.JSON(http.StatusOK, output)
}
