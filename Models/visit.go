package Models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	VisitStatusStarted   = "started"
	VisitStatusCompleted = "completed"
)

// Visit is one clinical encounter, progressing from started to completed.
// While started it doubles as the draft of the completion form; completed is
// terminal.
type Visit struct {
	gorm.Model
	PatientID      uint            `json:"patient_id"`
	PatientName    string          `json:"patient_name"`
	DoctorID       uint            `json:"doctor_id"`
	DoctorName     string          `json:"doctor_name"`
	Status         string          `json:"status" gorm:"default:started"`
	Diagnosis      string          `json:"diagnosis"`
	DiscountType   string          `json:"discount_type" gorm:"default:none"`
	DiscountValue  decimal.Decimal `json:"discount_value" gorm:"type:numeric(12,2)"`
	PaymentType    string          `json:"payment_type"`
	Comment        string          `json:"comment"`
	AffectedTeeth  string          `json:"affected_teeth"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2)"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(12,2)"`
	TotalPrice     decimal.Decimal `json:"total_price" gorm:"type:numeric(12,2)"`
	CompletionKey  *string         `json:"completion_key" gorm:"uniqueIndex;default:null"`
	CompletedAt    *time.Time      `json:"completed_at" gorm:"default:null"`
	ReminderSent   bool            `json:"reminder_sent"`
	Services       []VisitService  `json:"services"`
	PlanSteps      []PlanStep      `json:"plan_steps"`
	XrayImages     []XrayImage     `json:"xray_images"`
	ClinicGroupID  uint            `json:"clinic_group_id"`
}

// VisitService is one billed line item. UnitPrice is captured from the
// catalog when the service is first added, so later catalog edits or
// deactivations never reprice an open draft.
type VisitService struct {
	gorm.Model
	VisitID     uint            `json:"visit_id"`
	ServiceID   uint            `json:"service_id"`
	ServiceName string          `json:"service_name"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2)"`
	Quantity    uint            `json:"quantity"`
	Position    int             `json:"position"`
}

type PlanStep struct {
	gorm.Model
	VisitID     uint   `json:"visit_id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Position    int    `json:"position"`
}

type XrayImage struct {
	gorm.Model
	VisitID uint   `json:"visit_id"`
	URL     string `json:"url" gorm:"unique"`
}

func (visit *Visit) IsCompleted() bool {
	return visit.Status == VisitStatusCompleted
}

func (visit *Visit) SetAffectedTeeth(teeth []string) {
	visit.AffectedTeeth = strings.Join(teeth, ",")
}

func (visit *Visit) AffectedTeethList() []string {
	if visit.AffectedTeeth == "" {
		return []string{}
	}
	return strings.Split(visit.AffectedTeeth, ",")
}
