package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is one entry of the clinic's price list. Created and edited by the
// clinic boss; referenced, never mutated, by billing.
type Service struct {
	gorm.Model
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(12,2)"`
	Duration      uint            `json:"duration"` // in minutes
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	ClinicGroupID uint            `json:"clinic_group_id"`
}
