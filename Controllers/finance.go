package Controllers

import (
	"net/http"

	"github.com/yunusabdullaev/crm-clinic-sub000/Models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RevenueRow struct {
	Period     string          `json:"period"`
	VisitCount int64           `json:"visit_count"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discounts  decimal.Decimal `json:"discounts"`
	Revenue    decimal.Decimal `json:"revenue"`
	CashTotal  decimal.Decimal `json:"cash_total"`
	CardTotal  decimal.Decimal `json:"card_total"`
}

func fetchRevenue(c *gin.Context, periodFormat string) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := getScopedDB(c, "").
		Model(&Models.Visit{}).
		Select(`to_char(completed_at, '`+periodFormat+`') as period,
			COUNT(*) as visit_count,
			COALESCE(SUM(subtotal), 0) as subtotal,
			COALESCE(SUM(discount_amount), 0) as discounts,
			COALESCE(SUM(total_price), 0) as revenue,
			COALESCE(SUM(total_price) FILTER (WHERE payment_type = 'cash'), 0) as cash_total,
			COALESCE(SUM(total_price) FILTER (WHERE payment_type = 'card'), 0) as card_total`).
		Where("status = ?", Models.VisitStatusCompleted)

	if input.DateFrom != "" && input.DateTo != "" {
		query = query.Where("completed_at::date BETWEEN ? AND ?", input.DateFrom, input.DateTo)
	}

	var rows []RevenueRow
	if err := query.Group("period").Order("period").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// FetchDailyRevenue aggregates completed-visit billing per day.
func FetchDailyRevenue(c *gin.Context) {
	fetchRevenue(c, "YYYY-MM-DD")
}

// FetchMonthlyRevenue aggregates completed-visit billing per month.
func FetchMonthlyRevenue(c *gin.Context) {
	fetchRevenue(c, "YYYY-MM")
}

type DoctorRevenueRow struct {
	DoctorID   uint            `json:"doctor_id"`
	DoctorName string          `json:"doctor_name"`
	VisitCount int64           `json:"visit_count"`
	Discounts  decimal.Decimal `json:"discounts"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// FetchDoctorRevenue breaks revenue down per doctor, discounts included, so
// the boss can see how granted discounts are being used.
func FetchDoctorRevenue(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := getScopedDB(c, "").
		Model(&Models.Visit{}).
		Select(`doctor_id,
			doctor_name,
			COUNT(*) as visit_count,
			COALESCE(SUM(discount_amount), 0) as discounts,
			COALESCE(SUM(total_price), 0) as revenue`).
		Where("status = ?", Models.VisitStatusCompleted)

	if input.DateFrom != "" && input.DateTo != "" {
		query = query.Where("completed_at::date BETWEEN ? AND ?", input.DateFrom, input.DateTo)
	}

	var rows []DoctorRevenueRow
	if err := query.Group("doctor_id, doctor_name").Order("revenue DESC").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
