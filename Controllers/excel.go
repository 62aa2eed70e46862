package Controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/yunusabdullaev/crm-clinic-sub000/Models"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

// ExportRevenueTable writes every completed visit in the date range to an
// xlsx file and serves it.
func ExportRevenueTable(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	query := getScopedDB(c, "").Model(&Models.Visit{}).Where("status = ?", Models.VisitStatusCompleted)
	if input.DateFrom != "" && input.DateTo != "" {
		query = query.Where("completed_at::date BETWEEN ? AND ?", input.DateFrom, input.DateTo)
	}

	var visits []Models.Visit
	if err := query.Order("completed_at").Find(&visits).Error; err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	headers := map[string]string{
		"A1": "Date",
		"B1": "Patient",
		"C1": "Doctor",
		"D1": "Subtotal",
		"E1": "Discount",
		"F1": "Total",
		"G1": "Payment Method",
	}
	file := excelize.NewFile()
	sheet := "Revenue"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(visits); i++ {
		appendRowRevenue(sheet, file, i, visits)
	}
	var filename string = "./Revenue.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowRevenue(sheet string, file *excelize.File, index int, rows []Models.Visit) (fileWriter *excelize.File) {
	rowCount := index + 2
	date := ""
	if rows[index].CompletedAt != nil {
		date = rows[index].CompletedAt.Format("2006-01-02")
	}
	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), date)
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), rows[index].PatientName)
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), rows[index].DoctorName)
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), rows[index].Subtotal.StringFixed(2))
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), rows[index].DiscountAmount.StringFixed(2))
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), rows[index].TotalPrice.StringFixed(2))
	file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), rows[index].PaymentType)
	return file

}

// ExportDoctorVisitsExcel exports one doctor's completed visits with their
// discounts.
func ExportDoctorVisitsExcel(c *gin.Context) {
	var input struct {
		DoctorID uint `json:"doctor_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var doctor Models.Doctor
	if err := getScopedDB(c, "").Where("id = ?", input.DoctorID).First(&doctor).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var visits []Models.Visit
	if err := Models.DB.Model(&Models.Visit{}).
		Where("doctor_id = ? AND status = ?", input.DoctorID, Models.VisitStatusCompleted).
		Order("completed_at").
		Find(&visits).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	headers := map[string]string{
		"A1": "Date",
		"B1": "Patient",
		"C1": "Diagnosis",
		"D1": "Discount",
		"E1": "Total",
	}

	file := excelize.NewFile()
	sheet := "Visits"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(visits); i++ {
		rowCount := i + 2
		date := ""
		if visits[i].CompletedAt != nil {
			date = visits[i].CompletedAt.Format("2006-01-02")
		}
		file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), date)
		file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), visits[i].PatientName)
		file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), visits[i].Diagnosis)
		file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), visits[i].DiscountAmount.StringFixed(2))
		file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), visits[i].TotalPrice.StringFixed(2))
	}

	var filename string = "./DoctorVisits.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}
