package adminController

import (
	"fmt"
	"time"
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeHeaderRow(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
}

// ExportUsers streams every non-deleted user as an XLSX attachment.
func ExportUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("id ASC").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Users"
	f.SetSheetName("Sheet1", sheet)
	writeHeaderRow(f, sheet, []string{
		"ID", "Name", "Email", "Role", "Target Country", "Intake",
		"Analyses Used", "Analysis Quota", "Blocked", "Registered",
	})

	for i, u := range users {
		row := i + 2
		values := []interface{}{
			u.ID, u.Name, u.Email, u.Role, u.TargetCountry, u.IntakePeriod,
			u.AnalysisCount, u.MaxAnalyses, u.IsBlocked, u.CreatedAt.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build export!", nil)
	}

	filename := fmt.Sprintf("users-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// ExportAnalyses streams every analysis as an XLSX attachment.
func ExportAnalyses(c *fiber.Ctx) error {
	var analyses []models.Analysis
	if err := database.Database.Db.Order("id ASC").Find(&analyses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analyses!", nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Analyses"
	f.SetSheetName("Sheet1", sheet)
	writeHeaderRow(f, sheet, []string{
		"ID", "User ID", "File", "Summary", "Provider", "Public", "Created",
	})

	for i, a := range analyses {
		row := i + 2
		values := []interface{}{
			a.ID, a.UserID, a.FileName, a.Summary, a.Provider, a.IsPublic, a.CreatedAt.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build export!", nil)
	}

	filename := fmt.Sprintf("analyses-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
