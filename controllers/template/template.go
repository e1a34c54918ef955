package templateController

import (
	"path/filepath"
	"visadesk/config"
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"
	"visadesk/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateTemplate stores an admin-uploaded template file under
// uploads/templates and records its metadata.
func CreateTemplate(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	name := c.FormValue("name")
	if name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Template name is required!", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}
	if fileHeader.Size > utils.MaxUploadSize {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File exceeds the 10MB upload limit!", nil)
	}

	destDir := filepath.Join(config.AppConfig.UploadDir, "templates")
	storedPath, err := utils.SaveUploadedFile(fileHeader, destDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store template file!", nil)
	}

	template := models.DocumentTemplate{
		Name:        name,
		Description: c.FormValue("description"),
		FileName:    fileHeader.Filename,
		FilePath:    storedPath,
		FileSize:    fileHeader.Size,
		UploadedBy:  userId,
	}
	if category := c.FormValue("category"); category != "" {
		template.Category = category
	}

	if err := database.Database.Db.Create(&template).Error; err != nil {
		utils.DeleteFileQuietly(storedPath)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Template created successfully.", template)
}

// TemplateList is public to all authenticated users.
func TemplateList(c *fiber.Ctx) error {
	category := c.Query("category")

	db := database.Database.Db.Model(&models.DocumentTemplate{})
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var templates []models.DocumentTemplate
	if err := db.Order("created_at DESC").Find(&templates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch templates!", nil)
	}

	type templateWithURL struct {
		models.DocumentTemplate
		DownloadURL string `json:"downloadUrl"`
	}

	out := make([]templateWithURL, 0, len(templates))
	for _, t := range templates {
		out = append(out, templateWithURL{DocumentTemplate: t, DownloadURL: utils.GetFileURL(t.FilePath)})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Templates fetched successfully.", out)
}

func UpdateTemplate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid template id!", nil)
	}

	var template models.DocumentTemplate
	if err := database.Database.Db.Where("id = ?", id).First(&template).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch template!", nil)
	}

	if name := c.FormValue("name"); name != "" {
		template.Name = name
	}
	if description := c.FormValue("description"); description != "" {
		template.Description = description
	}
	if category := c.FormValue("category"); category != "" {
		template.Category = category
	}

	// Optional file replacement
	if fileHeader, err := c.FormFile("file"); err == nil {
		if fileHeader.Size > utils.MaxUploadSize {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File exceeds the 10MB upload limit!", nil)
		}
		destDir := filepath.Join(config.AppConfig.UploadDir, "templates")
		storedPath, err := utils.SaveUploadedFile(fileHeader, destDir)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store template file!", nil)
		}
		utils.DeleteFileQuietly(template.FilePath)
		template.FileName = fileHeader.Filename
		template.FilePath = storedPath
		template.FileSize = fileHeader.Size
	}

	if err := database.Database.Db.Save(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template updated successfully.", template)
}

func DeleteTemplate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid template id!", nil)
	}

	var template models.DocumentTemplate
	if err := database.Database.Db.Where("id = ?", id).First(&template).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch template!", nil)
	}

	if err := database.Database.Db.Delete(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete template!", nil)
	}

	// File removal is best-effort; the row is already gone.
	utils.DeleteFileQuietly(template.FilePath)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template deleted successfully.", nil)
}
