package offerLetterController

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"visadesk/config"
	"visadesk/database"
	"visadesk/extraction"
	"visadesk/llm"
	"visadesk/middleware"
	"visadesk/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// A sparse offer letter: the model only found the institution and course.
const sparseOfferOutput = `{"institutionName":"Test University","courseName":"Computer Science","conditionsOfOffer":["Provide certified transcripts"],"paymentSchedule":[]}`

type stubProvider struct {
	response string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.response, nil
}

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
		FromEmail: "noreply@example.com",
		UploadDir: t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	prevProvider := llm.Active
	prevExtract := extractText
	llm.Active = &stubProvider{response: sparseOfferOutput}
	extractText = func(filename string, data []byte) (string, error) {
		return "Offer of admission to Test University.", nil
	}
	t.Cleanup(func() {
		llm.Active = prevProvider
		extractText = prevExtract
	})

	app := fiber.New()
	app.Post("/api/offer-letter-information/extract", middleware.JWTMiddleware, Extract)
	app.Get("/api/offer-letter-information", middleware.JWTMiddleware, List)

	return app
}

func createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Password: "hashed", MaxAnalyses: 5}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func TestExtractBackfillsMissingFields(t *testing.T) {
	app := setupTest(t)
	user, token := createUser(t, "offer@example.com")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("document", "offer.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/offer-letter-information/extract", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var row models.OfferLetterInfo
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&row).Error)

	// Found fields survive, everything absent gets the placeholder.
	assert.Equal(t, "Test University", row.InstitutionName)
	assert.Equal(t, "Computer Science", row.CourseName)
	assert.Equal(t, extraction.NotSpecified, row.CricosProviderCode)
	assert.Equal(t, extraction.NotSpecified, row.TuitionFeeTotal)
	assert.Equal(t, extraction.NotSpecified, row.RefundPolicy)
	assert.Contains(t, string(row.ConditionsOfOffer), "Provide certified transcripts")

	// Extraction consumes one unit of the shared quota.
	var fresh models.User
	require.NoError(t, database.Database.Db.First(&fresh, user.ID).Error)
	assert.Equal(t, 1, fresh.AnalysisCount)
}

func TestListIsScopedToOwner(t *testing.T) {
	app := setupTest(t)

	owner, _ := createUser(t, "owner@example.com")
	_, otherToken := createUser(t, "other@example.com")

	row := models.OfferLetterInfo{UserID: owner.ID, FileName: "offer.pdf", InstitutionName: "Test University"}
	require.NoError(t, database.Database.Db.Create(&row).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/offer-letter-information", nil)
	req.Header.Set("Authorization", "Bearer "+otherToken)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Test University")
}
