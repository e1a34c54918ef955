package analysisController

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"visadesk/config"
	"visadesk/database"
	"visadesk/llm"
	"visadesk/middleware"
	"visadesk/models"
	analysisValidators "visadesk/validators/analysis"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const stubModelOutput = "Here is the analysis you requested:\n" +
	`{"summary":"The visa was refused because the evidence of funds was insufficient.",` +
	`"rejectionReasons":[{"title":"Insufficient funds","description":"Bank statements did not cover the required period."}],` +
	`"recommendations":[{"title":"Stronger financial evidence","description":"Provide six months of statements from a recognised bank."}],` +
	`"nextSteps":[{"title":"Gather documents","description":"Collect updated statements before re-applying."}]}`

type stubProvider struct {
	response string
	err      error
	calls    atomic.Int32
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
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

	app := fiber.New(fiber.Config{BodyLimit: 12 * 1024 * 1024})
	app.Post("/api/analyze", middleware.JWTMiddleware, Analyze)
	app.Get("/api/analyses", middleware.JWTMiddleware, AnalysisList)
	app.Get("/api/analyses/:id", middleware.JWTMiddleware, AnalysisDetail)
	app.Post("/api/analyses/:id/feedback", analysisValidators.Feedback(), middleware.JWTMiddleware, SubmitFeedback)

	return app
}

func stubPipeline(t *testing.T, p llm.Provider) {
	t.Helper()

	prevProvider := llm.Active
	prevExtract := extractText

	llm.Active = p
	extractText = func(filename string, data []byte) (string, error) {
		return "Dear applicant, your student visa application has been refused.", nil
	}

	t.Cleanup(func() {
		llm.Active = prevProvider
		extractText = prevExtract
	})
}

func createUser(t *testing.T, email string, analysisCount, maxAnalyses int) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:          "Test User",
		Email:         email,
		Password:      "hashed",
		AnalysisCount: analysisCount,
		MaxAnalyses:   maxAnalyses,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

func uploadRequest(t *testing.T, token, filename string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("document", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func analysisCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.Database.Db.Model(&models.Analysis{}).Count(&count).Error)
	return count
}

func reloadUser(t *testing.T, id uint) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, database.Database.Db.First(&user, id).Error)
	return user
}

func TestAnalyzeSuccess(t *testing.T) {
	app := setupTest(t)
	stub := &stubProvider{response: stubModelOutput}
	stubPipeline(t, stub)

	user, token := createUser(t, "success@example.com", 0, 5)

	resp, err := app.Test(uploadRequest(t, token, "refusal.pdf", []byte("%PDF-1.4 fake")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Status)

	var analysis models.Analysis
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&analysis).Error)
	assert.Equal(t, "refusal.pdf", analysis.FileName)
	assert.Equal(t, "The visa was refused because the evidence of funds was insufficient.", analysis.Summary)
	assert.Equal(t, "stub", analysis.Provider)
	assert.NotEmpty(t, analysis.RejectionReasons)

	assert.Equal(t, 1, reloadUser(t, user.ID).AnalysisCount)
	assert.Equal(t, int32(1), stub.calls.Load())
}

func TestAnalyzeRejectsUnsupportedType(t *testing.T) {
	app := setupTest(t)
	stub := &stubProvider{response: stubModelOutput}
	stubPipeline(t, stub)

	user, token := createUser(t, "badtype@example.com", 0, 5)

	resp, err := app.Test(uploadRequest(t, token, "notes.txt", []byte("plain text")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Rejected uploads must leave no trace.
	assert.Equal(t, int64(0), analysisCount(t))
	assert.Equal(t, 0, reloadUser(t, user.ID).AnalysisCount)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestAnalyzeRejectsOversizeUpload(t *testing.T) {
	app := setupTest(t)
	stub := &stubProvider{response: stubModelOutput}
	stubPipeline(t, stub)

	user, token := createUser(t, "oversize@example.com", 0, 5)

	resp, err := app.Test(uploadRequest(t, token, "huge.pdf", bytes.Repeat([]byte("a"), 10<<20+1)), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, int64(0), analysisCount(t))
	assert.Equal(t, 0, reloadUser(t, user.ID).AnalysisCount)
	assert.Equal(t, int32(0), stub.calls.Load())
}

func TestAnalyzeProviderFailure(t *testing.T) {
	app := setupTest(t)
	stub := &stubProvider{err: &llm.APIError{Provider: "stub", StatusCode: 401, Message: "invalid api key"}}
	stubPipeline(t, stub)

	user, token := createUser(t, "providerdown@example.com", 0, 5)

	resp, err := app.Test(uploadRequest(t, token, "refusal.pdf", []byte("%PDF-1.4 fake")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// A failed model call must not consume quota or persist anything.
	assert.Equal(t, int64(0), analysisCount(t))
	assert.Equal(t, 0, reloadUser(t, user.ID).AnalysisCount)
}

func TestAnalyzeMalformedModelOutput(t *testing.T) {
	app := setupTest(t)
	stub := &stubProvider{response: "I'm sorry, I cannot analyze this document."}
	stubPipeline(t, stub)

	user, token := createUser(t, "malformed@example.com", 0, 5)

	resp, err := app.Test(uploadRequest(t, token, "refusal.pdf", []byte("%PDF-1.4 fake")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	assert.Equal(t, int64(0), analysisCount(t))
	assert.Equal(t, 0, reloadUser(t, user.ID).AnalysisCount)
}

func TestAnalyzeRejectsBlockedUser(t *testing.T) {
	app := setupTest(t)
	stub := &stubProvider{response: stubModelOutput}
	stubPipeline(t, stub)

	until := time.Now().Add(24 * time.Hour)
	user := models.User{
		Name:         "Blocked User",
		Email:        "blocked@example.com",
		Password:     "hashed",
		MaxAnalyses:  5,
		IsBlocked:    true,
		BlockedUntil: &until,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	// A token issued before the block must not keep working.
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	resp, err := app.Test(uploadRequest(t, token, "refusal.pdf", []byte("%PDF-1.4 fake")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	assert.Equal(t, int32(0), stub.calls.Load())
	assert.Equal(t, int64(0), analysisCount(t))
}

func TestAnalyzeQuotaExhausted(t *testing.T) {
	app := setupTest(t)
	stub := &stubProvider{response: stubModelOutput}
	stubPipeline(t, stub)

	_, token := createUser(t, "exhausted@example.com", 5, 5)

	resp, err := app.Test(uploadRequest(t, token, "refusal.pdf", []byte("%PDF-1.4 fake")), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusPaymentRequired, resp.StatusCode)

	// Exhausted users never reach the model.
	assert.Equal(t, int32(0), stub.calls.Load())
	assert.Equal(t, int64(0), analysisCount(t))
}

func TestAnalyzeQuotaRace(t *testing.T) {
	app := setupTest(t)
	stub := &stubProvider{response: stubModelOutput}
	stubPipeline(t, stub)

	user, token := createUser(t, "race@example.com", 0, 1)

	const workers = 4
	statuses := make([]int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := app.Test(uploadRequest(t, token, "refusal.pdf", []byte("%PDF-1.4 fake")), -1)
			if err != nil {
				return
			}
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range statuses {
		if code == fiber.StatusCreated {
			created++
		} else {
			assert.Equal(t, fiber.StatusPaymentRequired, code)
		}
	}

	// Racing requests cannot push the counter past the quota.
	assert.Equal(t, 1, created)
	assert.Equal(t, int64(1), analysisCount(t))
	assert.Equal(t, 1, reloadUser(t, user.ID).AnalysisCount)
}

func TestAnalysisDetailAccess(t *testing.T) {
	app := setupTest(t)

	owner, _ := createUser(t, "owner@example.com", 0, 5)
	_, otherToken := createUser(t, "other@example.com", 0, 5)

	private := models.Analysis{UserID: owner.ID, FileName: "a.pdf", Summary: "private"}
	require.NoError(t, database.Database.Db.Create(&private).Error)
	public := models.Analysis{UserID: owner.ID, FileName: "b.pdf", Summary: "public", IsPublic: true}
	require.NoError(t, database.Database.Db.Create(&public).Error)

	get := func(id uint, token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/analyses/"+itoa(id), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusForbidden, get(private.ID, otherToken))
	assert.Equal(t, fiber.StatusOK, get(public.ID, otherToken))
}

func TestSubmitFeedbackWriteOnce(t *testing.T) {
	app := setupTest(t)

	user, token := createUser(t, "feedback@example.com", 0, 5)

	analysis := models.Analysis{UserID: user.ID, FileName: "a.pdf", Summary: "done"}
	require.NoError(t, database.Database.Db.Create(&analysis).Error)

	post := func(payload string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/analyses/"+itoa(analysis.ID)+"/feedback", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusUnprocessableEntity, post(`{"rating":0}`))
	assert.Equal(t, fiber.StatusCreated, post(`{"rating":5,"comment":"very helpful"}`))
	assert.Equal(t, fiber.StatusConflict, post(`{"rating":3,"comment":"changed my mind"}`))

	var count int64
	require.NoError(t, database.Database.Db.Model(&models.Feedback{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}
