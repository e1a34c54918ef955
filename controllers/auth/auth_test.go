package authController

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"visadesk/config"
	"visadesk/database"
	"visadesk/middleware"
	"visadesk/models"
	authValidators "visadesk/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
		FromEmail: "noreply@example.com",
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

	app := fiber.New()
	app.Post("/auth/signup", authValidators.Signup(), Signup)
	app.Post("/auth/login", authValidators.Login(), Login)
	app.Get("/auth/profile", middleware.JWTMiddleware, Profile)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path, payload string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSignup(t *testing.T) {
	app := setupTest(t)

	resp := postJSON(t, app, "/auth/signup", `{"name":"Asha Verma","email":"asha@example.com","password":"Secret123!","targetCountry":"Australia"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "asha@example.com").First(&user).Error)
	assert.Equal(t, "Asha Verma", user.Name)
	assert.Equal(t, 5, user.MaxAnalyses)
	assert.NotEqual(t, "Secret123!", user.Password)

	// Password never appears in the response.
	body := new(bytes.Buffer)
	_, err := body.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, body.String(), "Secret123!")
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := setupTest(t)

	resp := postJSON(t, app, "/auth/signup", `{"name":"Asha Verma","email":"dup@example.com","password":"Secret123!"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/auth/signup", `{"name":"Someone Else","email":"dup@example.com","password":"Another123!"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	app := setupTest(t)

	resp := postJSON(t, app, "/auth/signup", `{"name":"A","email":"not-an-email","password":"short"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := setupTest(t)

	postJSON(t, app, "/auth/signup", `{"name":"Asha Verma","email":"login@example.com","password":"Secret123!"}`)

	resp := postJSON(t, app, "/auth/login", `{"email":"login@example.com","password":"Secret123!"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status bool `json:"status"`
		Data   struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Status)
	require.NotEmpty(t, body.Data.Token)

	// The issued token must be accepted by the JWT middleware.
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.Token)
	profileResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, profileResp.StatusCode)
}

func TestLoginBlocksAfterRepeatedFailures(t *testing.T) {
	app := setupTest(t)

	postJSON(t, app, "/auth/signup", `{"name":"Asha Verma","email":"lockout@example.com","password":"Secret123!"}`)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, app, "/auth/login", `{"email":"lockout@example.com","password":"WrongPass1!"}`)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}

	// Even the right password is rejected while the account is blocked.
	resp := postJSON(t, app, "/auth/login", `{"email":"lockout@example.com","password":"Secret123!"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
