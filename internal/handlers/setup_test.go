package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"freelancehub/internal/middleware"
	"freelancehub/internal/models"
)

const testSecret = "test-secret-key"

// newTestApp builds an in-memory SQLite database and a Fiber app with the
// same routes and middleware as cmd/api.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Proposal{},
		&models.Message{},
	))

	log := zerolog.Nop()
	authH := &AuthHandler{DB: db, JWTSecret: testSecret, Expires: 60, Log: log}
	userH := NewUserHandler(db, log)
	jobH := NewJobHandler(db, log)
	proposalH := NewProposalHandler(db, log)
	messageH := NewMessageHandler(db, log)

	app := fiber.New()
	api := app.Group("/api")

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Get("/users/freelancers", userH.Freelancers)
	api.Get("/jobs", jobH.List)
	api.Get("/jobs/:id", jobH.GetByID)

	protected := api.Group("/",
		middleware.JWTFromHeader(testSecret),
		middleware.AttachJWTLocals(),
	)
	protected.Get("/users/profile", userH.GetProfile)
	protected.Put("/users/profile", userH.UpdateProfile)
	protected.Post("/jobs", middleware.RequireRoles("client"), jobH.Create)
	protected.Put("/jobs/:id", jobH.Update)
	protected.Delete("/jobs/:id", jobH.Delete)
	protected.Get("/proposals/my", proposalH.ListMine)
	protected.Post("/proposals", middleware.RequireRoles("freelancer"), proposalH.Create)
	protected.Put("/proposals/:id/status", proposalH.UpdateStatus)
	protected.Get("/messages", messageH.List)
	protected.Post("/messages", messageH.Send)
	protected.Patch("/messages/:id/read", messageH.MarkRead)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		UserType string `json:"userType"`
	} `json:"user"`
}

func register(t *testing.T, app *fiber.App, name, email, userType string) authResponse {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
		"userType": userType,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body authResponse
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body
}

func createJob(t *testing.T, app *fiber.App, token string, payload map[string]any) map[string]any {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/jobs", token, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var job map[string]any
	decodeJSON(t, resp, &job)
	return job
}
