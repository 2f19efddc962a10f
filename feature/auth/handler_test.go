package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"project-admin/core/database"
	"project-admin/core/database/dbtest"
	"project-admin/core/middleware/errorhandler"
	"project-admin/core/token"
	"project-admin/feature/users/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func setupTestApp(t *testing.T, provider database.Provider) (*fiber.App, *token.Issuer) {
	t.Helper()
	issuer, err := token.NewIssuer(token.Config{JWTSecret: "0123456789abcdef0123456789abcdef", TokenTTL: time.Hour})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.New(zap.NewNop())})
	feature := NewFeature(provider, issuer, bcrypt.MinCost, zap.NewNop())
	require.NoError(t, feature.Load(app.Group(feature.Prefix())))
	return app, issuer
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, bearer string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestFeature(t *testing.T) {
	f := NewFeature(database.NewHandle(), nil, bcrypt.MinCost, zap.NewNop())
	assert.Equal(t, "auth", f.Name())
	assert.Equal(t, "/api/auth", f.Prefix())
	assert.True(t, f.IsEnabled())
}

func TestRegisterLoginMe(t *testing.T) {
	db := dbtest.Open(t, &models.User{})
	app, issuer := setupTestApp(t, database.Static(db))

	resp, body := doJSON(t, app, "POST", "/api/auth/register",
		`{"name":"Ada","email":"Ada@Example.com","password":"secret123"}`, "")
	require.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, models.RoleUser, user["role"])
	assert.NotContains(t, user, "PasswordHash")

	claims, err := issuer.Parse(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, user["id"], claims.Subject)

	resp, body = doJSON(t, app, "POST", "/api/auth/login", `{"email":"ada@example.com","password":"secret123"}`, "")
	require.Equal(t, 200, resp.StatusCode)
	tok := body["data"].(map[string]any)["token"].(string)

	resp, body = doJSON(t, app, "GET", "/api/auth/me", "", tok)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Ada", body["data"].(map[string]any)["name"])
}

func TestRegister_Validation(t *testing.T) {
	db := dbtest.Open(t, &models.User{})
	app, _ := setupTestApp(t, database.Static(db))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"MissingName", `{"email":"a@b.co","password":"secret123"}`, 400},
		{"BadEmail", `{"name":"A","email":"nope","password":"secret123"}`, 400},
		{"ShortPassword", `{"name":"A","email":"a@b.co","password":"123"}`, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, "POST", "/api/auth/register", tt.body, "")
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	db := dbtest.Open(t, &models.User{})
	app, _ := setupTestApp(t, database.Static(db))

	payload := `{"name":"Ada","email":"ada@example.com","password":"secret123"}`
	resp, _ := doJSON(t, app, "POST", "/api/auth/register", payload, "")
	require.Equal(t, 201, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", strings.Replace(payload, "ada@", "ADA@", 1), "")
	assert.Equal(t, 409, resp.StatusCode)
	assert.Equal(t, "User already exists", body["message"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	db := dbtest.Open(t, &models.User{})
	app, _ := setupTestApp(t, database.Static(db))

	resp, _ := doJSON(t, app, "POST", "/api/auth/register", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`, "")
	require.Equal(t, 201, resp.StatusCode)

	for _, body := range []string{
		`{"email":"ada@example.com","password":"wrong-pass"}`,
		`{"email":"ghost@example.com","password":"secret123"}`,
	} {
		resp, out := doJSON(t, app, "POST", "/api/auth/login", body, "")
		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, "Invalid credentials", out["message"])
	}

	resp, _ = doJSON(t, app, "POST", "/api/auth/login", `{"email":"ada@example.com"}`, "")
	assert.Equal(t, 400, resp.StatusCode)
}

func TestMe_RequiresToken(t *testing.T) {
	db := dbtest.Open(t, &models.User{})
	app, issuer := setupTestApp(t, database.Static(db))

	resp, _ := doJSON(t, app, "GET", "/api/auth/me", "", "")
	assert.Equal(t, 401, resp.StatusCode)

	// Valid token for a user that has been deleted.
	tok, err := issuer.Issue("missing-user", models.RoleUser)
	require.NoError(t, err)
	resp, _ = doJSON(t, app, "GET", "/api/auth/me", "", tok)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestDatabaseNotReady(t *testing.T) {
	app, _ := setupTestApp(t, database.NewHandle())

	resp, body := doJSON(t, app, "POST", "/api/auth/login", `{"email":"ada@example.com","password":"secret123"}`, "")
	assert.Equal(t, 503, resp.StatusCode)
	assert.Equal(t, "Database is not ready", body["message"])
}
