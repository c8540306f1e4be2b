package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/seu-usuario/cobrancas-api/internal/interfaces/http"
	pkgjwt "github.com/seu-usuario/cobrancas-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "cobrancas-api-test"
	testExpMin    = 60
)

// buildAuthApp monta uma aplicação Fiber mínima com o middleware de auth e
// um handler que devolve o user_id extraído do token.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
		},
	)
	return app
}

func tokenDoUsuario(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAuthMiddleware_SemHeader(t *testing.T) {
	app := buildAuthApp()
	resp := doGet(t, app, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", decodeBody(t, resp)["error"])
}

func TestAuthMiddleware_FormatoErrado(t *testing.T) {
	app := buildAuthApp()
	for _, h := range []string{"Basic abc", "Bearer", "Bearer ", "token-sem-esquema"} {
		resp := doGet(t, app, h)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q deve ser rejeitado", h)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	app := buildAuthApp()
	resp := doGet(t, app, "Bearer nao-e-um-jwt")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", decodeBody(t, resp)["error"])
}

func TestAuthMiddleware_AssinaturaErrada(t *testing.T) {
	tok, err := pkgjwt.Generate("outro-segredo", testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildAuthApp()
	resp := doGet(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoCarregaUserID(t *testing.T) {
	app := buildAuthApp()
	resp := doGet(t, app, tokenDoUsuario(t, testUserID))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, decodeBody(t, resp)["user_id"])
}
