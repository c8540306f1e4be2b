package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	stdsync "sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/cobrancas-api/internal/application/disparo"
	"github.com/seu-usuario/cobrancas-api/internal/domain/entity"
	"github.com/seu-usuario/cobrancas-api/internal/infrastructure/webhook"
	apphttp "github.com/seu-usuario/cobrancas-api/internal/interfaces/http"
	"github.com/seu-usuario/cobrancas-api/pkg/logger"
)

const (
	outroUserID   = "00000000-0000-0000-0000-000000000002"
	cobrancaID    = "11111111-2222-3333-4444-555555555555"
	outraCobranca = "66666666-7777-8888-9999-aaaaaaaaaaaa"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// memCobrancas repositório em memória que conta leituras, para verificar que
// request rejeitado não toca o banco.
type memCobrancas struct {
	mu       stdsync.Mutex
	rows     map[string]*entity.CobrancaComCliente
	leituras int
}

func (m *memCobrancas) Create(*entity.Cobranca) error { return nil }
func (m *memCobrancas) ListAbertasByUser(string) ([]*entity.CobrancaComCliente, error) {
	return nil, nil
}
func (m *memCobrancas) GetComCliente(userID, id string) (*entity.CobrancaComCliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leituras++
	cc, ok := m.rows[id]
	if !ok || cc.UserID != userID {
		return nil, nil
	}
	copia := *cc
	return &copia, nil
}
func (m *memCobrancas) SetAtiva(string, string, bool) error { return nil }
func (m *memCobrancas) RegistrarDisparo(id string, status entity.StatusDisparo, em time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cc, ok := m.rows[id]; ok {
		cc.UltimoDisparo = &em
		cc.StatusUltimoDisparo = &status
	}
	return nil
}
func (m *memCobrancas) Delete(string, string) error { return nil }
func (m *memCobrancas) ListAbertas() ([]*entity.CobrancaComCliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.CobrancaComCliente, 0, len(m.rows))
	for _, cc := range m.rows {
		copia := *cc
		out = append(out, &copia)
	}
	return out, nil
}
func (m *memCobrancas) GetComClienteByID(id string) (*entity.CobrancaComCliente, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cc, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	copia := *cc
	return &copia, nil
}

func (m *memCobrancas) totalLeituras() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leituras
}

func cobrancaAberta(id, userID string) *entity.CobrancaComCliente {
	return &entity.CobrancaComCliente{
		Cobranca: entity.Cobranca{
			ID:             id,
			ClienteID:      "33333333-3333-3333-3333-333333333333",
			Nome:           "Mensalidade março",
			DataVencimento: "2025-03-15",
			Status:         entity.StatusAberta,
			Ativa:          true,
		},
		ClienteNome:     "João da Silva",
		ClienteTelefone: "5511999990000",
		ClienteAtivo:    true,
		UserID:          userID,
	}
}

// webhookStub servidor HTTP que grava os POSTs recebidos e responde com o
// status configurado.
type webhookStub struct {
	mu       stdsync.Mutex
	status   int
	payloads []map[string]interface{}
	srv      *httptest.Server
}

func newWebhookStub(t *testing.T, status int) *webhookStub {
	t.Helper()
	stub := &webhookStub{status: status}
	stub.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var p map[string]interface{}
		_ = json.Unmarshal(body, &p)
		stub.mu.Lock()
		stub.payloads = append(stub.payloads, p)
		stub.mu.Unlock()
		w.WriteHeader(stub.status)
	}))
	t.Cleanup(stub.srv.Close)
	return stub
}

func (s *webhookStub) recebidos() []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]interface{}(nil), s.payloads...)
}

// buildDisparoApp monta a rota POST /api/disparos com o relay completo:
// middleware de auth, use case e cliente HTTP real apontando para o stub.
func buildDisparoApp(repo *memCobrancas, webhookURL string) *fiber.App {
	log := quietLogger()
	notificador := webhook.NewCliente(webhookURL, log)
	uc := disparo.NewUseCase(repo, notificador, webhookURL, log)
	handler := apphttp.NewDisparoHandler(uc)

	app := fiber.New()
	app.Post("/api/disparos", apphttp.AuthMiddleware(testJWTSecret), handler.Disparar)
	return app
}

func postDisparo(t *testing.T, app *fiber.App, authHeader, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/disparos", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyDisparo(id string) string {
	return `{"cobranca":{"id":"` + id + `"}}`
}

func TestDisparos_SemAuthNaoTocaBancoNemWebhook(t *testing.T) {
	repo := &memCobrancas{rows: map[string]*entity.CobrancaComCliente{cobrancaID: cobrancaAberta(cobrancaID, testUserID)}}
	stub := newWebhookStub(t, http.StatusOK)
	app := buildDisparoApp(repo, stub.srv.URL)

	resp := postDisparo(t, app, "", bodyDisparo(cobrancaID))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", decodeBody(t, resp)["error"])
	assert.Zero(t, repo.totalLeituras())
	assert.Empty(t, stub.recebidos())
}

func TestDisparos_IDMalformadoFalhaAntesDoBanco(t *testing.T) {
	repo := &memCobrancas{rows: map[string]*entity.CobrancaComCliente{}}
	stub := newWebhookStub(t, http.StatusOK)
	app := buildDisparoApp(repo, stub.srv.URL)
	token := tokenDoUsuario(t, testUserID)

	for _, body := range []string{
		bodyDisparo("abc"),
		bodyDisparo(""),
		`{"cobranca":{}}`,
		`{}`,
		`nao é json`,
	} {
		resp := postDisparo(t, app, token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		assert.Equal(t, "Invalid cobranca ID", decodeBody(t, resp)["error"])
	}
	assert.Zero(t, repo.totalLeituras(), "a validação do ID vem antes de qualquer acesso ao banco")
	assert.Empty(t, stub.recebidos())
}

func TestDisparos_WebhookNaoConfigurado(t *testing.T) {
	repo := &memCobrancas{rows: map[string]*entity.CobrancaComCliente{}}
	app := buildDisparoApp(repo, "")

	resp := postDisparo(t, app, tokenDoUsuario(t, testUserID), bodyDisparo(cobrancaID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Zero(t, repo.totalLeituras())
}

func TestDisparos_NaoEncontradaOuDeOutroDono(t *testing.T) {
	repo := &memCobrancas{rows: map[string]*entity.CobrancaComCliente{cobrancaID: cobrancaAberta(cobrancaID, outroUserID)}}
	stub := newWebhookStub(t, http.StatusOK)
	app := buildDisparoApp(repo, stub.srv.URL)
	token := tokenDoUsuario(t, testUserID)

	// Cobrança de outro dono responde igual a inexistente.
	for _, id := range []string{cobrancaID, outraCobranca} {
		resp := postDisparo(t, app, token, bodyDisparo(id))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	}
	assert.Empty(t, stub.recebidos())
}

func TestDisparos_CobrancaInativa(t *testing.T) {
	cc := cobrancaAberta(cobrancaID, testUserID)
	cc.Ativa = false
	repo := &memCobrancas{rows: map[string]*entity.CobrancaComCliente{cobrancaID: cc}}
	stub := newWebhookStub(t, http.StatusOK)
	app := buildDisparoApp(repo, stub.srv.URL)

	resp := postDisparo(t, app, tokenDoUsuario(t, testUserID), bodyDisparo(cobrancaID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Empty(t, stub.recebidos())
}

func TestDisparos_Sucesso(t *testing.T) {
	repo := &memCobrancas{rows: map[string]*entity.CobrancaComCliente{cobrancaID: cobrancaAberta(cobrancaID, testUserID)}}
	stub := newWebhookStub(t, http.StatusOK)
	app := buildDisparoApp(repo, stub.srv.URL)

	resp := postDisparo(t, app, tokenDoUsuario(t, testUserID), bodyDisparo(cobrancaID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "sent", body["status"])
	_, temMensagem := body["message"]
	assert.False(t, temMensagem, "sucesso não carrega message")

	recebidos := stub.recebidos()
	require.Len(t, recebidos, 1)
	assert.Equal(t, "João da Silva", recebidos[0]["cliente_nome"])
	assert.Equal(t, "5511999990000", recebidos[0]["cliente_telefone"])
	assert.Equal(t, "2025-03-15", recebidos[0]["data_vencimento"])
	assert.Equal(t, cobrancaID, recebidos[0]["cobranca_id"])

	cc := repo.rows[cobrancaID]
	require.NotNil(t, cc.StatusUltimoDisparo)
	assert.Equal(t, entity.StatusEnviado, *cc.StatusUltimoDisparo)
	require.NotNil(t, cc.UltimoDisparo)
}

func TestDisparos_FalhaDoWebhookResponde200ComStatusError(t *testing.T) {
	repo := &memCobrancas{rows: map[string]*entity.CobrancaComCliente{cobrancaID: cobrancaAberta(cobrancaID, testUserID)}}
	stub := newWebhookStub(t, http.StatusInternalServerError)
	app := buildDisparoApp(repo, stub.srv.URL)

	resp := postDisparo(t, app, tokenDoUsuario(t, testUserID), bodyDisparo(cobrancaID))
	assert.Equal(t, http.StatusOK, resp.StatusCode, "falha de entrega é suave")
	body := decodeBody(t, resp)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Erro no webhook: 500", body["message"])

	cc := repo.rows[cobrancaID]
	require.NotNil(t, cc.StatusUltimoDisparo)
	assert.Equal(t, entity.StatusErro, *cc.StatusUltimoDisparo)
}
