package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgAuth "github.com/oceanoetiquetas/oceano-backend/pkg/auth"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "segredo-de-teste",
		Issuer:          "oceano-backend",
		AdminTTLHours:   24,
		ClienteTTLHours: 72,
	}
}

func mintTestToken(t *testing.T, cfg config.JWTConfig, role enums.ActorRole, id int64, nome string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		ActorID: id,
		Role:    role,
		Nome:    nome,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestRequireAdminRejectsMissingToken(t *testing.T) {
	cfg := testJWTConfig()
	handler := RequireAdmin(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAdminRejectsMalformedToken(t *testing.T) {
	cfg := testJWTConfig()
	handler := RequireAdmin(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nao-e-um-jwt")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAdminRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token := func() string {
		tok, err := pkgAuth.MintAccessToken(cfg, time.Now().Add(-48*time.Hour), pkgAuth.AccessTokenPayload{
			ActorID: 1,
			Role:    enums.ActorRoleAdmin,
			Nome:    "Admin",
		})
		if err != nil {
			t.Fatalf("mint token: %v", err)
		}
		return tok
	}()

	handler := RequireAdmin(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAdminRejectsClienteToken(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, enums.ActorRoleCliente, 7, "Cliente Sete")

	handler := RequireAdmin(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireAdminSeedsActorContext(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, enums.ActorRoleAdmin, 3, "Maria")

	var captured struct {
		id   int64
		role string
		nome string
	}
	handler := RequireAdmin(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.id = ActorIDFromContext(r.Context())
		captured.role = ActorRoleFromContext(r.Context())
		captured.nome = ActorNomeFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.id != 3 {
		t.Fatalf("expected actor id 3 got %d", captured.id)
	}
	if captured.role != string(enums.ActorRoleAdmin) {
		t.Fatalf("expected role admin got %s", captured.role)
	}
	if captured.nome != "Maria" {
		t.Fatalf("expected nome Maria got %s", captured.nome)
	}
}

func TestRequireClienteRejectsAdminToken(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, enums.ActorRoleAdmin, 1, "Admin")

	handler := RequireCliente(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRequireClienteAllowsClienteToken(t *testing.T) {
	cfg := testJWTConfig()
	token := mintTestToken(t, cfg, enums.ActorRoleCliente, 42, "Oficina do Zé")

	var gotID int64
	handler := RequireCliente(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ActorIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotID != 42 {
		t.Fatalf("expected cliente id 42 got %d", gotID)
	}
}
