package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adminsvc "github.com/oceanoetiquetas/oceano-backend/internal/admins"
	authsvc "github.com/oceanoetiquetas/oceano-backend/internal/auth"
	catalogsvc "github.com/oceanoetiquetas/oceano-backend/internal/catalog"
	chatsvc "github.com/oceanoetiquetas/oceano-backend/internal/chat"
	clientsvc "github.com/oceanoetiquetas/oceano-backend/internal/clients"
	ordersvc "github.com/oceanoetiquetas/oceano-backend/internal/orders"
	productsvc "github.com/oceanoetiquetas/oceano-backend/internal/products"
	quotesvc "github.com/oceanoetiquetas/oceano-backend/internal/quotes"
	"github.com/oceanoetiquetas/oceano-backend/internal/web"
	pkgAuth "github.com/oceanoetiquetas/oceano-backend/pkg/auth"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
	"github.com/oceanoetiquetas/oceano-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) AdminLogin(ctx context.Context, username, senha string) (*authsvc.AdminLoginResult, error) {
	return &authsvc.AdminLoginResult{Token: "stub"}, nil
}

func (stubAuthService) ClienteLogin(ctx context.Context, codigoAcesso string) (*authsvc.ClienteLoginResult, error) {
	return &authsvc.ClienteLoginResult{Token: "stub"}, nil
}

type stubCatalogService struct{}

func (stubCatalogService) List(ctx context.Context, categoria string) ([]types.RowMap, error) {
	return []types.RowMap{}, nil
}

func (stubCatalogService) Detail(ctx context.Context, slug string) (*catalogsvc.Detail, error) {
	return &catalogsvc.Detail{}, nil
}

type stubProductService struct{}

func (stubProductService) List(ctx context.Context) ([]models.Produto, error) {
	return []models.Produto{}, nil
}

func (stubProductService) Get(ctx context.Context, id int64) (*models.Produto, error) {
	return &models.Produto{ID: id}, nil
}

func (stubProductService) Create(ctx context.Context, input productsvc.Input) (*models.Produto, error) {
	return &models.Produto{}, nil
}

func (stubProductService) Update(ctx context.Context, id int64, input productsvc.Input) (*models.Produto, error) {
	return &models.Produto{ID: id}, nil
}

func (stubProductService) Delete(ctx context.Context, id int64) (*models.Produto, error) {
	return &models.Produto{ID: id}, nil
}

type stubClientService struct{}

func (stubClientService) List(ctx context.Context) ([]models.Cliente, error) {
	return []models.Cliente{}, nil
}

func (stubClientService) Get(ctx context.Context, id int64) (*models.Cliente, error) {
	return &models.Cliente{ID: id}, nil
}

func (stubClientService) Create(ctx context.Context, input clientsvc.Input) (*models.Cliente, error) {
	return &models.Cliente{}, nil
}

func (stubClientService) Update(ctx context.Context, id int64, input clientsvc.Input) (*models.Cliente, error) {
	return &models.Cliente{ID: id}, nil
}

func (stubClientService) Delete(ctx context.Context, id int64) (*models.Cliente, error) {
	return &models.Cliente{ID: id}, nil
}

type stubAdminService struct{}

func (stubAdminService) List(ctx context.Context) ([]models.AdminUser, error) {
	return []models.AdminUser{}, nil
}

func (stubAdminService) Create(ctx context.Context, input adminsvc.Input) (*models.AdminUser, error) {
	return &models.AdminUser{}, nil
}

func (stubAdminService) Delete(ctx context.Context, id int64) (*models.AdminUser, error) {
	return &models.AdminUser{ID: id}, nil
}

type stubQuoteService struct{}

func (stubQuoteService) Create(ctx context.Context, clienteID int64, input quotesvc.CreateInput) (*models.Orcamento, error) {
	return &models.Orcamento{ClienteID: clienteID}, nil
}

func (stubQuoteService) CreatePublic(ctx context.Context, input quotesvc.PublicInput) (*quotesvc.PublicResult, error) {
	return &quotesvc.PublicResult{}, nil
}

func (stubQuoteService) List(ctx context.Context) ([]models.Orcamento, error) {
	return []models.Orcamento{}, nil
}

func (stubQuoteService) Get(ctx context.Context, id int64) (*models.Orcamento, error) {
	return &models.Orcamento{ID: id}, nil
}

func (stubQuoteService) Update(ctx context.Context, id int64, input quotesvc.UpdateInput) (*models.Orcamento, error) {
	return &models.Orcamento{ID: id}, nil
}

func (stubQuoteService) Approve(ctx context.Context, id int64) (*models.Pedido, error) {
	return &models.Pedido{OrcamentoID: id}, nil
}

func (stubQuoteService) ListForCliente(ctx context.Context, clienteID int64) ([]models.Orcamento, error) {
	return []models.Orcamento{}, nil
}

type stubOrderService struct{}

func (stubOrderService) List(ctx context.Context) ([]models.Pedido, error) {
	return []models.Pedido{}, nil
}

func (stubOrderService) Get(ctx context.Context, id int64) (*models.Pedido, error) {
	return &models.Pedido{ID: id}, nil
}

func (stubOrderService) Update(ctx context.Context, id int64, input ordersvc.UpdateInput) (*models.Pedido, error) {
	return &models.Pedido{ID: id}, nil
}

func (stubOrderService) ListForCliente(ctx context.Context, clienteID int64) ([]models.Pedido, error) {
	return []models.Pedido{}, nil
}

type stubChatService struct{}

func (stubChatService) Send(ctx context.Context, clienteID int64, message string, history []chatsvc.HistoryEntry) (string, error) {
	return "olá", nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:          "segredo-de-teste",
			Issuer:          "oceano-backend",
			AdminTTLHours:   1,
			ClienteTTLHours: 1,
		},
		AuthRateLimit: config.AuthRateLimitConfig{
			LoginWindow:    time.Minute,
			LoginUserLimit: 5,
			LoginIPLimit:   20,
		},
		Site: config.SiteConfig{StaticDir: t.TempDir()},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: zerolog.DebugLevel, Output: io.Discard})
	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logg,
		DB:       stubPinger{},
		Renderer: renderer,
		Auth:     stubAuthService{},
		Catalog:  stubCatalogService{},
		Products: stubProductService{},
		Clients:  stubClientService{},
		Admins:   stubAdminService{},
		Quotes:   stubQuoteService{},
		Orders:   stubOrderService{},
		Chat:     stubChatService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.ActorRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		ActorID: 7,
		Role:    role,
		Nome:    "teste",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t, testConfig(t))
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicProductsIsOpen(t *testing.T) {
	router := newTestRouter(t, testConfig(t))
	req := httptest.NewRequest(http.MethodGet, "/api/produtos", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public catalog got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig(t)
	router := newTestRouter(t, cfg)

	anon := httptest.NewRequest(http.MethodGet, "/api/oceano/admin/produtos", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	cliente := httptest.NewRequest(http.MethodGet, "/api/oceano/admin/produtos", nil)
	cliente.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCliente))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, cliente)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cliente token got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/oceano/admin/produtos", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin token got %d", resp.Code)
	}
}

func TestClienteGroupRequiresClienteRole(t *testing.T) {
	cfg := testConfig(t)
	router := newTestRouter(t, cfg)

	anon := httptest.NewRequest(http.MethodGet, "/api/oceano/cliente/orcamentos", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/oceano/cliente/orcamentos", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin token got %d", resp.Code)
	}

	cliente := httptest.NewRequest(http.MethodGet, "/api/oceano/cliente/orcamentos", nil)
	cliente.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCliente))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, cliente)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cliente token got %d", resp.Code)
	}
}

func TestChatRequiresClienteToken(t *testing.T) {
	cfg := testConfig(t)
	router := newTestRouter(t, cfg)

	body := `{"message":"oi"}`
	anon := httptest.NewRequest(http.MethodPost, "/api/oceano/chat", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, anon)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}

	cliente := httptest.NewRequest(http.MethodPost, "/api/oceano/chat", strings.NewReader(body))
	cliente.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.ActorRoleCliente))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, cliente)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cliente chat got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "olá") {
		t.Fatalf("expected stub reply in body got %s", resp.Body.String())
	}
}

func TestPublicQuoteRejectsEmptyBody(t *testing.T) {
	router := newTestRouter(t, testConfig(t))
	req := httptest.NewRequest(http.MethodPost, "/api/oceano/orcamento/publico", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty submission got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUnmatchedPathFallsBackToNotFoundPage(t *testing.T) {
	router := newTestRouter(t, testConfig(t))
	req := httptest.NewRequest(http.MethodGet, "/caminho/desconhecido", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Fatalf("expected html fallback got %q", ct)
	}
}
