package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oceanoetiquetas/oceano-backend/api/controllers"
	"github.com/oceanoetiquetas/oceano-backend/api/middleware"
	adminsvc "github.com/oceanoetiquetas/oceano-backend/internal/admins"
	authsvc "github.com/oceanoetiquetas/oceano-backend/internal/auth"
	catalogsvc "github.com/oceanoetiquetas/oceano-backend/internal/catalog"
	chatsvc "github.com/oceanoetiquetas/oceano-backend/internal/chat"
	clientsvc "github.com/oceanoetiquetas/oceano-backend/internal/clients"
	"github.com/oceanoetiquetas/oceano-backend/internal/navigation"
	ordersvc "github.com/oceanoetiquetas/oceano-backend/internal/orders"
	productsvc "github.com/oceanoetiquetas/oceano-backend/internal/products"
	quotesvc "github.com/oceanoetiquetas/oceano-backend/internal/quotes"
	"github.com/oceanoetiquetas/oceano-backend/internal/web"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
	"github.com/oceanoetiquetas/oceano-backend/pkg/metrics"
	"github.com/oceanoetiquetas/oceano-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. The router only composes;
// construction and lifecycle live in cmd/api.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Metrics  *metrics.HTTPMetrics
	Renderer *web.Renderer
	Nav      *navigation.Builder

	Auth     authsvc.Service
	Catalog  catalogsvc.Service
	Products productsvc.Service
	Clients  clientsvc.Service
	Admins   adminsvc.Service
	Quotes   quotesvc.Service
	Orders   ordersvc.Service
	Chat     chatsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	loginAdminPolicy := middleware.NewAuthRateLimitPolicy(
		"login-admin",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)
	loginClientePolicy := middleware.NewAuthRateLimitPolicy(
		"login-cliente",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUserLimit,
	)

	// A typed nil *redis.Client must not reach the middleware as a non-nil
	// interface.
	var redisPinger controllers.Pinger
	adminLimiter := middleware.AuthRateLimit(loginAdminPolicy, nil, logg)
	clienteLimiter := middleware.AuthRateLimit(loginClientePolicy, nil, logg)
	if deps.Redis != nil {
		redisPinger = deps.Redis
		adminLimiter = middleware.AuthRateLimit(loginAdminPolicy, deps.Redis, logg)
		clienteLimiter = middleware.AuthRateLimit(loginClientePolicy, deps.Redis, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, redisPinger, logg))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Storefront pages.
	r.Get("/", controllers.HomePage(deps.Renderer, deps.Nav, cfg.Site, logg))
	r.Get("/produtos/{slug}", controllers.ProdutoPage(deps.Renderer, deps.Catalog, deps.Nav, cfg.Site, logg))

	// Public JSON API.
	r.Get("/api/produtos", controllers.PublicProducts(deps.Catalog, logg))
	r.Post("/api/oceano/orcamento/publico", controllers.PublicQuote(deps.Quotes, logg))

	r.Route("/api/oceano/admin", func(r chi.Router) {
		r.With(adminLimiter).Post("/login", controllers.AdminLogin(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(cfg.JWT, logg))

			r.Route("/produtos", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(deps.Products, logg))
				r.Post("/", controllers.AdminCreateProduct(deps.Products, logg))
				r.Get("/{id}", controllers.AdminGetProduct(deps.Products, logg))
				r.Put("/{id}", controllers.AdminUpdateProduct(deps.Products, logg))
				r.Delete("/{id}", controllers.AdminDeleteProduct(deps.Products, logg))
			})
			r.Route("/clientes", func(r chi.Router) {
				r.Get("/", controllers.AdminListClients(deps.Clients, logg))
				r.Post("/", controllers.AdminCreateClient(deps.Clients, logg))
				r.Get("/{id}", controllers.AdminGetClient(deps.Clients, logg))
				r.Put("/{id}", controllers.AdminUpdateClient(deps.Clients, logg))
				r.Delete("/{id}", controllers.AdminDeleteClient(deps.Clients, logg))
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.AdminListUsers(deps.Admins, logg))
				r.Post("/", controllers.AdminCreateUser(deps.Admins, logg))
				r.Delete("/{id}", controllers.AdminDeleteUser(deps.Admins, logg))
			})
			r.Route("/orcamentos", func(r chi.Router) {
				r.Get("/", controllers.AdminListQuotes(deps.Quotes, logg))
				r.Get("/{id}", controllers.AdminGetQuote(deps.Quotes, logg))
				r.Put("/{id}", controllers.AdminUpdateQuote(deps.Quotes, logg))
				r.Post("/{id}/aprovar", controllers.AdminApproveQuote(deps.Quotes, logg))
			})
			r.Route("/pedidos", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
				r.Get("/{id}", controllers.AdminGetOrder(deps.Orders, logg))
				r.Put("/{id}", controllers.AdminUpdateOrder(deps.Orders, logg))
			})
		})
	})

	r.Route("/api/oceano/cliente", func(r chi.Router) {
		r.With(clienteLimiter).Post("/login", controllers.ClienteLogin(deps.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireCliente(cfg.JWT, logg))
			r.Get("/dashboard", controllers.ClienteDashboard(deps.Quotes, deps.Orders, logg))
			r.Get("/orcamentos", controllers.ClienteQuotes(deps.Quotes, logg))
			r.Post("/orcamentos/novo", controllers.ClienteNewQuote(deps.Quotes, logg))
		})
	})

	r.With(middleware.RequireCliente(cfg.JWT, logg)).Post("/api/oceano/chat", controllers.Chat(deps.Chat, logg))

	// Everything else falls through to the static storefront bundle.
	if deps.Renderer != nil {
		r.NotFound(deps.Renderer.StaticFallback(cfg.Site.StaticDir))
	}

	return r
}
