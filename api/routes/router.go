package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lacomanda/comanda-backend/api/controllers"
	"github.com/lacomanda/comanda-backend/api/middleware"
	"github.com/lacomanda/comanda-backend/internal/auth"
	"github.com/lacomanda/comanda-backend/internal/catalog"
	category "github.com/lacomanda/comanda-backend/internal/categories"
	"github.com/lacomanda/comanda-backend/internal/configurator"
	ingredient "github.com/lacomanda/comanda-backend/internal/ingredients"
	product "github.com/lacomanda/comanda-backend/internal/products"
	"github.com/lacomanda/comanda-backend/pkg/auth/session"
	"github.com/lacomanda/comanda-backend/pkg/config"
	"github.com/lacomanda/comanda-backend/pkg/db"
	"github.com/lacomanda/comanda-backend/pkg/enums"
	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        *redis.Client
	Sessions     session.AccessSessionChecker
	AuthService  auth.Service
	Catalog      catalog.Service
	Configurator configurator.Service
	Categories   category.Service
	Products     product.Service
	Ingredients  ingredient.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/categories", controllers.CatalogCategories(p.Catalog, logg))
		r.Get("/categories/{categoryId}/products", controllers.CatalogProducts(p.Catalog, logg))
		r.Get("/products/{productId}", controllers.CatalogProductDetail(p.Catalog, logg))
		r.Get("/products/{productId}/options", controllers.CatalogProductOptions(p.Catalog, logg))
		r.Post("/quote", controllers.CatalogQuote(p.Configurator, logg))
	})

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Post("/", controllers.SessionOpen(p.Configurator, logg))
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", controllers.SessionDetail(p.Configurator, logg))
			r.Post("/options/{optionId}/toggle", controllers.SessionToggleOption(p.Configurator, logg))
			r.Put("/quantity", controllers.SessionSetQuantity(p.Configurator, logg))
			r.Post("/finalize", controllers.SessionFinalize(p.Configurator, logg))
			r.Delete("/", controllers.SessionClose(p.Configurator, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdministrator), logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.AdminListCategories(p.Categories, logg))
			r.Post("/", controllers.AdminCreateCategory(p.Categories, logg))
			r.Route("/{categoryId}", func(r chi.Router) {
				r.Get("/", controllers.AdminGetCategory(p.Categories, logg))
				r.Patch("/", controllers.AdminUpdateCategory(p.Categories, logg))
				r.Delete("/", controllers.AdminDeleteCategory(p.Categories, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(p.Products, logg))
			r.Post("/", controllers.AdminCreateProduct(p.Products, logg))
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", controllers.AdminGetProduct(p.Products, logg))
				r.Patch("/", controllers.AdminUpdateProduct(p.Products, logg))
				r.Delete("/", controllers.AdminDeleteProduct(p.Products, logg))
				r.Put("/option-groups", controllers.AdminSetProductOptionGroups(p.Products, logg))
			})
		})

		r.Route("/option-groups", func(r chi.Router) {
			r.Get("/", controllers.AdminListOptionGroups(p.Products, logg))
			r.Post("/", controllers.AdminCreateOptionGroup(p.Products, logg))
			r.Route("/{groupId}", func(r chi.Router) {
				r.Get("/", controllers.AdminGetOptionGroup(p.Products, logg))
				r.Patch("/", controllers.AdminUpdateOptionGroup(p.Products, logg))
				r.Delete("/", controllers.AdminDeleteOptionGroup(p.Products, logg))
				r.Post("/options", controllers.AdminCreateOption(p.Products, logg))
			})
		})

		r.Route("/options/{optionId}", func(r chi.Router) {
			r.Patch("/", controllers.AdminUpdateOption(p.Products, logg))
			r.Delete("/", controllers.AdminDeleteOption(p.Products, logg))
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", controllers.AdminListIngredients(p.Ingredients, logg))
			r.Get("/low-stock", controllers.AdminListLowStockIngredients(p.Ingredients, logg))
			r.Post("/", controllers.AdminCreateIngredient(p.Ingredients, logg))
			r.Route("/{ingredientId}", func(r chi.Router) {
				r.Get("/", controllers.AdminGetIngredient(p.Ingredients, logg))
				r.Patch("/", controllers.AdminUpdateIngredient(p.Ingredients, logg))
				r.Delete("/", controllers.AdminDeleteIngredient(p.Ingredients, logg))
			})
		})
	})

	return r
}
