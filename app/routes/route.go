package routes

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/go-catalog/app/handlers"
	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/metrics"
	"github.com/Rakhulsr/go-catalog/app/middlewares"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/resources"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/Rakhulsr/go-catalog/app/storage"
	"github.com/Rakhulsr/go-catalog/app/utils/renderer"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Deps struct {
	DB           *gorm.DB
	Store        storage.BlobStore
	LocalFiles   *storage.LocalStore
	Mailer       services.MailSender
	ContactTo    string
	TokenTTL     time.Duration
	SignedURLTTL time.Duration
	Production   bool
}

// NewRouter wires repositories, services and handlers. The returned handler
// already includes the method override, which must run before routing.
func NewRouter(deps Deps) http.Handler {
	rnd := renderer.New(deps.Production)
	respond := handlers.NewResponder(rnd, deps.Production)
	v := helpers.NewValidator()

	userRepo := repositories.NewUserRepository(deps.DB)
	tokenRepo := repositories.NewTokenRepository(deps.DB)
	categoryRepo := repositories.NewCategoryRepository(deps.DB)
	addressRepo := repositories.NewGormAddressRepository(deps.DB)
	providerRepo := repositories.NewProviderRepository(deps.DB)
	productRepo := repositories.NewProductRepository(deps.DB)

	authService := services.NewAuthService(userRepo, tokenRepo, v, deps.TokenTTL)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, v)
	providerService := services.NewProviderService(deps.DB, providerRepo, addressRepo, productRepo, deps.Store, v)
	productService := services.NewProductService(deps.DB, productRepo, categoryRepo, providerRepo, deps.Store, v)
	dashboardService := services.NewDashboardService(productRepo, providerRepo, categoryRepo)
	contactService := services.NewContactService(deps.Mailer, deps.ContactTo, v)

	transformer := resources.NewTransformer(deps.Store, deps.SignedURLTTL)

	authHandler := handlers.NewAuthHandler(respond, authService, transformer)
	categoryHandler := handlers.NewCategoryHandler(respond, categoryService, transformer)
	providerHandler := handlers.NewProviderHandler(respond, providerService, transformer)
	productHandler := handlers.NewProductHandler(respond, productService, transformer)
	dashboardHandler := handlers.NewDashboardHandler(respond, dashboardService)
	contactHandler := handlers.NewContactHandler(respond, contactService)
	healthHandler := handlers.NewHealthHandler(respond, deps.DB)

	router := mux.NewRouter()
	router.Use(middlewares.RecoverMiddleware(rnd, deps.Production))
	router.Use(middlewares.MetricsMiddleware)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusNotFound, "Resource not found.")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	if deps.LocalFiles != nil {
		fileHandler := handlers.NewFileHandler(respond, deps.LocalFiles)
		router.HandleFunc("/files/{key:.+}", fileHandler.Serve).Methods("GET")
	}

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/contact", contactHandler.Send).Methods("POST")

	api.HandleFunc("/categories", categoryHandler.Index).Methods("GET")
	api.HandleFunc("/categories/{id}", categoryHandler.Show).Methods("GET")
	api.HandleFunc("/categories/{id}/products", categoryHandler.Products).Methods("GET")

	api.HandleFunc("/providers", providerHandler.Index).Methods("GET")
	api.HandleFunc("/providers/{id}", providerHandler.Show).Methods("GET")
	api.HandleFunc("/providers/{id}/products", providerHandler.Products).Methods("GET")

	api.HandleFunc("/products", productHandler.Index).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.Show).Methods("GET")

	authed := api.NewRoute().Subrouter()
	authed.Use(middlewares.AuthMiddleware(authService, rnd))

	authed.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	authed.HandleFunc("/user", authHandler.Me).Methods("GET")
	authed.HandleFunc("/dashboard/counts", dashboardHandler.Counts).Methods("GET")

	authed.HandleFunc("/categories", categoryHandler.Store).Methods("POST")
	authed.HandleFunc("/categories/{id}", categoryHandler.Update).Methods("PUT", "PATCH")
	authed.HandleFunc("/categories/{id}", categoryHandler.Destroy).Methods("DELETE")

	authed.HandleFunc("/providers", providerHandler.Store).Methods("POST")
	authed.HandleFunc("/providers/{id}", providerHandler.Update).Methods("PUT", "PATCH")
	authed.HandleFunc("/providers/{id}", providerHandler.Destroy).Methods("DELETE")

	authed.HandleFunc("/products", productHandler.Store).Methods("POST")
	authed.HandleFunc("/products/{id}", productHandler.Update).Methods("PUT", "PATCH")
	authed.HandleFunc("/products/{id}", productHandler.Destroy).Methods("DELETE")

	return middlewares.MethodOverrideMiddleware(router)
}
