package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/K4Y35/krishibazar-backend/controllers"
	"github.com/K4Y35/krishibazar-backend/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	// Health check endpoint for Docker health checks (root level)
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"service":   "krishibazar-api",
		})
	})).Methods(http.MethodGet)

	// CORS - origins from CORS_ALLOWED_ORIGINS (comma-separated) or defaults
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	origins := []string{
		"https://krishibazar.com.bd", "https://admin.krishibazar.com.bd",
		"http://localhost:3000", "http://localhost:8080", "http://127.0.0.1:3000", "http://127.0.0.1:8080",
	}
	if originsEnv != "" {
		parts := strings.Split(originsEnv, ",")
		for _, p := range parts {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Public catalogue: browsing needs no account
	publicLimiter := middleware.NewIPRateLimiter(300, 5*time.Minute)
	api.Handle("/projects", publicLimiter.Middleware(http.HandlerFunc(controllers.ProjectListHandler))).Methods(http.MethodGet)
	api.Handle("/projects/{id:[0-9]+}", publicLimiter.Middleware(http.HandlerFunc(controllers.ProjectDetailHandler))).Methods(http.MethodGet)
	api.Handle("/products", publicLimiter.Middleware(http.HandlerFunc(controllers.ProductListHandler))).Methods(http.MethodGet)
	api.Handle("/products/{id:[0-9]+}", publicLimiter.Middleware(http.HandlerFunc(controllers.ProductDetailHandler))).Methods(http.MethodGet)
	api.Handle("/categories", publicLimiter.Middleware(http.HandlerFunc(controllers.CategoryListHandler))).Methods(http.MethodGet)

	UsersRoutes(api)
	SetAdminRoutes(api)

	return r
}
