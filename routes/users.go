package routes

import (
	"net/http"
	"time"

	"github.com/K4Y35/krishibazar-backend/controllers/auth"
	"github.com/K4Y35/krishibazar-backend/controllers/users"
	"github.com/K4Y35/krishibazar-backend/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers auth and investor routes on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Rate limiter login/register: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Rate limiter session: 120 read / 60 write per user per minute
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)
	// Chat history is polled from the chat screen, keep it loose
	chatHistoryLimiter := middleware.NewIPRateLimiter(500, 5*time.Minute)

	// Register & Login
	api.Handle("/auth/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)
	api.Handle("/auth/logout-all", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutAllHandler)))).Methods(http.MethodPost)

	// Profile & KYC
	api.Handle("/users/profile", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ProfileHandler)))).Methods(http.MethodGet)
	api.Handle("/users/nid/upload", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UploadNidHandler)))).Methods(http.MethodPost)

	// Investments
	api.Handle("/users/investments", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CreateInvestmentHandler)))).Methods(http.MethodPost)
	api.Handle("/users/investments", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListInvestmentsHandler)))).Methods(http.MethodGet)
	api.Handle("/users/investments/{id:[0-9]+}", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetInvestmentHandler)))).Methods(http.MethodGet)
	api.Handle("/users/investments/{id:[0-9]+}/cancel", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CancelInvestmentHandler)))).Methods(http.MethodPut)
	api.Handle("/users/investments/{id:[0-9]+}/reports", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListInvestmentReportsHandler)))).Methods(http.MethodGet)

	// Progress updates are only visible to investors of the project
	api.Handle("/users/projects/{id:[0-9]+}/updates", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListProjectUpdatesHandler)))).Methods(http.MethodGet)

	// Marketplace orders
	api.Handle("/users/orders", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CreateOrderHandler)))).Methods(http.MethodPost)
	api.Handle("/users/orders", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListOrdersHandler)))).Methods(http.MethodGet)
	api.Handle("/users/orders/{id:[0-9]+}", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetOrderHandler)))).Methods(http.MethodGet)

	// Support chat
	api.Handle("/users/chat/messages", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.SendMessageHandler)))).Methods(http.MethodPost)
	api.Handle("/users/chat/messages", chatHistoryLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListMessagesHandler)))).Methods(http.MethodGet)
	api.Handle("/users/chat/read", userLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.MarkMessagesReadHandler)))).Methods(http.MethodPut)
	api.Handle("/users/chat/unread-count", chatHistoryLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UnreadCountHandler)))).Methods(http.MethodGet)
}
