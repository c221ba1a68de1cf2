package routes

import (
	"net/http"
	"time"

	"github.com/K4Y35/krishibazar-backend/controllers/admins"
	"github.com/K4Y35/krishibazar-backend/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Rate limiter for admin login: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	// Public admin routes
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	// Protected admin routes
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Dashboard stats
	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.Dashboard)).Methods(http.MethodGet)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.GetUsers)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.GetUserDetail)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveUser)).Methods(http.MethodPut)

	// Investment management
	adminRouter.Handle("/investments", http.HandlerFunc(admins.GetInvestments)).Methods(http.MethodGet)
	adminRouter.Handle("/investments/stats", http.HandlerFunc(admins.GetInvestmentStats)).Methods(http.MethodGet)
	adminRouter.Handle("/investments/{id:[0-9]+}", http.HandlerFunc(admins.GetInvestmentDetail)).Methods(http.MethodGet)
	adminRouter.Handle("/investments/{id:[0-9]+}/confirm", http.HandlerFunc(admins.ConfirmInvestment)).Methods(http.MethodPut)
	adminRouter.Handle("/investments/{id:[0-9]+}/cancel", http.HandlerFunc(admins.CancelInvestment)).Methods(http.MethodPut)
	adminRouter.Handle("/investments/{id:[0-9]+}/complete", http.HandlerFunc(admins.CompleteInvestment)).Methods(http.MethodPut)

	// Investment reports (periodic per-project accountability reports)
	adminRouter.Handle("/investment-reports", http.HandlerFunc(admins.CreateInvestmentReport)).Methods(http.MethodPost)
	adminRouter.Handle("/investment-reports", http.HandlerFunc(admins.GetInvestmentReports)).Methods(http.MethodGet)
	adminRouter.Handle("/investment-reports/{id:[0-9]+}", http.HandlerFunc(admins.GetInvestmentReportDetail)).Methods(http.MethodGet)
	adminRouter.Handle("/investment-reports/{id:[0-9]+}", http.HandlerFunc(admins.UpdateInvestmentReport)).Methods(http.MethodPut)
	adminRouter.Handle("/investment-reports/{id:[0-9]+}", http.HandlerFunc(admins.DeleteInvestmentReport)).Methods(http.MethodDelete)

	// Project management
	adminRouter.Handle("/projects", http.HandlerFunc(admins.CreateProject)).Methods(http.MethodPost)
	adminRouter.Handle("/projects", http.HandlerFunc(admins.GetProjects)).Methods(http.MethodGet)
	adminRouter.Handle("/projects/{id:[0-9]+}", http.HandlerFunc(admins.GetProjectDetail)).Methods(http.MethodGet)
	adminRouter.Handle("/projects/{id:[0-9]+}", http.HandlerFunc(admins.UpdateProject)).Methods(http.MethodPut)
	adminRouter.Handle("/projects/{id:[0-9]+}", http.HandlerFunc(admins.DeleteProject)).Methods(http.MethodDelete)
	adminRouter.Handle("/projects/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveProject)).Methods(http.MethodPut)
	adminRouter.Handle("/projects/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectProject)).Methods(http.MethodPut)
	adminRouter.Handle("/projects/{id:[0-9]+}/start", http.HandlerFunc(admins.StartProject)).Methods(http.MethodPut)
	adminRouter.Handle("/projects/{id:[0-9]+}/complete", http.HandlerFunc(admins.CompleteProject)).Methods(http.MethodPut)
	adminRouter.Handle("/projects/{id:[0-9]+}/cancel", http.HandlerFunc(admins.CancelProject)).Methods(http.MethodPut)
	adminRouter.Handle("/projects/{id:[0-9]+}/upload", http.HandlerFunc(admins.UploadProjectImages)).Methods(http.MethodPost)
	adminRouter.Handle("/projects/{id:[0-9]+}/updates", http.HandlerFunc(admins.CreateProjectUpdate)).Methods(http.MethodPost)
	adminRouter.Handle("/projects/{id:[0-9]+}/updates", http.HandlerFunc(admins.GetProjectUpdates)).Methods(http.MethodGet)

	// Product management
	adminRouter.Handle("/products", http.HandlerFunc(admins.CreateProduct)).Methods(http.MethodPost)
	adminRouter.Handle("/products/{id:[0-9]+}", http.HandlerFunc(admins.UpdateProduct)).Methods(http.MethodPut)
	adminRouter.Handle("/products/{id:[0-9]+}", http.HandlerFunc(admins.DeleteProduct)).Methods(http.MethodDelete)
	adminRouter.Handle("/products/{id:[0-9]+}/upload", http.HandlerFunc(admins.UploadProductImages)).Methods(http.MethodPost)

	// Category management
	adminRouter.Handle("/categories", http.HandlerFunc(admins.GetCategories)).Methods(http.MethodGet)
	adminRouter.Handle("/categories", http.HandlerFunc(admins.CreateCategory)).Methods(http.MethodPost)
	adminRouter.Handle("/categories/{id:[0-9]+}", http.HandlerFunc(admins.UpdateCategory)).Methods(http.MethodPut)
	adminRouter.Handle("/categories/{id:[0-9]+}", http.HandlerFunc(admins.DeleteCategory)).Methods(http.MethodDelete)

	// Order management
	adminRouter.Handle("/orders", http.HandlerFunc(admins.GetOrders)).Methods(http.MethodGet)
	adminRouter.Handle("/orders/{id:[0-9]+}", http.HandlerFunc(admins.GetOrderDetail)).Methods(http.MethodGet)
	adminRouter.Handle("/orders/{id:[0-9]+}/status", http.HandlerFunc(admins.UpdateOrderStatus)).Methods(http.MethodPut)
	adminRouter.Handle("/orders/{id:[0-9]+}", http.HandlerFunc(admins.DeleteOrder)).Methods(http.MethodDelete)

	// Support chat
	adminRouter.Handle("/chat/conversations", http.HandlerFunc(admins.GetConversations)).Methods(http.MethodGet)
	adminRouter.Handle("/chat/users/{id:[0-9]+}", http.HandlerFunc(admins.GetUserThread)).Methods(http.MethodGet)
	adminRouter.Handle("/chat/users/{id:[0-9]+}", http.HandlerFunc(admins.SendMessage)).Methods(http.MethodPost)
	adminRouter.Handle("/chat/users/{id:[0-9]+}/read", http.HandlerFunc(admins.MarkThreadRead)).Methods(http.MethodPut)
}
