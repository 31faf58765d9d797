package router

import (
	"net/http"

	"labtrack/internal/application/auth"
	"labtrack/internal/delivery/http/cookie"
	"labtrack/internal/delivery/http/handler"
	"labtrack/internal/delivery/http/middleware"
	"labtrack/internal/logging"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Test    *handler.TestHandler
	Result  *handler.ResultHandler
	Report  *handler.ReportHandler
	Page    *handler.PageHandler
}

// Setup configures all routes for the application
func Setup(handlers Handlers, authService auth.Service, cookies *cookie.Codec, logger logging.Logger) http.Handler {
	mux := http.NewServeMux()

	authRequired := middleware.RequireAuthenticated
	anonymousOnly := middleware.RequireAnonymous
	page := handlers.Page.Page

	// ==================
	// Auth routes
	// ==================
	mux.HandleFunc("GET /login", anonymousOnly(page("login.html")))
	mux.HandleFunc("POST /login", anonymousOnly(handlers.Auth.Login))
	mux.HandleFunc("POST /signup", anonymousOnly(handlers.Auth.Signup))
	mux.HandleFunc("DELETE /logout", handlers.Auth.Logout)

	// ==================
	// Pages (protected)
	// ==================
	mux.HandleFunc("GET /{$}", authRequired(page("products.html")))
	mux.HandleFunc("GET /products", authRequired(page("products.html")))
	mux.HandleFunc("GET /tests", authRequired(page("tests.html")))
	mux.HandleFunc("GET /results", authRequired(page("results.html")))
	mux.HandleFunc("GET /reports", authRequired(page("reports.html")))
	mux.HandleFunc("GET /comparison", authRequired(page("comparison.html")))

	// ==================
	// Product routes (protected)
	// ==================
	mux.HandleFunc("GET /productstable", authRequired(handlers.Product.Table))
	mux.HandleFunc("POST /products/add", authRequired(handlers.Product.Add))

	// ==================
	// Test, result and report routes (protected)
	// ==================
	mux.HandleFunc("GET /teststable", authRequired(handlers.Test.Table))
	mux.HandleFunc("GET /teststable/{pId}", authRequired(handlers.Test.TableByProduct))
	mux.HandleFunc("GET /testsbyId", authRequired(handlers.Test.ByID))
	mux.HandleFunc("GET /resultstable", authRequired(handlers.Result.Table))
	mux.HandleFunc("GET /resultstable/{testId}/{prodId}", authRequired(handlers.Result.TableByTest))
	mux.HandleFunc("GET /getreports", authRequired(handlers.Report.List))

	return chain(mux,
		middleware.RequestLogger(logger),
		middleware.MethodOverride,
		middleware.LoadSession(authService, cookies, logger),
	)
}

// chain wraps h so that the first middleware runs outermost
func chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
