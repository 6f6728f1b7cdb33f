package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/shashankb2004/edublog/internal/middleware"
	"github.com/shashankb2004/edublog/internal/middleware/metrics"
	rl "github.com/shashankb2004/edublog/internal/middleware/ratelimiter"
	"github.com/shashankb2004/edublog/internal/setup"
)

// New creates and configures a new mux router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that subrouter
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	// setup CORS for frontend
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	))

	// Add security headers
	// Strict policy: JSON API only, no scripts/styles needed
	apiCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(false, apiCSP))

	r.Use(metrics.Middleware)

	// Add a wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.HandleFunc("/", h.Welcome).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Auth routes
	auth := api.PathPrefix("/auth").Subrouter()

	// Credential endpoints are brute-force targets, limit per IP
	authCredentials := auth.NewRoute().Subrouter()
	authCredentials.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP)) // 1 per second by IP
	authCredentials.Use(mw.GlobalRateLimit(rl.Rps100()))           // 100 global RPS
	authCredentials.HandleFunc("/signup", h.Signup).Methods("POST")
	authCredentials.HandleFunc("/login", h.Login).Methods("POST")

	authLoggedIn := auth.NewRoute().Subrouter()
	authLoggedIn.Use(authMw.NeedAuth())
	authLoggedIn.HandleFunc("/profile", h.Profile).Methods("GET")
	authLoggedIn.HandleFunc("/change-password", h.ChangePassword).Methods("POST")

	// Blog routes, reads are public
	api.HandleFunc("/blogs", h.GetBlogs).Methods("GET")

	// Writes and the per-user listing require a valid token.
	// "/blogs/user" must be registered before "/blogs/{id}" so the literal
	// segment wins over the id pattern.
	blogsLoggedIn := api.NewRoute().Subrouter()
	blogsLoggedIn.Use(authMw.NeedAuth())
	blogsLoggedIn.Use(mw.RateLimit(rl.Rps10(), mw.GetUserIdentity)) // 10 RPS per user
	blogsLoggedIn.HandleFunc("/blogs/user", h.GetUserBlogs).Methods("GET")
	blogsLoggedIn.HandleFunc("/blogs", h.CreateBlog).Methods("POST")
	blogsLoggedIn.HandleFunc("/blogs/{id}", h.UpdateBlog).Methods("PUT")
	blogsLoggedIn.HandleFunc("/blogs/{id}", h.DeleteBlog).Methods("DELETE")

	api.HandleFunc("/blogs/{id}", h.GetBlog).Methods("GET")

	return r
}
