package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/xelth-com/pcardgo/internal/ai"
	"github.com/xelth-com/pcardgo/internal/cache"
	"github.com/xelth-com/pcardgo/internal/config"
	"github.com/xelth-com/pcardgo/internal/database"
	"github.com/xelth-com/pcardgo/internal/middleware"
	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/policy"
	"github.com/xelth-com/pcardgo/internal/services/storage"
	"github.com/xelth-com/pcardgo/internal/websocket"
)

// Router wraps the mux router and the wired services
type Router struct {
	*mux.Router
	db       *database.DB
	cfg      *config.Config
	engine   *policy.Engine
	hub      *websocket.Hub
	store    storage.Store
	reviewer *ai.ReceiptReviewer // nil when no GEMINI_API_KEY is configured
	cache    *cache.Cache        // nil when no Redis is configured
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, engine *policy.Engine, hub *websocket.Hub, store storage.Store) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		engine: engine,
		hub:    hub,
		store:  store,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// Live dashboard events
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(hub, w, req)
	})

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Policy endpoints: stateless, recomputed on every call for live feedback
	api.HandleFunc("/policy/validate", r.validatePolicy).Methods("POST")
	api.HandleFunc("/policy/tier", r.getApprovalTier).Methods("GET")

	// Purchase request workflow
	api.HandleFunc("/requests", r.listRequests).Methods("GET")
	api.HandleFunc("/requests", r.createRequest).Methods("POST")
	api.HandleFunc("/requests/{id}", r.getRequest).Methods("GET")
	api.HandleFunc("/requests/{id}", r.updateRequest).Methods("PUT")
	api.HandleFunc("/requests/{id}/submit", r.submitRequest).Methods("POST")
	api.HandleFunc("/requests/{id}/pdf", r.exportRequestPDF).Methods("GET")

	// Approver actions
	approver := middleware.RequireRole(models.RoleApprover, models.RoleAdmin)
	api.Handle("/requests/{id}/approve", approver(http.HandlerFunc(r.approveRequest))).Methods("POST")
	api.Handle("/requests/{id}/reject", approver(http.HandlerFunc(r.rejectRequest))).Methods("POST")
	api.Handle("/approvals/pending", approver(http.HandlerFunc(r.listPendingApprovals))).Methods("GET")

	// Receipts
	api.HandleFunc("/requests/{id}/receipts", r.uploadReceipt).Methods("POST")
	api.HandleFunc("/receipts/{id}/file", r.getReceiptFile).Methods("GET")
	api.Handle("/receipts/{id}/verify", approver(http.HandlerFunc(r.verifyReceipt))).Methods("POST")

	// Budgets (admin-managed, visible to everyone signed in)
	admin := middleware.RequireRole(models.RoleAdmin)
	api.HandleFunc("/budgets", r.listBudgets).Methods("GET")
	api.Handle("/budgets", admin(http.HandlerFunc(r.createBudget))).Methods("POST")
	api.Handle("/budgets/{id}", admin(http.HandlerFunc(r.updateBudget))).Methods("PUT")
	api.Handle("/budgets/{id}", admin(http.HandlerFunc(r.deleteBudget))).Methods("DELETE")

	// Dashboard + exports
	api.HandleFunc("/dashboard/summary", r.dashboardSummary).Methods("GET")
	api.Handle("/export/requests.xlsx", admin(http.HandlerFunc(r.exportRequestsXLSX))).Methods("GET")

	// Static files
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.FrontendDir)))

	return r
}

// SetReviewer wires the AI receipt reviewer once the Gemini client is up.
func (r *Router) SetReviewer(reviewer *ai.ReceiptReviewer) {
	r.reviewer = reviewer
}

// SetCache wires the optional Redis dashboard cache.
func (r *Router) SetCache(c *cache.Cache) {
	r.cache = c
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "pcard",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"version": "1.0.0",
	})
}

// claims returns the JWT claims stored by the auth middleware.
func (r *Router) claims(req *http.Request) jwt.MapClaims {
	return middleware.ClaimsFrom(req.Context())
}

// currentUserID returns the id claim of the authenticated user.
func (r *Router) currentUserID(req *http.Request) string {
	id, _ := r.claims(req)["id"].(string)
	return id
}

// currentUserName returns the display name claim of the authenticated user.
func (r *Router) currentUserName(req *http.Request) string {
	name, _ := r.claims(req)["name"].(string)
	return name
}

// currentUserRole returns the role claim of the authenticated user.
func (r *Router) currentUserRole(req *http.Request) string {
	role, _ := r.claims(req)["role"].(string)
	return role
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
