package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/troyan365/marketplace/internal/favorite/domain"
	"github.com/troyan365/marketplace/internal/favorite/usecase/command"
	"github.com/troyan365/marketplace/internal/favorite/usecase/query"
)

// FavoriteHandler handles HTTP requests for favorites
type FavoriteHandler struct {
	// Command handlers
	toggleHandler       *command.ToggleFavoriteHandler
	deviceToggleHandler *command.ToggleDeviceFavoriteHandler
	reconcileHandler    *command.ReconcileFavoritesHandler

	// Query handlers
	listHandler       *query.ListFavoritesHandler
	deviceListHandler *query.DeviceFavoritesHandler

	requestCounter   *prometheus.CounterVec
	requestLatency   *prometheus.HistogramVec
	reconcileCounter *prometheus.CounterVec
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(
	repo domain.FavoriteRepository,
	store domain.DeviceFavoriteStore,
	listings domain.ListingChecker,
	publisher command.ReconcilePublisher,
) *FavoriteHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_service_requests_total",
			Help: "Total number of requests to favorite service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "favorite_service_request_duration_seconds",
			Help:    "Duration of favorite service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	reconcileCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorite_service_reconciliations_total",
			Help: "Total number of favorite reconciliation runs by outcome",
		},
		[]string{"outcome"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(reconcileCounter)

	return &FavoriteHandler{
		toggleHandler:       command.NewToggleFavoriteHandler(repo),
		deviceToggleHandler: command.NewToggleDeviceFavoriteHandler(store),
		reconcileHandler:    command.NewReconcileFavoritesHandler(repo, store, listings, publisher),
		listHandler:         query.NewListFavoritesHandler(repo),
		deviceListHandler:   query.NewDeviceFavoritesHandler(store),
		requestCounter:      requestCounter,
		requestLatency:      requestLatency,
		reconcileCounter:    reconcileCounter,
	}
}

// Reconciler exposes the reconcile handler for event consumers
func (h *FavoriteHandler) Reconciler() *command.ReconcileFavoritesHandler {
	return h.reconcileHandler
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *FavoriteHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// ListFavorites handles GET /favorites (authenticated user)
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	refs, err := h.listHandler.Handle(r.Context(), query.ListFavoritesQuery{UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to load favorites")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"favorites": refs})
}

// ToggleFavorite handles POST /favorites/toggle (authenticated user)
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		ListingID string `json:"listing_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ListingID) == "" {
		h.respondError(w, http.StatusBadRequest, "listing_id is required")
		return
	}

	favorited, err := h.toggleHandler.Handle(r.Context(), command.ToggleFavoriteCommand{
		UserID:    userID,
		ListingID: req.ListingID,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"listing_id": req.ListingID,
		"favorited":  favorited,
	})
}

// Reconcile handles POST /favorites/reconcile (authenticated user).
// The X-Device-ID header names the device whose local set gets merged.
// Repeating the call is safe; merges deduplicate against the remote set.
func (h *FavoriteHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	result := h.reconcileHandler.Handle(r.Context(), command.ReconcileFavoritesCommand{
		UserID:   userID,
		DeviceID: r.Header.Get("X-Device-ID"),
	})

	outcome := "complete"
	if result.Incomplete {
		outcome = "incomplete"
	}
	h.reconcileCounter.WithLabelValues(outcome).Inc()

	h.respondJSON(w, http.StatusOK, result)
}

// ListDeviceFavorites handles GET /device/favorites (anonymous device)
func (h *FavoriteHandler) ListDeviceFavorites(w http.ResponseWriter, r *http.Request) {
	deviceID := r.Header.Get("X-Device-ID")

	refs, err := h.deviceListHandler.Handle(r.Context(), query.DeviceFavoritesQuery{DeviceID: deviceID})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to load device favorites")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"favorites": refs})
}

// ToggleDeviceFavorite handles POST /device/favorites/toggle (anonymous device)
func (h *FavoriteHandler) ToggleDeviceFavorite(w http.ResponseWriter, r *http.Request) {
	deviceID := r.Header.Get("X-Device-ID")

	var req struct {
		ListingID string `json:"listing_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.ListingID) == "" {
		h.respondError(w, http.StatusBadRequest, "listing_id is required")
		return
	}

	refs, err := h.deviceToggleHandler.Handle(r.Context(), command.ToggleDeviceFavoriteCommand{
		DeviceID:  deviceID,
		ListingID: req.ListingID,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to toggle device favorite")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"favorites": refs})
}

// HealthCheck handles GET /health
func (h *FavoriteHandler) HealthCheck(db *gorm.DB, rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		if err := rdb.Ping(ctx).Err(); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// respondJSON sends a JSON response
func (h *FavoriteHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *FavoriteHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all favorite routes
func (h *FavoriteHandler) RegisterRoutes(router *mux.Router) {
	// Authenticated user routes
	router.HandleFunc("/favorites", h.metricsMiddleware("/favorites", AuthMiddleware(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/favorites/toggle", h.metricsMiddleware("/favorites/toggle", AuthMiddleware(h.ToggleFavorite))).Methods("POST")
	router.HandleFunc("/favorites/reconcile", h.metricsMiddleware("/favorites/reconcile", AuthMiddleware(h.Reconcile))).Methods("POST")

	// Anonymous device routes
	router.HandleFunc("/device/favorites", h.metricsMiddleware("/device/favorites", DeviceMiddleware(h.ListDeviceFavorites))).Methods("GET")
	router.HandleFunc("/device/favorites/toggle", h.metricsMiddleware("/device/favorites/toggle", DeviceMiddleware(h.ToggleDeviceFavorite))).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *FavoriteHandler) RegisterHealthCheck(router *mux.Router, db *gorm.DB, rdb *redis.Client) {
	router.HandleFunc("/health", h.HealthCheck(db, rdb)).Methods("GET")
}
