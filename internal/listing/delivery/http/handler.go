package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/troyan365/marketplace/internal/listing/domain"
	"github.com/troyan365/marketplace/internal/listing/storage"
	"github.com/troyan365/marketplace/internal/listing/usecase/command"
	"github.com/troyan365/marketplace/internal/listing/usecase/query"
)

const maxPhotoSize = 10 << 20 // 10 MiB

// ListingHandler handles HTTP requests for listings
type ListingHandler struct {
	// Command handlers
	createHandler *command.CreateListingHandler
	updateHandler *command.UpdateListingHandler
	deleteHandler *command.DeleteListingHandler
	photoHandler  *command.AttachPhotoHandler

	// Query handlers
	latestHandler *query.LatestListingsHandler
	searchHandler *query.SearchListingsHandler
	userHandler   *query.UserListingsHandler
	getHandler    *query.GetListingHandler
	checkHandler  *query.CheckListingHandler

	blobs          storage.BlobStore
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewListingHandler creates a new listing handler
func NewListingHandler(repo domain.ListingRepository, blobs storage.BlobStore) *ListingHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_service_requests_total",
			Help: "Total number of requests to listing service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_service_request_duration_seconds",
			Help:    "Duration of listing service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &ListingHandler{
		createHandler:  command.NewCreateListingHandler(repo),
		updateHandler:  command.NewUpdateListingHandler(repo),
		deleteHandler:  command.NewDeleteListingHandler(repo, blobs),
		photoHandler:   command.NewAttachPhotoHandler(repo, blobs),
		latestHandler:  query.NewLatestListingsHandler(repo),
		searchHandler:  query.NewSearchListingsHandler(repo),
		userHandler:    query.NewUserListingsHandler(repo),
		getHandler:     query.NewGetListingHandler(repo),
		checkHandler:   query.NewCheckListingHandler(repo),
		blobs:          blobs,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
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
func (h *ListingHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Latest handles GET /listings/latest
func (h *ListingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	listings, err := h.latestHandler.Handle(query.LatestListingsQuery{Limit: limit})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, h.withURLs(listings))
}

// Search handles GET /listings/search?q=
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	q := query.SearchListingsQuery{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	}

	listings, err := h.searchHandler.Handle(q)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, h.withURLs(listings))
}

// Get handles GET /listings/{listing_id}
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	listing, err := h.getHandler.Handle(query.GetListingQuery{ListingID: vars["listing_id"]})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, h.withURL(*listing))
}

// Exists handles GET /listings/{listing_id}/exists. A dead listing is a
// normal 200 with exists=false; only a failed check is an error.
func (h *ListingHandler) Exists(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	exists, err := h.checkHandler.Handle(query.CheckListingQuery{ListingID: vars["listing_id"]})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// UserListings handles GET /users/{id}/listings
func (h *ListingHandler) UserListings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	listings, err := h.userHandler.Handle(query.UserListingsQuery{
		CreatorID: uint(id),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, h.withURLs(listings))
}

// Create handles POST /listings (authenticated)
func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PhoneNumber string `json:"phone_number1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.CreateListingCommand{
		Title:       req.Title,
		Description: req.Description,
		PhoneNumber: req.PhoneNumber,
		CreatorID:   userID,
	}

	listing, err := h.createHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, h.withURL(*listing))
}

// Update handles PUT /listings/{listing_id} (authenticated, owner only)
func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PhoneNumber string `json:"phone_number1"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cmd := command.UpdateListingCommand{
		ListingID:   vars["listing_id"],
		CallerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		PhoneNumber: req.PhoneNumber,
	}

	listing, err := h.updateHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, h.withURL(*listing))
}

// Delete handles DELETE /listings/{listing_id} (authenticated, owner only)
func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)

	cmd := command.DeleteListingCommand{
		ListingID: vars["listing_id"],
		CallerID:  userID,
	}

	if err := h.deleteHandler.Handle(cmd); err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Listing deleted successfully"})
}

// UploadPhoto handles POST /listings/{listing_id}/photo (authenticated, owner only)
func (h *ListingHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Photo file is required")
		return
	}
	defer file.Close()

	cmd := command.AttachPhotoCommand{
		ListingID: vars["listing_id"],
		CallerID:  userID,
		FileName:  header.Filename,
		Body:      file,
	}

	listing, err := h.photoHandler.Handle(cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, h.withURL(*listing))
}

// HealthCheck handles GET /health
func (h *ListingHandler) HealthCheck(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

// withURL resolves the stored thumbnail path into a public URL
func (h *ListingHandler) withURL(l domain.Listing) domain.Listing {
	if h.blobs != nil && l.ThumbnailURL != "" {
		l.ThumbnailURL = h.blobs.URL(l.ThumbnailURL)
	}
	return l
}

func (h *ListingHandler) withURLs(listings []domain.Listing) []domain.Listing {
	out := make([]domain.Listing, len(listings))
	for i, l := range listings {
		out[i] = h.withURL(l)
	}
	return out
}

// respondJSON sends a JSON response
func (h *ListingHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *ListingHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all listing routes
func (h *ListingHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/listings/latest", h.metricsMiddleware("/listings/latest", h.Latest)).Methods("GET")
	router.HandleFunc("/listings/search", h.metricsMiddleware("/listings/search", h.Search)).Methods("GET")
	router.HandleFunc("/listings/{listing_id}/exists", h.metricsMiddleware("/listings/{listing_id}/exists", h.Exists)).Methods("GET")
	router.HandleFunc("/listings/{listing_id}", h.metricsMiddleware("/listings/{listing_id}", h.Get)).Methods("GET")
	router.HandleFunc("/users/{id}/listings", h.metricsMiddleware("/users/{id}/listings", h.UserListings)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/listings", h.metricsMiddleware("/listings", AuthMiddleware(h.Create))).Methods("POST")
	router.HandleFunc("/listings/{listing_id}", h.metricsMiddleware("/listings/{listing_id}", AuthMiddleware(h.Update))).Methods("PUT")
	router.HandleFunc("/listings/{listing_id}", h.metricsMiddleware("/listings/{listing_id}", AuthMiddleware(h.Delete))).Methods("DELETE")
	router.HandleFunc("/listings/{listing_id}/photo", h.metricsMiddleware("/listings/{listing_id}/photo", AuthMiddleware(h.UploadPhoto))).Methods("POST")
}

// RegisterHealthCheck registers health check endpoint
func (h *ListingHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", h.HealthCheck(db)).Methods("GET")
}
