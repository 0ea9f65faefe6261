package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListFavorites godoc
// @Summary List the current user's favorites
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{favorites=[]object{listing_id=string}}
// @Failure 401 {object} object{error=string}
// @Router /favorites [get]
func (h *FavoriteHandler) ListFavoritesDoc() {}

// ToggleFavorite godoc
// @Summary Toggle a listing in the current user's favorites
// @Tags Favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{listing_id=string} true "Listing to toggle"
// @Success 200 {object} object{listing_id=string,favorited=bool}
// @Failure 400 {object} object{error=string}
// @Router /favorites/toggle [post]
func (h *FavoriteHandler) ToggleFavoriteDoc() {}

// Reconcile godoc
// @Summary Merge device favorites into the current user's favorites
// @Description Idempotent; safe to repeat after connectivity failures
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param X-Device-ID header string false "Anonymous device identifier"
// @Success 200 {object} object{favorites=[]object{listing_id=string},added=int,pruned=int,unresolved=int,failed=int,incomplete=bool}
// @Failure 401 {object} object{error=string}
// @Router /favorites/reconcile [post]
func (h *FavoriteHandler) ReconcileDoc() {}

// ListDeviceFavorites godoc
// @Summary List an anonymous device's favorites
// @Tags Device Favorites
// @Produce json
// @Param X-Device-ID header string true "Anonymous device identifier"
// @Success 200 {object} object{favorites=[]object{listing_id=string}}
// @Failure 400 {object} object{error=string}
// @Router /device/favorites [get]
func (h *FavoriteHandler) ListDeviceFavoritesDoc() {}

// ToggleDeviceFavorite godoc
// @Summary Toggle a listing in an anonymous device's favorites
// @Tags Device Favorites
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Anonymous device identifier"
// @Param request body object{listing_id=string} true "Listing to toggle"
// @Success 200 {object} object{favorites=[]object{listing_id=string}}
// @Failure 400 {object} object{error=string}
// @Router /device/favorites/toggle [post]
func (h *FavoriteHandler) ToggleDeviceFavoriteDoc() {}
