package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Latest godoc
// @Summary Latest listings
// @Tags Listings
// @Produce json
// @Param limit query int false "Maximum number of listings"
// @Success 200 {array} object{listing_id=string,title=string,thumbnail_url=string}
// @Router /listings/latest [get]
func (h *ListingHandler) LatestDoc() {}

// Search godoc
// @Summary Search listings by title
// @Tags Listings
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} object{listing_id=string,title=string}
// @Failure 400 {object} object{error=string}
// @Router /listings/search [get]
func (h *ListingHandler) SearchDoc() {}

// Exists godoc
// @Summary Check whether a listing is live
// @Description Returns exists=false for deleted or unknown listings
// @Tags Listings
// @Produce json
// @Param listing_id path string true "Listing identifier"
// @Success 200 {object} object{exists=bool}
// @Router /listings/{listing_id}/exists [get]
func (h *ListingHandler) ExistsDoc() {}

// Create godoc
// @Summary Create a listing
// @Tags Listings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{title=string,description=string,phone_number1=string} true "Listing data"
// @Success 201 {object} object{listing_id=string,title=string}
// @Failure 400 {object} object{error=string}
// @Router /listings [post]
func (h *ListingHandler) CreateDoc() {}

// UploadPhoto godoc
// @Summary Upload a listing photo
// @Tags Listings
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param listing_id path string true "Listing identifier"
// @Param photo formData file true "Photo file"
// @Success 200 {object} object{listing_id=string,thumbnail_url=string}
// @Failure 400 {object} object{error=string}
// @Router /listings/{listing_id}/photo [post]
func (h *ListingHandler) UploadPhotoDoc() {}
