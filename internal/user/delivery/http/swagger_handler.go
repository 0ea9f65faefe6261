package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new user
// @Description Create a new marketplace account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string} true "Registration data"
// @Success 201 {object} object{id=int,username=string,email=string,avatar_url=string,role=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate and get a JWT token; pass X-Device-ID to reconcile device favorites
// @Tags Auth
// @Accept json
// @Produce json
// @Param X-Device-ID header string false "Anonymous device identifier"
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{token=string,user=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (h *UserHandler) LoginDoc() {}

// GetProfile godoc
// @Summary Get current user profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=int,username=string,email=string,avatar_url=string}
// @Failure 401 {object} object{error=string}
// @Router /users/me [get]
func (h *UserHandler) GetProfileDoc() {}

// UpdateAvatar godoc
// @Summary Update the current user's avatar URL
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{avatar_url=string} true "Avatar URL"
// @Success 200 {object} object{id=int,avatar_url=string}
// @Failure 400 {object} object{error=string}
// @Router /users/me/avatar [put]
func (h *UserHandler) UpdateAvatarDoc() {}
