// Package docs holds the generated Swagger specification.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "User login",
                "description": "Pass X-Device-ID to reconcile device favorites after sign-in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": false}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/listings/latest": {
            "get": {
                "tags": ["Listings"],
                "summary": "Latest listings",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "required": false}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/listings/search": {
            "get": {
                "tags": ["Listings"],
                "summary": "Search listings by title",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/listings/{listing_id}": {
            "get": {
                "tags": ["Listings"],
                "summary": "Get a listing",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "listing_id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/listings/{listing_id}/exists": {
            "get": {
                "tags": ["Listings"],
                "summary": "Check whether a listing is live",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "listing_id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/favorites": {
            "get": {
                "tags": ["Favorites"],
                "summary": "List the current user's favorites",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/favorites/toggle": {
            "post": {
                "tags": ["Favorites"],
                "summary": "Toggle a listing in the current user's favorites",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/favorites/reconcile": {
            "post": {
                "tags": ["Favorites"],
                "summary": "Merge device favorites into the current user's favorites",
                "description": "Idempotent; safe to repeat after connectivity failures",
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": false}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/device/favorites": {
            "get": {
                "tags": ["Device Favorites"],
                "summary": "List an anonymous device's favorites",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/device/favorites/toggle": {
            "post": {
                "tags": ["Device Favorites"],
                "summary": "Toggle a listing in an anonymous device's favorites",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "X-Device-ID", "in": "header", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Marketplace API",
	Description:      "Classifieds marketplace services: users, listings and favorites",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
