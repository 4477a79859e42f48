// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/dhima/event-records",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "List the caller's events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserEvents"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Caller has no user record", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "Create an event",
                "parameters": [
                    {"description": "Event definition", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Event"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Caller has no user record", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/events/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "Delete an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DeleteResult"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Event not found or unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/v1/users/{username}/events/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Events"],
                "summary": "Get public event details",
                "parameters": [
                    {"type": "string", "description": "Owner username", "name": "username", "in": "path", "required": true},
                    {"type": "string", "description": "Event ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventDetails"}},
                    "404": {"description": "Event not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check endpoint",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthResponse"}}}
            }
        },
        "/metrics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Get record counts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Stats"}}}
            }
        }
    },
    "definitions": {
        "CreateEventRequest": {
            "type": "object",
            "required": ["title", "duration", "isPrivate"],
            "properties": {
                "title": {"type": "string", "minLength": 1, "maxLength": 100, "example": "Intro Call"},
                "description": {"type": "string", "minLength": 1, "maxLength": 500, "example": "A quick 30 minute chat"},
                "duration": {"type": "integer", "minimum": 1, "example": 30},
                "isPrivate": {"type": "boolean", "example": false}
            }
        },
        "Event": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "duration": {"type": "integer"},
                "isPrivate": {"type": "boolean"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "EventWithCount": {
            "allOf": [{"$ref": "#/definitions/Event"}, {"type": "object", "properties": {"bookingCount": {"type": "integer"}}}]
        },
        "UserEvents": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/EventWithCount"}},
                "username": {"type": "string"}
            }
        },
        "Owner": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "imageUrl": {"type": "string"}
            }
        },
        "EventDetails": {
            "allOf": [{"$ref": "#/definitions/Event"}, {"type": "object", "properties": {"user": {"$ref": "#/definitions/Owner"}}}]
        },
        "DeleteResult": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "Stats": {
            "type": "object",
            "properties": {
                "usersCount": {"type": "integer"},
                "eventsCount": {"type": "integer"},
                "bookingsCount": {"type": "integer"}
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "service": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {},
                "traceId": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Event Records API",
	Description:      "Event records for a scheduling application.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
