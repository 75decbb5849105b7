// Package docs holds the OpenAPI document for the /api/v1 routes, served by
// http-swagger at /swagger/.
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
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/sessions/available": {
            "get": {
                "tags": ["sessions"],
                "summary": "List sessions with free seats",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Session"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": ["sessions"],
                "summary": "Get a session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/bookings": {
            "post": {
                "tags": ["bookings"],
                "summary": "Book a seat for the caller",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Booking"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Duplicate booking or attempt in progress", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Session is full", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/bookings/{id}": {
            "delete": {
                "tags": ["bookings"],
                "summary": "Cancel a booking owned by the caller",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Booking"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/members/{user_id}/bookings": {
            "get": {
                "tags": ["bookings"],
                "summary": "List a member's bookings",
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Booking"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/admin/sessions": {
            "get": {
                "tags": ["admin"],
                "summary": "List all sessions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Session"}}}
                }
            },
            "post": {
                "tags": ["admin"],
                "summary": "Create a session",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SessionRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Session"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Schedule conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/admin/sessions/{id}": {
            "put": {
                "tags": ["admin"],
                "summary": "Update a session; capacity is fixed after creation",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Session"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}},
                    "409": {"description": "Schedule conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Delete a session and its bookings",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/admin/sessions/{id}/roster.xlsx": {
            "get": {
                "tags": ["admin"],
                "summary": "Download the session roster",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": ["admin"],
                "summary": "Dashboard counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardStats"}}
                }
            }
        },
        "/admin/bookings": {
            "post": {
                "tags": ["admin"],
                "summary": "Record a booking without taking a seat",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordBookingRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Booking"}},
                    "409": {"description": "Duplicate booking", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/admin/members/{user_id}/bookings": {
            "delete": {
                "tags": ["admin"],
                "summary": "Remove every booking of a member",
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"removed": {"type": "integer"}}}}
                }
            }
        }
    },
    "definitions": {
        "Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "kind": {"type": "string", "enum": ["GROUP", "PRIVATE"]},
                "date": {"type": "string", "example": "2026-08-03"},
                "start_time": {"type": "string", "example": "07:00"},
                "end_time": {"type": "string", "example": "07:45"},
                "capacity": {"type": "integer"},
                "filled": {"type": "integer"},
                "available": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "SessionRequest": {
            "type": "object",
            "required": ["name", "kind", "date", "start_time", "end_time"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "kind": {"type": "string", "enum": ["GROUP", "PRIVATE"]},
                "date": {"type": "string", "example": "2026-08-03"},
                "start_time": {"type": "string", "example": "07:00"},
                "end_time": {"type": "string", "example": "07:45"},
                "capacity": {"type": "integer"}
            }
        },
        "CreateBookingRequest": {
            "type": "object",
            "required": ["session_id"],
            "properties": {"session_id": {"type": "string"}}
        },
        "RecordBookingRequest": {
            "type": "object",
            "required": ["user_id", "session_id"],
            "properties": {"user_id": {"type": "string"}, "session_id": {"type": "string"}}
        },
        "Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "session_id": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "DashboardStats": {
            "type": "object",
            "properties": {
                "sessions_total": {"type": "integer"},
                "group_sessions": {"type": "integer"},
                "private_sessions": {"type": "integer"},
                "available_sessions": {"type": "integer"},
                "bookings_total": {"type": "integer"},
                "members_with_bookings": {"type": "integer"}
            }
        },
        "Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string", "example": "CAPACITY_EXCEEDED"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Gym booking API",
	Description:      "Class sessions and seat bookings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
