// Package docs is generated by swag from the handler annotations.
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
    "paths": {
        "/api/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["turfs"],
                "summary": "List turfs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/turf.TurfListResponse"}}
                }
            }
        },
        "/api/turf/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["turfs"],
                "summary": "Get turf",
                "parameters": [{"type": "integer", "description": "Turf ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/turf.TurfResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/turf/{id}/slots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["turfs"],
                "summary": "List slots of a turf",
                "parameters": [{"type": "integer", "description": "Turf ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/turf.SlotListResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/book/{slotId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Booking page for a slot",
                "parameters": [{"type": "integer", "description": "Slot ID", "name": "slotId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.BookingPage"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a slot and pay the deposit",
                "parameters": [{"type": "integer", "description": "Slot ID", "name": "slotId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.BookSlotResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register new user",
                "parameters": [{"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.RegisterRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}}}
            }
        },
        "/api/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.MeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/user.MeResponse"}}
                }
            }
        },
        "/api/user/bookings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Bookings of the session user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.BookingListResponse"}}}
            }
        },
        "/api/admin/dashboard": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Dashboard stats",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.DashboardStats"}}}
            }
        },
        "/api/admin/bookings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "All bookings",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.BookingListResponse"}}}
            }
        },
        "/api/admin/upcoming": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Upcoming bookings",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.BookingListResponse"}}}
            }
        },
        "/api/admin/mark-paid/{id}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Mark a booking fully paid",
                "parameters": [{"type": "integer", "description": "Booking ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/booking.MarkPaidResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/admin/turfs": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create turf",
                "parameters": [{"description": "Turf", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/turf.CreateTurfRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/turf.TurfResponse"}}}
            }
        },
        "/api/admin/turfs/{id}/slots": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create slot",
                "parameters": [
                    {"type": "integer", "description": "Turf ID", "name": "id", "in": "path", "required": true},
                    {"description": "Slot", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/turf.CreateSlotRequest"}}
                ],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a WebSocket. Frames are {\"event\": ..., \"data\": ...}.",
                "tags": ["realtime"],
                "summary": "Live slot updates",
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["system"],
                "summary": "Prometheus metrics",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "message": {"type": "string", "example": "something went wrong"}
            }
        },
        "api.MessageResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "message": {"type": "string", "example": "ok"}
            }
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "turf.Turf": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "location": {"type": "string"},
                "price_per_slot": {"type": "integer"}
            }
        },
        "turf.Slot": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "turf_id": {"type": "integer"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "is_booked": {"type": "boolean"}
            }
        },
        "turf.SlotView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 7},
                "start": {"type": "string", "example": "2024-05-01T18:00:00Z"},
                "booked": {"type": "boolean", "example": false}
            }
        },
        "turf.TurfListResponse": {
            "type": "object",
            "properties": {"turfs": {"type": "array", "items": {"$ref": "#/definitions/turf.Turf"}}}
        },
        "turf.TurfResponse": {
            "type": "object",
            "properties": {"turf": {"$ref": "#/definitions/turf.Turf"}}
        },
        "turf.SlotListResponse": {
            "type": "object",
            "properties": {"slots": {"type": "array", "items": {"$ref": "#/definitions/turf.SlotView"}}}
        },
        "turf.CreateTurfRequest": {
            "type": "object",
            "required": ["name", "location"],
            "properties": {
                "name": {"type": "string", "maxLength": 128},
                "location": {"type": "string"},
                "price_per_slot": {"type": "integer", "minimum": 0}
            }
        },
        "turf.CreateSlotRequest": {
            "type": "object",
            "required": ["start_time"],
            "properties": {"start_time": {"type": "string"}}
        },
        "user.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "user.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "user.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "is_admin": {"type": "boolean"}
            }
        },
        "user.LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "user": {"$ref": "#/definitions/user.Profile"}
            }
        },
        "user.MeResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/user.Profile"}}
        },
        "booking.Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "timeslot_id": {"type": "integer"},
                "deposit_paid": {"type": "boolean"},
                "full_paid": {"type": "boolean"},
                "booked_at": {"type": "string"}
            }
        },
        "booking.Details": {
            "type": "object",
            "properties": {
                "booking": {"$ref": "#/definitions/booking.Booking"},
                "slot": {"$ref": "#/definitions/turf.Slot"},
                "turf": {"$ref": "#/definitions/turf.Turf"},
                "user": {"$ref": "#/definitions/user.Profile"},
                "deposit_amount": {"type": "integer"},
                "amount_paid": {"type": "integer"}
            }
        },
        "booking.BookingPage": {
            "type": "object",
            "properties": {
                "slot": {"$ref": "#/definitions/turf.Slot"},
                "turf": {"$ref": "#/definitions/turf.Turf"},
                "deposit_amount": {"type": "integer"}
            }
        },
        "booking.BookSlotResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "booking": {"$ref": "#/definitions/booking.Booking"}
            }
        },
        "booking.MarkPaidResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "booking": {"$ref": "#/definitions/booking.Booking"}
            }
        },
        "booking.BookingListResponse": {
            "type": "object",
            "properties": {"bookings": {"type": "array", "items": {"$ref": "#/definitions/booking.Details"}}}
        },
        "booking.DashboardStats": {
            "type": "object",
            "properties": {
                "total_bookings": {"type": "integer"},
                "active_users": {"type": "integer"},
                "revenue_collected": {"type": "integer"},
                "upcoming_bookings": {"type": "integer"}
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
	Title:            "TurfBook API",
	Description:      "Turf listings, slot booking with deposits, and live slot updates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
