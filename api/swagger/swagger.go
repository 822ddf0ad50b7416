package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "MENTRON API",
        "description": "Role-scoped academic dashboard backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Notifications", "description": "Per-user notification feed and broadcasts"},
        {"name": "Calendar", "description": "Role-scoped event calendar"},
        {"name": "Search", "description": "Materials and groups search"},
        {"name": "Analytics", "description": "Rolling 7-day activity metrics"},
        {"name": "Hierarchy", "description": "Group member roster"},
        {"name": "Settings", "description": "Self-managed admin preferences"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List the caller's notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/notifications/{id}/read": {
            "patch": {
                "tags": ["Notifications"],
                "summary": "Mark one notification as read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/notifications/read-all": {
            "patch": {
                "tags": ["Notifications"],
                "summary": "Mark every unread notification as read",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/notifications/announce": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Broadcast an announcement to an audience",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AnnounceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/calendar/events": {
            "get": {
                "tags": ["Calendar"],
                "summary": "List calendar events visible to the caller",
                "parameters": [
                    {"name": "month", "in": "query", "type": "string", "description": "YYYY-MM"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Calendar"],
                "summary": "Create a calendar event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/calendar/events/{id}": {
            "delete": {
                "tags": ["Calendar"],
                "summary": "Delete a calendar event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/search": {
            "get": {
                "tags": ["Search"],
                "summary": "Search materials and groups",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/analytics/overview": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Rolling 7-day activity overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/analytics/export": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Download the weekly activity report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "pdf or csv"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/hierarchy/members": {
            "get": {
                "tags": ["Hierarchy"],
                "summary": "List group members within the caller's scope",
                "parameters": [
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/api/settings/notifications": {
            "get": {
                "tags": ["Settings"],
                "summary": "Read the caller's notification settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Settings"],
                "summary": "Update the caller's notification settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NotificationPrefs"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "AnnounceRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "message": {"type": "string"},
                "target_audience": {"type": "string", "enum": ["all", "students", "admins"]}
            },
            "required": ["title", "message", "target_audience"]
        },
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "event_type": {"type": "string"},
                "event_date": {"type": "string", "format": "date-time"},
                "event_time": {"type": "string", "format": "date-time"},
                "department": {"type": "string"},
                "year": {"type": "integer"}
            },
            "required": ["title", "event_type", "event_date"]
        },
        "NotificationPrefs": {
            "type": "object",
            "properties": {
                "email_notifications": {"type": "boolean"},
                "desktop_notifications": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
