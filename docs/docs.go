// Package docs registers the panel's OpenAPI document with swag.
// Regenerate with: swag init -g cmd/main.go
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/view": {
            "get": {
                "description": "Toggle states, off-time labels and tank gradient, as last polled",
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Current view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.View"}}
                }
            }
        },
        "/api/v1/subsystems/{subsystem}/toggle": {
            "post": {
                "description": "Sends exactly one on/off command without a duration",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Toggle subsystem",
                "parameters": [
                    {"type": "string", "description": "power, ch or hw", "name": "subsystem", "in": "path", "required": true},
                    {"description": "Desired state", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.ToggleRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/subsystems/{subsystem}/on-for": {
            "post": {
                "description": "ch and hw only; the device reports the scheduled off time on the next poll",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Turn subsystem on for a duration",
                "parameters": [
                    {"type": "string", "description": "ch or hw", "name": "subsystem", "in": "path", "required": true},
                    {"description": "Duration", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.OnForRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/dispatches": {
            "get": {
                "description": "Newest first; suppressed and failed attempts are included",
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Recent dispatches",
                "parameters": [
                    {"type": "integer", "description": "max records (default 20)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.DispatchRecord"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/dispatches/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Dispatch by id",
                "parameters": [
                    {"type": "string", "description": "request id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DispatchRecord"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/testing": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Testing mode",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "boolean"}}}
                }
            },
            "put": {
                "description": "While enabled every command is suppressed; polling continues",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Set testing mode",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "boolean"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.OnForRequest": {
            "type": "object",
            "properties": {
                "minutes": {"description": "Minutes to stay on before the device switches off", "type": "integer", "example": 90}
            }
        },
        "handlers.ToggleRequest": {
            "type": "object",
            "properties": {
                "state": {"description": "Desired state of the subsystem", "type": "boolean", "example": true}
            }
        },
        "models.ControlView": {
            "type": "object",
            "properties": {
                "checked": {"type": "boolean"},
                "element_id": {"type": "string"},
                "off_time": {"type": "string"},
                "off_time_element_id": {"type": "string"},
                "subsystem": {"type": "string"}
            }
        },
        "models.Command": {
            "type": "object",
            "properties": {
                "duration_minutes": {"type": "integer"},
                "on": {"type": "boolean"},
                "subsystem": {"type": "string"}
            }
        },
        "models.DispatchRecord": {
            "type": "object",
            "properties": {
                "at": {"type": "string"},
                "command": {"$ref": "#/definitions/models.Command"},
                "error": {"type": "string"},
                "id": {"type": "string"},
                "outcome": {"type": "string"},
                "path": {"type": "string"}
            }
        },
        "models.DurationOption": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "minutes": {"type": "integer"}
            }
        },
        "models.GradientStop": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "offset": {"type": "number"}
            }
        },
        "models.View": {
            "type": "object",
            "properties": {
                "controls": {"type": "array", "items": {"$ref": "#/definitions/models.ControlView"}},
                "duration_options": {"type": "array", "items": {"$ref": "#/definitions/models.DurationOption"}},
                "tank": {"type": "array", "items": {"$ref": "#/definitions/models.GradientStop"}},
                "testing": {"type": "boolean"}
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
	Title:            "Heating Panel API",
	Description:      "Local control panel for the boiler controller: power, central heating and hot water.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
