// Package docs holds the swagger document served under /api/docs.
// Regenerate with: swag init -g cmd/itinerary-api/main.go -o internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

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
        "/itineraries/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["itineraries"],
                "summary": "Extract itinerary fields from an image",
                "parameters": [
                    {"type": "file", "description": "itinerary image", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Result"}},
                    "413": {"description": "Request Entity Too Large"},
                    "415": {"description": "Unsupported Media Type"},
                    "422": {"description": "Unprocessable Entity"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/itineraries/text": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["itineraries"],
                "summary": "Extract itinerary fields from recognized text",
                "parameters": [
                    {"description": "text input", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.TextInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Result"}},
                    "400": {"description": "Bad Request"},
                    "413": {"description": "Request Entity Too Large"},
                    "415": {"description": "Unsupported Media Type"}
                }
            }
        },
        "/itineraries/artifacts/{id}": {
            "get": {
                "produces": ["application/octet-stream"],
                "tags": ["itineraries"],
                "summary": "Download a rendered export",
                "parameters": [
                    {"type": "string", "description": "artifact id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/meta/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Liveness",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/meta/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Readiness of the artifact store",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/meta/engine": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Loaded pattern library summary",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "domain.TextInput": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"},
                "name": {"type": "string", "maxLength": 120}
            }
        },
        "domain.ArtifactRef": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "content_type": {"type": "string"},
                "size": {"type": "integer"},
                "href": {"type": "string"}
            }
        },
        "domain.Result": {
            "type": "object",
            "properties": {
                "job_id": {"type": "string"},
                "source": {"type": "string"},
                "record": {"type": "object"},
                "artifacts": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/domain.ArtifactRef"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Itinerary API",
	Description:      "Field extraction and normalization for carrier itineraries",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
