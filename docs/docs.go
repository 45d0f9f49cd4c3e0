// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/channel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Extract channel metadata without listing its videos",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Get channel metadata",
                "parameters": [
                    {
                        "description": "Channel URL",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ChannelRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ChannelResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "504": {"description": "Gateway Timeout", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/channel/videos": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "List a channel's videos, optionally keeping only those uploaded on or after sinceDate",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "List channel videos",
                "parameters": [
                    {
                        "description": "Channel URL and listing options",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ChannelVideosRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ChannelVideosResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "504": {"description": "Gateway Timeout", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/video": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Extract the metadata of a single video with yt-dlp",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["media"],
                "summary": "Get video metadata",
                "parameters": [
                    {
                        "description": "Video URL",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.VideoRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.VideoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": true}},
                    "504": {"description": "Gateway Timeout", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check the health of the service and the yt-dlp binary",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check endpoint",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/live": {
            "get": {
                "description": "Check if the service is alive",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check endpoint",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Check if the service is ready to accept requests",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check endpoint",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "services": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handlers.ServiceHealth"}},
                "status": {"type": "string"},
                "timestamp": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "handlers.ServiceHealth": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "response_time": {"type": "string"},
                "status": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "models.ChannelRequest": {
            "type": "object",
            "required": ["url"],
            "properties": {
                "url": {"type": "string"}
            }
        },
        "models.ChannelResponse": {
            "type": "object",
            "properties": {
                "avatarUrl": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "subscriberCount": {"type": "integer"},
                "url": {"type": "string"}
            }
        },
        "models.ChannelVideosRequest": {
            "type": "object",
            "required": ["url"],
            "properties": {
                "maxVideos": {"type": "integer"},
                "sinceDate": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "models.ChannelVideosResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "dateFilter": {"type": "string"},
                "filterApplied": {"type": "boolean"},
                "sinceDate": {"type": "string"},
                "skippedEntries": {"type": "integer"},
                "videos": {"type": "array", "items": {"$ref": "#/definitions/models.VideoSummary"}}
            }
        },
        "models.VideoRequest": {
            "type": "object",
            "required": ["url"],
            "properties": {
                "url": {"type": "string"}
            }
        },
        "models.VideoResponse": {
            "type": "object",
            "properties": {
                "channel": {"type": "string"},
                "channelId": {"type": "string"},
                "channelUrl": {"type": "string"},
                "description": {"type": "string"},
                "duration": {"type": "number"},
                "id": {"type": "string"},
                "likeCount": {"type": "integer"},
                "publishedAt": {"type": "string"},
                "thumbnailUrl": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"},
                "viewCount": {"type": "integer"}
            }
        },
        "models.VideoSummary": {
            "type": "object",
            "properties": {
                "duration": {"type": "number"},
                "id": {"type": "string"},
                "publishedAt": {"type": "string"},
                "thumbnailUrl": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"},
                "viewCount": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer API token or HS256 access token",
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
	Schemes:          []string{},
	Title:            "yt-dlp API",
	Description:      "Metadata proxy around yt-dlp for videos and channels.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
