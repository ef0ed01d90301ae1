// Package docs carries the OpenAPI description of the wellbase HTTP API.
// The document is maintained by hand and registered with swag so the
// router can serve it from /swagger.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "JWT access token, sent as: Bearer <token>"
        }
    },
    "paths": {
        "/healthz": {
            "get": {
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "service is up"}}
            }
        },
        "/swagger.json": {
            "get": {
                "tags": ["system"],
                "summary": "This document",
                "responses": {"200": {"description": "OpenAPI document"}}
            }
        },
        "/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "consumes": ["application/json"],
                "responses": {
                    "201": {"description": "user created"},
                    "400": {"description": "malformed body", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a JWT",
                "consumes": ["application/json"],
                "responses": {
                    "200": {"description": "token issued"},
                    "401": {"description": "bad credentials"}
                }
            }
        },
        "/api/v1/profile": {
            "get": {
                "tags": ["auth"],
                "summary": "Identity and permission grants decoded from the access token",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "user id, role and grants"}}
            }
        },
        "/api/v1/token": {
            "get": {
                "tags": ["auth"],
                "summary": "Stored account record behind the access token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "user record"},
                    "404": {"description": "account no longer exists", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/v1/wells": {
            "get": {
                "tags": ["wells"],
                "summary": "List wells, filterable by uwi/operator/name",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "paginated wells"}}
            },
            "post": {
                "tags": ["wells"],
                "summary": "Create a well and its default OH wellbore",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "well created"},
                    "409": {"description": "UWI already exists", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/v1/wells/search": {
            "post": {
                "tags": ["wells"],
                "summary": "Find wells inside a GeoJSON area of interest",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "wells inside the polygon"}}
            }
        },
        "/api/v1/wells/{id}": {
            "get": {
                "tags": ["wells"],
                "summary": "Fetch one well with its wellbores",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {
                    "200": {"description": "well detail"},
                    "404": {"description": "unknown well", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/v1/wellbores/{id}": {
            "get": {
                "tags": ["wellbores"],
                "summary": "Fetch one wellbore with its surveys",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"200": {"description": "wellbore detail"}}
            },
            "put": {
                "tags": ["wellbores"],
                "summary": "Update spatial reference metadata (CRS, anchor, convergence, datum, unit)",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"200": {"description": "updated wellbore"}}
            }
        },
        "/api/v1/wellbores/{id}/surveys": {
            "get": {
                "tags": ["surveys"],
                "summary": "List directional surveys of a wellbore",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"200": {"description": "surveys, newest first"}}
            },
            "post": {
                "tags": ["surveys"],
                "summary": "Create a survey from an ordered station list, optionally activating it",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {
                    "201": {"description": "survey created"},
                    "400": {"description": "station data failed validation", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/v1/surveys/{id}": {
            "get": {
                "tags": ["surveys"],
                "summary": "Fetch one survey with stations in sequence order",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"200": {"description": "survey with stations"}}
            }
        },
        "/api/v1/surveys/{id}/activate": {
            "put": {
                "tags": ["surveys"],
                "summary": "Make the survey canonical and recompute the trajectory atomically",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {
                    "200": {"description": "recompute result"},
                    "409": {"description": "projection/consistency failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/v1/wellbores/{id}/trajectory/recompute": {
            "post": {
                "tags": ["trajectory"],
                "summary": "Recompute the trajectory from the active survey and resync dependent depths",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {
                    "200": {"description": "geometry and updated-top count"},
                    "404": {"description": "unknown wellbore", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "no active survey, bad spatial metadata, or concurrent recompute", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/v1/wellbores/{id}/trajectory": {
            "get": {
                "tags": ["trajectory"],
                "summary": "Stored trajectory points in path order",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"200": {"description": "trajectory points"}}
            }
        },
        "/api/v1/wellbores/{id}/trajectory.geojson": {
            "get": {
                "tags": ["trajectory"],
                "summary": "Plan view of the trajectory as a GeoJSON feature collection",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"200": {"description": "FeatureCollection with one LineString"}}
            }
        },
        "/api/v1/wellbores/{id}/tops": {
            "get": {
                "tags": ["tops"],
                "summary": "List formation tops ordered by measured depth",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"200": {"description": "formation tops"}}
            },
            "post": {
                "tags": ["tops"],
                "summary": "Record a formation pick; derived depths fill from the stored trajectory",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"201": {"description": "top created"}}
            }
        },
        "/api/v1/wellbores/{id}/media": {
            "get": {
                "tags": ["media"],
                "summary": "List cataloged media files, filterable by type",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "responses": {"200": {"description": "media catalog entries"}}
            }
        },
        "/api/v1/wellbores/{id}/export/trajectory.xlsx": {
            "get": {
                "tags": ["exports"],
                "summary": "Trajectory and tops as an Excel workbook",
                "security": [{"BearerAuth": []}],
                "parameters": [{"$ref": "#/parameters/PathID"}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "workbook download"}}
            }
        },
        "/api/v1/ingest/{dataset}": {
            "post": {
                "tags": ["ingest"],
                "summary": "Upload and load a data file (headers|tops|production|surveys|las)",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {
                        "name": "dataset",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": ["headers", "tops", "production", "surveys", "las"]
                    },
                    {"name": "file", "in": "formData", "required": true, "type": "file"},
                    {
                        "name": "azimuthReference",
                        "in": "formData",
                        "type": "string",
                        "enum": ["true", "grid", "magnetic"],
                        "description": "surveys only: north reference for every survey in the file"
                    },
                    {
                        "name": "azimuthOffset",
                        "in": "formData",
                        "type": "number",
                        "description": "surveys only: degrees added to every azimuth before storage"
                    },
                    {
                        "name": "activate",
                        "in": "formData",
                        "type": "boolean",
                        "description": "surveys only: activate each loaded survey and recompute its trajectory"
                    }
                ],
                "responses": {"200": {"description": "loader row accounting"}}
            }
        }
    },
    "parameters": {
        "PathID": {
            "name": "id",
            "in": "path",
            "required": true,
            "type": "string",
            "format": "uuid"
        }
    },
    "definitions": {
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "kind": {
                    "type": "string",
                    "enum": ["NOT_FOUND", "VALIDATION", "CONFIGURATION", "PROJECTION", "CONSISTENCY", "INTERNAL"]
                },
                "details": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "wellbase API",
	Description:      "Subsurface well-data backend: wells, directional surveys, trajectory computation, formation tops, production, curves and media.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
