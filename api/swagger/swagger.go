package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Ratings API",
        "description": "Professor and module offering ratings service",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Catalog", "description": "Module offerings and who teaches them"},
        {"name": "Ratings", "description": "Rating submission and aggregates"},
        {"name": "Auth", "description": "Account registration and sessions"},
        {"name": "Admin", "description": "Catalog maintenance and report export"}
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/list": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List module offerings with their professors",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/view": {
            "get": {
                "tags": ["Ratings"],
                "summary": "List professors with their overall star rating",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/average/{professorId}/{moduleCode}": {
            "get": {
                "tags": ["Ratings"],
                "summary": "Average rating of a professor in one module",
                "parameters": [
                    {"name": "professorId", "in": "path", "required": true, "type": "string"},
                    {"name": "moduleCode", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown professor or module"}
                }
            }
        },
        "/rate-professor": {
            "post": {
                "tags": ["Ratings"],
                "summary": "Submit a rating for a professor on an offering",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitRatingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing or invalid field"},
                    "404": {"description": "Unknown professor, module, offering or assignment"},
                    "409": {"description": "Already rated"}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Username taken"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue tokens",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the caller's refresh token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "Revoked"}
                }
            }
        },
        "/admin/professors": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create a professor",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Identifier taken"}
                }
            }
        },
        "/admin/modules": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create a module",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Code taken"}
                }
            }
        },
        "/admin/modules/{code}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a module and everything it owns",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Unknown module"}
                }
            }
        },
        "/admin/module-instances": {
            "post": {
                "tags": ["Admin"],
                "summary": "Schedule a module offering",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Offering already scheduled"}
                }
            }
        },
        "/admin/assignments": {
            "post": {
                "tags": ["Admin"],
                "summary": "Assign a professor to an offering",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Professor already assigned"}
                }
            }
        },
        "/admin/ratings/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export the overall ratings report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        }
    },
    "definitions": {
        "SubmitRatingRequest": {
            "type": "object",
            "properties": {
                "professor_id": {"type": "string"},
                "module_code": {"type": "string"},
                "year": {"type": "string"},
                "semester": {"type": "string"},
                "rating": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
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
                "error": {"$ref": "#/definitions/APIError"}
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
