// Package docs holds the Swagger document served at /swagger/*any.
//
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/register": {
            "post": {
                "operationId": "register",
                "summary": "Create an account",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "operationId": "login",
                "summary": "Exchange credentials for a bearer token",
                "tags": [
                    "Auth"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/users/me": {
            "get": {
                "operationId": "me",
                "summary": "Current user",
                "tags": [
                    "Users"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/users": {
            "get": {
                "operationId": "listUsers",
                "summary": "List accounts (admin)",
                "tags": [
                    "Users"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/users/{id}/role": {
            "put": {
                "operationId": "setUserRole",
                "summary": "Change an account's role (admin)",
                "tags": [
                    "Users"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/characters": {
            "get": {
                "operationId": "listCharacters",
                "summary": "List characters",
                "tags": [
                    "Characters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createCharacter",
                "summary": "Register a character for the caller",
                "tags": [
                    "Characters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/characters/{id}": {
            "get": {
                "operationId": "getCharacter",
                "summary": "Get a character",
                "tags": [
                    "Characters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "operationId": "updateCharacter",
                "summary": "Update a character (owner or admin)",
                "tags": [
                    "Characters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "operationId": "deleteCharacter",
                "summary": "Delete a character (owner or admin)",
                "tags": [
                    "Characters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/characters/{id}/main": {
            "put": {
                "operationId": "setMainCharacter",
                "summary": "Mark a character as the owner's main",
                "tags": [
                    "Characters"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/requests": {
            "get": {
                "operationId": "listRequests",
                "summary": "List requests (paginated)",
                "tags": [
                    "Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createRequest",
                "summary": "Submit a hunting request",
                "tags": [
                    "Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/requests/{id}": {
            "get": {
                "operationId": "getRequest",
                "summary": "Get a request with its party and lookups",
                "tags": [
                    "Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "operationId": "deleteRequest",
                "summary": "Delete a request and its party (owner or admin)",
                "tags": [
                    "Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/requests/{id}/status": {
            "patch": {
                "operationId": "updateRequestStatus",
                "summary": "Change a request's status (admin)",
                "tags": [
                    "Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/requests/{id}/cancel": {
            "post": {
                "operationId": "cancelRequest",
                "summary": "Cancel a pending or approved request (owner)",
                "tags": [
                    "Requests"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/point-claims": {
            "get": {
                "operationId": "listPointClaims",
                "summary": "List point claims",
                "tags": [
                    "Points"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "createPointClaim",
                "summary": "Claim points for review",
                "tags": [
                    "Points"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/point-claims/{id}/review": {
            "post": {
                "operationId": "reviewPointClaim",
                "summary": "Approve or reject a pending claim (admin)",
                "tags": [
                    "Points"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/point-transactions": {
            "get": {
                "operationId": "listPointTransactions",
                "summary": "List point ledger rows",
                "tags": [
                    "Points"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "operationId": "awardPoints",
                "summary": "Credit or debit a member directly (admin)",
                "tags": [
                    "Points"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/tibia/characters/{name}": {
            "get": {
                "operationId": "lookupCharacter",
                "summary": "Look a character up on Tibia.com",
                "tags": [
                    "Tibia"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/tibia/worlds": {
            "get": {
                "operationId": "listWorlds",
                "summary": "List game worlds",
                "tags": [
                    "Tibia"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/servers": {
            "get": {
                "operationId": "list-servers",
                "summary": "List servers",
                "tags": [
                    "Servers"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "operationId": "create-servers",
                "summary": "Create (admin)",
                "tags": [
                    "Servers"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/servers/{id}": {
            "get": {
                "operationId": "get-servers",
                "summary": "Get by id",
                "tags": [
                    "Servers"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "operationId": "update-servers",
                "summary": "Update (admin)",
                "tags": [
                    "Servers"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "operationId": "delete-servers",
                "summary": "Delete (admin)",
                "tags": [
                    "Servers"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/difficulties": {
            "get": {
                "operationId": "list-difficulties",
                "summary": "List difficulties",
                "tags": [
                    "Difficulties"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "operationId": "create-difficulties",
                "summary": "Create (admin)",
                "tags": [
                    "Difficulties"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/difficulties/{id}": {
            "get": {
                "operationId": "get-difficulties",
                "summary": "Get by id",
                "tags": [
                    "Difficulties"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "operationId": "update-difficulties",
                "summary": "Update (admin)",
                "tags": [
                    "Difficulties"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "operationId": "delete-difficulties",
                "summary": "Delete (admin)",
                "tags": [
                    "Difficulties"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/respawns": {
            "get": {
                "operationId": "list-respawns",
                "summary": "List respawns",
                "tags": [
                    "Respawns"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "operationId": "create-respawns",
                "summary": "Create (admin)",
                "tags": [
                    "Respawns"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/respawns/{id}": {
            "get": {
                "operationId": "get-respawns",
                "summary": "Get by id",
                "tags": [
                    "Respawns"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "operationId": "update-respawns",
                "summary": "Update (admin)",
                "tags": [
                    "Respawns"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "operationId": "delete-respawns",
                "summary": "Delete (admin)",
                "tags": [
                    "Respawns"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/slots": {
            "get": {
                "operationId": "list-slots",
                "summary": "List slots",
                "tags": [
                    "Slots"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "operationId": "create-slots",
                "summary": "Create (admin)",
                "tags": [
                    "Slots"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/slots/{id}": {
            "get": {
                "operationId": "get-slots",
                "summary": "Get by id",
                "tags": [
                    "Slots"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "operationId": "update-slots",
                "summary": "Update (admin)",
                "tags": [
                    "Slots"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "operationId": "delete-slots",
                "summary": "Delete (admin)",
                "tags": [
                    "Slots"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/schedule-periods": {
            "get": {
                "operationId": "list-schedule-periods",
                "summary": "List schedule-periods",
                "tags": [
                    "Schedule periods"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "operationId": "create-schedule-periods",
                "summary": "Create (admin)",
                "tags": [
                    "Schedule periods"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/schedule-periods/{id}": {
            "get": {
                "operationId": "get-schedule-periods",
                "summary": "Get by id",
                "tags": [
                    "Schedule periods"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "operationId": "update-schedule-periods",
                "summary": "Update (admin)",
                "tags": [
                    "Schedule periods"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "operationId": "delete-schedule-periods",
                "summary": "Delete (admin)",
                "tags": [
                    "Schedule periods"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/request-statuses": {
            "get": {
                "operationId": "list-request-statuses",
                "summary": "List request-statuses",
                "tags": [
                    "Request statuses"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "operationId": "create-request-statuses",
                "summary": "Create (admin)",
                "tags": [
                    "Request statuses"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/request-statuses/{id}": {
            "get": {
                "operationId": "get-request-statuses",
                "summary": "Get by id",
                "tags": [
                    "Request statuses"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "put": {
                "operationId": "update-request-statuses",
                "summary": "Update (admin)",
                "tags": [
                    "Request statuses"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "operationId": "delete-request-statuses",
                "summary": "Delete (admin)",
                "tags": [
                    "Request statuses"
                ],
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "default": {
                        "description": "See handlers.ErrorResponse for errors",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {
                    "type": "string",
                    "example": "123e4567-e89b-12d3-a456-426614174000"
                },
                "code": {
                    "type": "string",
                    "example": "not_found"
                },
                "message": {
                    "type": "string",
                    "example": "request not found"
                },
                "params": {
                    "type": "object"
                }
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
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "HuntSchedule API",
	Description:      "Guild hunting-ground scheduling: characters, requests, approvals and points.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
