// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/api/main.go -o internal/docs`.
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
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "User registered and token generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "User authenticated and token generated", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "User profile"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/tenants": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tenants"],
                "summary": "List my tenants",
                "responses": {"200": {"description": "Tenants"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tenants"],
                "summary": "Create a tenant",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateTenantRequest"}}],
                "responses": {"201": {"description": "Tenant created"}}
            }
        },
        "/tenants/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tenants"],
                "summary": "Join a tenant",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.JoinTenantRequest"}}],
                "responses": {
                    "200": {"description": "Joined tenant"},
                    "404": {"description": "Tenant not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Already a member", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/tenants/{id}/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tenants"],
                "summary": "List tenant members",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Members"},
                    "403": {"description": "Not a member", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/tenants/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["tenants"],
                "summary": "Delete a tenant",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "Tenant deleted"},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "List categories",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "Categories"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Create a category",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateCategoryRequest"}}
                ],
                "responses": {"201": {"description": "Category created"}}
            }
        },
        "/categories/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Get a category",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Category"}, "404": {"description": "Category not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Update a category",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateCategoryRequest"}}
                ],
                "responses": {"200": {"description": "Category updated"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["categories"],
                "summary": "Delete a category",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "Category deleted"}}
            }
        },
        "/groups": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "List groups",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "Groups"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "Create a group",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateGroupRequest"}}
                ],
                "responses": {"201": {"description": "Group created"}}
            }
        },
        "/groups/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "Get a group",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Group"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "Update a group",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateGroupRequest"}}
                ],
                "responses": {"200": {"description": "Group updated"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["groups"],
                "summary": "Delete a group",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "Group deleted"}}
            }
        },
        "/expenses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "List expenses",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "group_id", "in": "query"},
                    {"type": "string", "name": "category_id", "in": "query"},
                    {"type": "boolean", "name": "personal", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated expenses"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Create an expense",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateExpenseRequest"}}
                ],
                "responses": {"201": {"description": "Expense created"}}
            }
        },
        "/expenses/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Get an expense",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "Expense"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Update an expense",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateExpenseRequest"}}
                ],
                "responses": {"200": {"description": "Expense updated"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["expenses"],
                "summary": "Delete an expense",
                "parameters": [
                    {"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "Expense deleted"}}
            }
        },
        "/dashboard/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Dashboard statistics",
                "parameters": [{"type": "string", "name": "X-Tenant-ID", "in": "header", "required": true}],
                "responses": {"200": {"description": "Dashboard statistics", "schema": {"$ref": "#/definitions/services.DashboardStats"}}}
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/handlers.ErrorDetail"}}
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "tenant_name": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string", "example": "bearer"},
                "user": {"type": "object"},
                "tenant": {"type": "object"}
            }
        },
        "handlers.CreateTenantRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "plan": {"type": "string"}}
        },
        "handlers.JoinTenantRequest": {
            "type": "object",
            "required": ["tenant_id"],
            "properties": {"tenant_id": {"type": "string"}}
        },
        "handlers.CreateCategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "type": {"type": "string", "enum": ["expense", "income"]}}
        },
        "handlers.UpdateCategoryRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "type": {"type": "string", "enum": ["expense", "income"]}}
        },
        "handlers.CreateGroupRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "type": {"type": "string", "enum": ["family", "trip", "event"]}}
        },
        "handlers.UpdateGroupRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "type": {"type": "string", "enum": ["family", "trip", "event"]}}
        },
        "handlers.CreateExpenseRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {
                "amount": {"type": "number"},
                "date": {"type": "string", "example": "2024-02-20"},
                "group_id": {"type": "string"},
                "category_id": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "handlers.UpdateExpenseRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "date": {"type": "string", "example": "2024-02-20"},
                "group_id": {"type": "string"},
                "category_id": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "services.CategoryTotal": {
            "type": "object",
            "properties": {"category_id": {"type": "string"}, "category": {"type": "string"}, "amount": {"type": "number"}}
        },
        "services.MonthTotal": {
            "type": "object",
            "properties": {"month": {"type": "string"}, "year": {"type": "integer"}, "amount": {"type": "number"}}
        },
        "services.DashboardStats": {
            "type": "object",
            "properties": {
                "total": {"type": "number"},
                "personal_total": {"type": "number"},
                "group_total": {"type": "number"},
                "current_month_total": {"type": "number"},
                "by_category": {"type": "array", "items": {"$ref": "#/definitions/services.CategoryTotal"}},
                "monthly_trend": {"type": "array", "items": {"$ref": "#/definitions/services.MonthTotal"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ExpenseHub API",
	Description:      "Multi-tenant expense tracking: tenants, shared groups, categories, expenses and dashboard statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
