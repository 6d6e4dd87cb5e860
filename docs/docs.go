// Package docs registers the OpenAPI description served at /swagger.
// Keep it in sync with the handler annotations in cmd/api (swag init -g cmd/api/main.go).
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
        "/auth/": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Listar usuarios (ADMIN)",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/user.User"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Actualizar perfil propio",
                "parameters": [
                    {"description": "fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/identity.Token"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Perfil del usuario autenticado",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registrar usuario",
                "parameters": [
                    {"description": "new account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/user.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/user.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/categorias/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categorias"],
                "summary": "Listar categorías",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/category.Category"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["categorias"],
                "summary": "Crear categoría (ADMIN)",
                "parameters": [
                    {"description": "category", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/category.CreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/category.Category"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/categorias/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["categorias"],
                "summary": "Obtener categoría",
                "parameters": [{"type": "string", "description": "category id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/category.Category"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/pedidos/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "The order belongs to the authenticated user. Quantity defaults to 1.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Crear pedido",
                "parameters": [
                    {"description": "order lines", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/pedidos/unico/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Obtener pedido",
                "parameters": [{"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/pedidos/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "PENDING -> SHIPPED -> DELIVERED. Without status the order is returned unchanged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Cambiar estado del pedido (ADMIN)",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "new status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/pedidos/{usuario_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["pedidos"],
                "summary": "Pedidos de un usuario",
                "parameters": [{"type": "string", "description": "user id", "name": "usuario_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/productos/": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Multipart form. Images must be png, jpg, jpeg or gif.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Crear producto (ADMIN)",
                "parameters": [
                    {"type": "string", "description": "name", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "description": "price", "name": "price", "in": "formData", "required": true},
                    {"type": "integer", "description": "stock", "name": "stock", "in": "formData"},
                    {"type": "string", "description": "weight in kg", "name": "weight", "in": "formData"},
                    {"type": "string", "description": "short description", "name": "short_description", "in": "formData"},
                    {"type": "string", "description": "description", "name": "description", "in": "formData"},
                    {"type": "string", "description": "category id", "name": "category_id", "in": "formData"},
                    {"type": "string", "description": "slug", "name": "slug", "in": "formData"},
                    {"type": "file", "description": "specifications JSON", "name": "specifications", "in": "formData"},
                    {"type": "file", "description": "main image", "name": "main_image", "in": "formData"},
                    {"type": "file", "description": "gallery images", "name": "images", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/product.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/productos/por_categoria/{categoria_id}": {
            "get": {
                "description": "Ranked by 0.7*views + 0.3*average_rating, highest first",
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Productos por categoría",
                "parameters": [
                    {"type": "string", "description": "category id", "name": "categoria_id", "in": "path", "required": true},
                    {"type": "integer", "description": "page (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size (default 10, max 100); alias per_page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.Page"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/productos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Detalle de producto",
                "parameters": [{"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.Detail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["productos"],
                "summary": "Eliminar producto (ADMIN)",
                "parameters": [{"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Partial update; only supplied fields change",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Actualizar producto (ADMIN)",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        },
        "/productos/{id}/resenas": {
            "get": {
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Reseñas de un producto",
                "parameters": [{"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/product.Review"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Publicar reseña",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"description": "review", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.ReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/product.Review"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpx.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "category.Category": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "image_url": {"type": "string"},
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "category.CreateRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "image_url": {"type": "string", "maxLength": 200},
                "name": {"type": "string", "maxLength": 100, "example": "Teclados"},
                "slug": {"type": "string", "maxLength": 150, "example": "teclados"}
            }
        },
        "httpx.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "product not found"},
                "kind": {"type": "string", "example": "not_found"}
            }
        },
        "identity.Token": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_at": {"type": "string"},
                "role": {"type": "string", "enum": ["CUSTOMER", "ADMIN"]},
                "token_type": {"type": "string", "example": "Bearer"},
                "user_id": {"type": "string"}
            }
        },
        "order.CreateOrderItem": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "string", "example": "4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"},
                "quantity": {"type": "integer", "minimum": 1, "maximum": 10000, "example": 2}
            }
        },
        "order.CreateOrderRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {
                "items": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/order.CreateOrderItem"}},
                "shipping_address": {"type": "string", "maxLength": 200, "example": "Calle 1 # 2-3"}
            }
        },
        "order.Item": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "order_id": {"type": "string"},
                "position": {"type": "integer"},
                "product_id": {"type": "string"},
                "product_name": {"type": "string"},
                "quantity": {"type": "integer"},
                "subtotal": {"type": "string", "example": "19.98"},
                "unit_price": {"type": "string", "example": "9.99"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}},
                "shipping_address": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "SHIPPED", "DELIVERED"]},
                "total": {"type": "string", "example": "19.98"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "order.UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "SHIPPED"}
            }
        },
        "product.Detail": {
            "type": "object",
            "allOf": [{"$ref": "#/definitions/product.Product"}],
            "properties": {
                "related": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}}
            }
        },
        "product.Page": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "product.Product": {
            "type": "object",
            "properties": {
                "average_rating": {"type": "string"},
                "category_id": {"type": "string"},
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "main_image_url": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "string", "example": "199.90"},
                "review_count": {"type": "integer"},
                "short_description": {"type": "string"},
                "slug": {"type": "string"},
                "specifications": {"type": "object"},
                "stock": {"type": "integer"},
                "updated_at": {"type": "string"},
                "views": {"type": "integer"},
                "weight_kg": {"type": "string"}
            }
        },
        "product.Review": {
            "type": "object",
            "properties": {
                "comment": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "product_id": {"type": "string"},
                "score": {"type": "integer"},
                "user_id": {"type": "string"}
            }
        },
        "product.ReviewRequest": {
            "type": "object",
            "required": ["score"],
            "properties": {
                "comment": {"type": "string", "maxLength": 1000},
                "score": {"type": "integer", "minimum": 1, "maximum": 5, "example": 5}
            }
        },
        "product.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "category_id": {"type": "string", "x-nullable": true, "example": "4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"},
                "description": {"type": "string"},
                "name": {"type": "string", "maxLength": 150},
                "price": {"type": "string", "example": "199.90"},
                "short_description": {"type": "string", "maxLength": 255},
                "slug": {"type": "string", "maxLength": 150},
                "stock": {"type": "integer", "minimum": 0},
                "weight_kg": {"type": "string", "example": "0.8"}
            }
        },
        "user.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "ana@example.com"},
                "password": {"type": "string", "example": "s3cret-pass"}
            }
        },
        "user.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "address": {"type": "string", "maxLength": 200},
                "email": {"type": "string", "maxLength": 120, "example": "ana@example.com"},
                "name": {"type": "string", "maxLength": 100, "example": "Ana Pérez"},
                "password": {"type": "string", "minLength": 8, "maxLength": 72},
                "phone": {"type": "string", "maxLength": 20}
            }
        },
        "user.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string", "maxLength": 200},
                "name": {"type": "string", "maxLength": 100},
                "password": {"type": "string", "minLength": 8, "maxLength": 72},
                "phone": {"type": "string", "maxLength": 20}
            }
        },
        "user.User": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string", "enum": ["CUSTOMER", "ADMIN"]},
                "updated_at": {"type": "string"}
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
	Title:            "Tienda API",
	Description:      "Users, categories, products and orders.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
