// Package docs holds the OpenAPI document served at /swagger/. It is
// maintained by hand alongside the handler annotations; TestDocCoversRoutes
// fails when a registered route is missing from it.
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
        "/": {
            "get": {
                "description": "Simple root endpoint that returns a welcome message.",
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "Welcome endpoint",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.WelcomeResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Returns a basic status payload to indicate the API is running.",
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.HealthResponse"}}
                }
            }
        },
        "/api/textsms/send": {
            "post": {
                "description": "Normalises the mobile number and forwards the message to the gateway.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["textsms"],
                "summary": "Send a single SMS",
                "parameters": [
                    {"description": "Recipient and message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.SendRequest"}}
                ],
                "responses": {
                    "200": {"description": "Gateway response body, or response.GatewayError", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.GatewayError"}}
                }
            }
        },
        "/api/textsms/schedule": {
            "post": {
                "description": "Forwards the message with a timeToSend the gateway delivers at.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["textsms"],
                "summary": "Schedule an SMS",
                "parameters": [
                    {"description": "Recipient, message and send time", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.ScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Gateway response body, or response.GatewayError", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.GatewayError"}}
                }
            }
        },
        "/api/textsms/bulk": {
            "post": {
                "description": "Sends one batch; mobileNumbers[i], messages[i] and clientSmsIds[i] form entry i.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["textsms"],
                "summary": "Send a bulk SMS batch",
                "parameters": [
                    {"description": "Parallel lists of equal length", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.BulkRequest"}}
                ],
                "responses": {
                    "200": {"description": "Gateway response body, or response.GatewayError", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.GatewayError"}}
                }
            }
        },
        "/api/textsms/dlr/{messageId}": {
            "get": {
                "description": "Looks up the delivery status of a previously sent message.",
                "produces": ["application/json"],
                "tags": ["textsms"],
                "summary": "Delivery report",
                "parameters": [
                    {"type": "string", "description": "Gateway message id", "name": "messageId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Gateway response body, or response.GatewayError", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.GatewayError"}}
                }
            }
        },
        "/api/textsms/balance": {
            "get": {
                "description": "Queries the gateway for the account credit balance.",
                "produces": ["application/json"],
                "tags": ["textsms"],
                "summary": "Account balance",
                "responses": {
                    "200": {"description": "Gateway response body, or response.GatewayError", "schema": {"type": "object"}}
                }
            }
        },
        "/api/textsms/balance/last": {
            "get": {
                "description": "Returns the most recent successful balance body without calling the gateway.",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Last known balance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.LastBalanceResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.JSONResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.JSONResponse"}}
                }
            }
        },
        "/api/textsms/balance/refresher": {
            "post": {
                "description": "Starts or stops the background balance refresher.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Control the balance refresher",
                "parameters": [
                    {"description": "Refresher action (start|stop)", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.RefresherRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.RefresherControlResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.JSONResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.JSONResponse"}}
                }
            }
        },
        "/api/textsms/stats": {
            "get": {
                "description": "Returns ok/error counts per relay operation.",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Outcome counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StatsResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.JSONResponse"}}
                }
            }
        },
        "/api/textsms/dispatches": {
            "get": {
                "description": "Returns a paginated list of relay call outcomes, newest first.",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "List dispatch records",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.DispatchesResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.JSONResponse"}}
                }
            }
        }
    },
    "definitions": {
        "request.SendRequest": {
            "type": "object",
            "required": ["message", "mobile"],
            "properties": {
                "message": {"type": "string", "example": "Hello from TextSMS"},
                "mobile": {"type": "string", "example": "0712345678"}
            }
        },
        "request.ScheduleRequest": {
            "type": "object",
            "required": ["message", "mobile", "timeToSend"],
            "properties": {
                "message": {"type": "string", "example": "Reminder"},
                "mobile": {"type": "string", "example": "0712345678"},
                "timeToSend": {"type": "string", "example": "2026-10-20 08:00"}
            }
        },
        "request.BulkRequest": {
            "type": "object",
            "required": ["mobileNumbers"],
            "properties": {
                "mobileNumbers": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "messages": {"type": "array", "items": {"type": "string"}},
                "clientSmsIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "request.RefresherRequest": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["start", "stop"]}
            }
        },
        "response.GatewayError": {
            "type": "object",
            "properties": {
                "response-code": {"type": "string", "example": "9999"},
                "response-description": {"type": "string", "example": "Error:request failed"}
            }
        },
        "response.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "response.JSONResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/response.ErrorBody"},
                "success": {"type": "boolean"},
                "timestamp": {"type": "string"}
            }
        },
        "response.WelcomePayload": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "response.WelcomeResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/response.WelcomePayload"},
                "success": {"type": "boolean"},
                "timestamp": {"type": "string"}
            }
        },
        "response.HealthPayload": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "response.HealthResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/response.HealthPayload"},
                "success": {"type": "boolean"},
                "timestamp": {"type": "string"}
            }
        },
        "response.RefresherControlPayload": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "running": {"type": "boolean"}
            }
        },
        "response.RefresherControlResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/response.RefresherControlPayload"},
                "success": {"type": "boolean"},
                "timestamp": {"type": "string"}
            }
        },
        "service.Outcome": {
            "type": "object",
            "properties": {
                "error": {"type": "integer"},
                "ok": {"type": "integer"}
            }
        },
        "response.StatsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object", "additionalProperties": {"$ref": "#/definitions/service.Outcome"}},
                "success": {"type": "boolean"},
                "timestamp": {"type": "string"}
            }
        },
        "response.LastBalanceResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "success": {"type": "boolean"},
                "timestamp": {"type": "string"}
            }
        },
        "response.DispatchDTO": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "durationMs": {"type": "integer"},
                "id": {"type": "string"},
                "operation": {"type": "string"},
                "recipients": {"type": "integer"},
                "requestId": {"type": "string"},
                "responseCode": {"type": "string"},
                "responseDescription": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "response.DispatchesPayload": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/response.DispatchDTO"}},
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "response.DispatchesResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/response.DispatchesPayload"},
                "success": {"type": "boolean"},
                "timestamp": {"type": "string"}
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
	Title:            "TextSMS Relay API",
	Description:      "REST relay for sending, scheduling and bulk-dispatching SMS through the TextSMS gateway.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
