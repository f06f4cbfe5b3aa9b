// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
				"tags": [
					"Health"
				],
				"summary": "Health Check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/catalog": {
			"get": {
				"tags": [
					"Catalog"
				],
				"summary": "Catalog",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"description": "Activity types, expense types and currency rates"
			}
		},
		"/activities": {
			"get": {
				"tags": [
					"Activities"
				],
				"summary": "List Activities",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"name": "page",
						"in": "query",
						"required": false,
						"description": "Page number",
						"type": "integer"
					},
					{
						"name": "per_page",
						"in": "query",
						"required": false,
						"description": "Items per page",
						"type": "integer"
					},
					{
						"name": "type",
						"in": "query",
						"required": false,
						"type": "string"
					},
					{
						"name": "from",
						"in": "query",
						"required": false,
						"type": "string"
					},
					{
						"name": "to",
						"in": "query",
						"required": false,
						"type": "string"
					}
				]
			},
			"post": {
				"tags": [
					"Activities"
				],
				"summary": "Log Activity",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ActivityInput"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/activities/{id}": {
			"get": {
				"tags": [
					"Activities"
				],
				"summary": "Get Activity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			},
			"patch": {
				"tags": [
					"Activities"
				],
				"summary": "Update Activity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ActivityPatch"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"Activities"
				],
				"summary": "Delete Activity",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			}
		},
		"/expenses": {
			"get": {
				"tags": [
					"Expenses"
				],
				"summary": "List Expenses",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"name": "page",
						"in": "query",
						"required": false,
						"description": "Page number",
						"type": "integer"
					},
					{
						"name": "per_page",
						"in": "query",
						"required": false,
						"description": "Items per page",
						"type": "integer"
					},
					{
						"name": "type",
						"in": "query",
						"required": false,
						"type": "string"
					},
					{
						"name": "currency",
						"in": "query",
						"required": false,
						"type": "string"
					},
					{
						"name": "kind",
						"in": "query",
						"required": false,
						"description": "flat, anchor, child or all",
						"type": "string"
					},
					{
						"name": "from",
						"in": "query",
						"required": false,
						"type": "string"
					},
					{
						"name": "to",
						"in": "query",
						"required": false,
						"type": "string"
					}
				]
			},
			"post": {
				"tags": [
					"Expenses"
				],
				"summary": "Create Expense",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ExpenseInput"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/expenses/{id}": {
			"get": {
				"tags": [
					"Expenses"
				],
				"summary": "Get Expense",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			},
			"patch": {
				"tags": [
					"Expenses"
				],
				"summary": "Update Expense",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ExpensePatch"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"Expenses"
				],
				"summary": "Delete Expense",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			}
		},
		"/expenses/{id}/convert-to-installment": {
			"post": {
				"tags": [
					"Expenses"
				],
				"summary": "Convert Expense to Installments",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ConvertInput"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/contracts": {
			"get": {
				"tags": [
					"Contracts"
				],
				"summary": "List Contracts",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"name": "page",
						"in": "query",
						"required": false,
						"description": "Page number",
						"type": "integer"
					},
					{
						"name": "per_page",
						"in": "query",
						"required": false,
						"description": "Items per page",
						"type": "integer"
					},
					{
						"name": "status",
						"in": "query",
						"required": false,
						"type": "string"
					},
					{
						"name": "period_type",
						"in": "query",
						"required": false,
						"type": "string"
					}
				]
			},
			"post": {
				"tags": [
					"Contracts"
				],
				"summary": "Create Contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ContractInput"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/contracts/quote": {
			"post": {
				"tags": [
					"Contracts"
				],
				"summary": "Quote Contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.QuoteRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/contracts/{id}": {
			"get": {
				"tags": [
					"Contracts"
				],
				"summary": "Get Contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			},
			"put": {
				"tags": [
					"Contracts"
				],
				"summary": "Update Contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ContractPatch"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"Contracts"
				],
				"summary": "Delete Contract",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			}
		},
		"/contracts/{id}/charges/{charge_id}": {
			"put": {
				"tags": [
					"Contracts"
				],
				"summary": "Update Charge",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					},
					{
						"name": "charge_id",
						"in": "path",
						"required": true,
						"type": "integer"
					},
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/services.ChargePatch"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			},
			"delete": {
				"tags": [
					"Contracts"
				],
				"summary": "Delete Charge",
				"produces": [
					"application/json"
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					},
					{
						"name": "charge_id",
						"in": "path",
						"required": true,
						"type": "integer"
					}
				]
			}
		},
		"/contracts/{id}/charges.csv": {
			"get": {
				"tags": [
					"Contracts"
				],
				"summary": "Contract Charges CSV",
				"produces": [
					"text/csv"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			}
		},
		"/contracts/{id}/statement": {
			"get": {
				"tags": [
					"Contracts"
				],
				"summary": "Contract Statement (HTML)",
				"produces": [
					"text/html"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			}
		},
		"/contracts/{id}/statement.pdf": {
			"get": {
				"tags": [
					"Contracts"
				],
				"summary": "Contract Statement",
				"produces": [
					"application/pdf"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "id",
						"in": "path",
						"required": true,
						"description": "Record ID",
						"type": "integer"
					}
				]
			}
		},
		"/roi/summary": {
			"get": {
				"tags": [
					"ROI"
				],
				"summary": "ROI Summary",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/roi/market-price": {
			"get": {
				"tags": [
					"ROI"
				],
				"summary": "Get Market Reference Price",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"put": {
				"tags": [
					"ROI"
				],
				"summary": "Update Market Reference Price",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handlers.MarketPriceRequest"
						}
					}
				],
				"consumes": [
					"application/json"
				]
			}
		},
		"/export": {
			"get": {
				"tags": [
					"Export"
				],
				"summary": "Export Report",
				"produces": [
					"application/octet-stream"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/ErrorResponse"
						}
					}
				},
				"parameters": [
					{
						"name": "format",
						"in": "query",
						"required": false,
						"description": "csv, xlsx or pdf",
						"type": "string"
					}
				]
			}
		},
		"/export/snapshot": {
			"get": {
				"tags": [
					"Export"
				],
				"summary": "Snapshot",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/export/json": {
			"post": {
				"tags": [
					"Export"
				],
				"summary": "Publish Snapshot",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/audits": {
			"get": {
				"tags": [
					"Audit"
				],
				"summary": "List Audit Logs",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				},
				"parameters": [
					{
						"name": "page",
						"in": "query",
						"required": false,
						"description": "Page number",
						"type": "integer"
					},
					{
						"name": "per_page",
						"in": "query",
						"required": false,
						"description": "Items per page",
						"type": "integer"
					},
					{
						"name": "entity",
						"in": "query",
						"required": false,
						"type": "string"
					},
					{
						"name": "action",
						"in": "query",
						"required": false,
						"type": "string"
					}
				]
			}
		},
		"/jobs/status": {
			"get": {
				"tags": [
					"Jobs"
				],
				"summary": "Get background job status",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/jobs/settle": {
			"post": {
				"tags": [
					"Jobs"
				],
				"summary": "Settle due charges",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"definitions": {
		"ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"field": {
					"type": "string"
				}
			}
		},
		"handlers.MarketPriceRequest": {
			"type": "object",
			"properties": {
				"price": {
					"type": "number"
				}
			}
		},
		"services.ActivityInput": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"distance": {
					"type": "integer"
				},
				"class_name": {
					"type": "string"
				},
				"intensity": {
					"type": "string"
				},
				"topic": {
					"type": "string"
				},
				"duration_minutes": {
					"type": "integer"
				},
				"trainer": {
					"type": "string"
				},
				"note": {
					"type": "string"
				}
			},
			"required": [
				"type",
				"date"
			]
		},
		"services.ActivityPatch": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"distance": {
					"type": "integer"
				},
				"class_name": {
					"type": "string"
				},
				"intensity": {
					"type": "string"
				},
				"topic": {
					"type": "string"
				},
				"duration_minutes": {
					"type": "integer"
				},
				"trainer": {
					"type": "string"
				},
				"note": {
					"type": "string"
				}
			}
		},
		"services.ExpenseInput": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"amount": {
					"type": "number"
				},
				"currency": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"note": {
					"type": "string"
				}
			},
			"required": [
				"type",
				"amount",
				"date"
			]
		},
		"services.ExpensePatch": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"amount": {
					"type": "number"
				},
				"currency": {
					"type": "string"
				},
				"date": {
					"type": "string"
				},
				"note": {
					"type": "string"
				}
			}
		},
		"services.ContractInput": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"note": {
					"type": "string"
				},
				"total_amount": {
					"type": "number"
				},
				"period_amount": {
					"type": "number"
				},
				"period_type": {
					"type": "string"
				},
				"period_count": {
					"type": "integer"
				},
				"day_of_week": {
					"type": "integer"
				},
				"day_of_month": {
					"type": "integer"
				},
				"start_date": {
					"type": "string"
				},
				"end_date": {
					"type": "string"
				}
			},
			"required": [
				"type",
				"period_type",
				"start_date"
			]
		},
		"services.ContractPatch": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"note": {
					"type": "string"
				},
				"total_amount": {
					"type": "number"
				},
				"period_amount": {
					"type": "number"
				},
				"period_type": {
					"type": "string"
				},
				"period_count": {
					"type": "integer"
				},
				"day_of_week": {
					"type": "integer"
				},
				"day_of_month": {
					"type": "integer"
				},
				"start_date": {
					"type": "string"
				},
				"end_date": {
					"type": "string"
				}
			}
		},
		"services.ConvertInput": {
			"type": "object",
			"properties": {
				"period_type": {
					"type": "string"
				},
				"period_amount": {
					"type": "number"
				},
				"period_count": {
					"type": "integer"
				},
				"day_of_week": {
					"type": "integer"
				},
				"day_of_month": {
					"type": "integer"
				},
				"end_date": {
					"type": "string"
				}
			}
		},
		"services.QuoteRequest": {
			"type": "object",
			"properties": {
				"start_date": {
					"type": "string"
				},
				"period_type": {
					"type": "string"
				},
				"total_amount": {
					"type": "number"
				},
				"period_amount": {
					"type": "number"
				},
				"period_count": {
					"type": "integer"
				},
				"end_date": {
					"type": "string"
				}
			},
			"required": [
				"start_date",
				"period_type"
			]
		},
		"services.ChargePatch": {
			"type": "object",
			"properties": {
				"amount": {
					"type": "number"
				},
				"status": {
					"type": "string",
					"enum": [
						"pending",
						"paid"
					]
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Duckiki Gym ROI API",
	Description:      "REST API for the gym membership ROI dashboard",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
