package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the API description:
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>StudyHub API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "studyhub", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Envelope": { "type": "object", "properties": { "success": {"type":"boolean"}, "message": {"type":"string"}, "errors": {"type":"array","items":{"$ref":"#/components/schemas/FieldError"}} } },
      "FieldError": { "type": "object", "properties": { "field": {"type":"string"}, "message": {"type":"string"}, "value": {} } },
      "Note": { "type": "object", "properties": { "_id": {"type":"string"}, "title": {"type":"string"}, "content": {"type":"string"}, "author": {"type":"string"}, "tags": {"type":"array","items":{"type":"string"}}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "Answer": { "type": "object", "properties": { "_id": {"type":"string"}, "text": {"type":"string"}, "author": {"type":"string"}, "createdAt": {"type":"string","format":"date-time"} } },
      "Doubt": { "type": "object", "properties": { "_id": {"type":"string"}, "question": {"type":"string"}, "description": {"type":"string"}, "author": {"type":"string"}, "tags": {"type":"array","items":{"type":"string"}}, "isResolved": {"type":"boolean"}, "answers": {"type":"array","items":{"$ref":"#/components/schemas/Answer"}}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } },
      "TimeSlot": { "type": "object", "properties": { "startTime": {"type":"string"}, "endTime": {"type":"string"}, "subject": {"type":"string"}, "location": {"type":"string"}, "notes": {"type":"string"} } },
      "DaySchedule": { "type": "object", "required": ["day"], "properties": { "day": {"type":"string"}, "slots": {"type":"array","items":{"$ref":"#/components/schemas/TimeSlot"}} } },
      "Timetable": { "type": "object", "properties": { "_id": {"type":"string"}, "author": {"type":"string"}, "schedule": {"type":"array","items":{"$ref":"#/components/schemas/DaySchedule"}}, "createdAt": {"type":"string","format":"date-time"}, "updatedAt": {"type":"string","format":"date-time"} } }
    }
  },
  "paths": {
    "/api/notes": {
      "get": { "summary": "List notes, most recently updated first", "responses": { "200": { "description": "notes" } } },
      "post": {
        "summary": "Create a note",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title","content"],"properties":{"title":{"type":"string"},"content":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}}}}}},
        "responses": { "201": { "description": "created" }, "400": { "description": "validation failed" }, "413": { "description": "content too large" } }
      }
    },
    "/api/notes/{id}": {
      "put": { "summary": "Partially update a note", "responses": { "200": { "description": "updated" }, "404": { "description": "not found" }, "413": { "description": "content too large" } } },
      "delete": { "summary": "Delete a note", "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/doubts": {
      "get": { "summary": "List doubts, newest first", "responses": { "200": { "description": "doubts" } } },
      "post": {
        "summary": "Post a doubt",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["question"],"properties":{"question":{"type":"string"},"description":{"type":"string"},"tags":{"type":"array","items":{"type":"string"}}}}}}},
        "responses": { "201": { "description": "created" }, "400": { "description": "validation failed" } }
      }
    },
    "/api/doubts/{id}/answers": {
      "post": { "summary": "Answer a doubt", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["text"],"properties":{"text":{"type":"string"}}}}}}, "responses": { "200": { "description": "answer appended" }, "400": { "description": "validation failed" }, "404": { "description": "not found" } } }
    },
    "/api/doubts/{id}/resolve": {
      "put": { "summary": "Set the resolved flag (author only)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["isResolved"],"properties":{"isResolved":{"type":"boolean"}}}}}}, "responses": { "200": { "description": "flag set" }, "400": { "description": "isResolved must be a boolean" }, "403": { "description": "not the author" }, "404": { "description": "not found" } } }
    },
    "/api/timetable": {
      "get": { "summary": "Get the timetable, creating the default week on first use", "responses": { "200": { "description": "timetable" } } },
      "post": { "summary": "Replace the schedule", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["schedule"],"properties":{"schedule":{"type":"array","items":{"$ref":"#/components/schemas/DaySchedule"}}}}}}}, "responses": { "200": { "description": "saved" }, "400": { "description": "validation failed" } } }
    },
    "/api/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "running" } } } },
    "/api/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "database unreachable" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
