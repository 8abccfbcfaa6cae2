package api

import (
	"html/template"
	"net/http"
)

// docsCSP replaces the default policy on the docs pages, which load their
// viewer from a CDN.
const docsCSP = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net https://fonts.googleapis.com; " +
	"font-src 'self' https://fonts.gstatic.com; " +
	"img-src 'self' data: https://cdn.jsdelivr.net; " +
	"worker-src 'self' blob:; " +
	"object-src 'none'; " +
	"frame-ancestors 'none'; " +
	"base-uri 'self';"

const apiTitle = "docker-gateway API"

var swaggerPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}} - Swagger UI</title>
<meta charset="utf-8">
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: {{.SpecURL}}, dom_id: "#swagger-ui"});
</script>
</body>
</html>
`))

var redocPage = template.Must(template.New("redoc").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}} - ReDoc</title>
<meta charset="utf-8">
</head>
<body>
<redoc spec-url="{{.SpecURL}}"></redoc>
<script src="https://cdn.jsdelivr.net/npm/redoc@2/bundles/redoc.standalone.js"></script>
</body>
</html>
`))

type docsPage struct {
	Title   string
	SpecURL string
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, openAPIDocument(s.cfg.RootPath))
}

func (s *Server) handleSwaggerUI(w http.ResponseWriter, r *http.Request) {
	s.renderDocs(w, swaggerPage)
}

func (s *Server) handleReDoc(w http.ResponseWriter, r *http.Request) {
	s.renderDocs(w, redocPage)
}

func (s *Server) renderDocs(w http.ResponseWriter, page *template.Template) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", docsCSP)
	w.WriteHeader(http.StatusOK)
	if err := page.Execute(w, docsPage{Title: apiTitle, SpecURL: s.cfg.RootPath + "/openapi.json"}); err != nil {
		s.logger.Warn("rendering docs page failed", "err", err)
	}
}

// openAPIDocument describes the container routes. /config.js and /healthz are
// deliberately left out.
func openAPIDocument(rootPath string) map[string]any {
	idParam := map[string]any{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema": map[string]any{
			"type":      "string",
			"minLength": 12,
			"maxLength": 64,
			"pattern":   containerIDPattern.String(),
		},
	}

	errorRef := func(desc string) map[string]any {
		return map[string]any{
			"description": desc,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/Error"},
				},
			},
		}
	}

	jsonBody := func(desc, schema string) map[string]any {
		return map[string]any{
			"description": desc,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/" + schema},
				},
			},
		}
	}

	action := func(summary, opID string) map[string]any {
		return map[string]any{
			"post": map[string]any{
				"summary":     summary,
				"operationId": opID,
				"parameters":  []any{idParam},
				"responses": map[string]any{
					"200": jsonBody("Successful Response", "Message"),
					"404": errorRef("Container not found"),
					"422": errorRef("Invalid container identifier"),
					"502": errorRef("Docker API request failed"),
					"503": errorRef("Docker API unavailable"),
				},
			},
		}
	}

	doc := map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   apiTitle,
			"version": "0.1.0",
		},
		"paths": map[string]any{
			"/containers": map[string]any{
				"get": map[string]any{
					"summary":     "List Containers",
					"operationId": "list_containers",
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Successful Response",
							"content": map[string]any{
								"application/json": map[string]any{
									"schema": map[string]any{
										"type":  "array",
										"items": map[string]any{"$ref": "#/components/schemas/Container"},
									},
								},
							},
						},
						"502": errorRef("Docker API request failed"),
						"503": errorRef("Docker API unavailable"),
					},
				},
			},
			"/containers/{id}/start": action("Start Container", "start_container"),
			"/containers/{id}/stop":  action("Stop Container", "stop_container"),
			"/containers/{id}/logs": map[string]any{
				"get": map[string]any{
					"summary":     "Get Container Logs",
					"operationId": "get_container_logs",
					"parameters":  []any{idParam},
					"responses": map[string]any{
						"200": jsonBody("Successful Response", "Logs"),
						"404": errorRef("Container not found"),
						"422": errorRef("Invalid container identifier"),
						"502": errorRef("Failed to fetch container logs"),
						"503": errorRef("Docker API unavailable"),
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"Container": objectSchema("id", "name", "status", "image"),
				"Message":   objectSchema("message"),
				"Logs":      objectSchema("logs"),
				"Error":     objectSchema("detail"),
			},
		},
	}

	if rootPath != "" {
		doc["servers"] = []any{map[string]any{"url": rootPath}}
	}
	return doc
}

func objectSchema(fields ...string) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   fields,
	}
}
