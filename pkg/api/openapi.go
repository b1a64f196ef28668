// OpenAPI document construction and the documentation endpoints.

package api

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// buildOpenAPIJSON renders the OpenAPI 3.0 document served at
// /api/openapi.json. The document is static, so it is built once at
// server construction.
func buildOpenAPIJSON() []byte {
	doc := BuildOpenAPIDoc()
	data, err := doc.MarshalJSON()
	if err != nil {
		// The document is fixed at compile time, marshaling cannot fail.
		panic(err)
	}
	return data
}

// BuildOpenAPIDoc constructs the API description.
func BuildOpenAPIDoc() *openapi3.T {
	bearer := openapi3.NewSecurityScheme()
	bearer.Type = "http"
	bearer.Scheme = "bearer"

	doc := &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "Test API",
			Version:     Version,
			Description: "RESTful API for organizations, users, and profiles. All endpoints require Bearer token authentication.",
		},
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				"bearerAuth": &openapi3.SecuritySchemeRef{Value: bearer},
			},
		},
		Security: *openapi3.NewSecurityRequirements().
			With(openapi3.NewSecurityRequirement().Authenticate("bearerAuth")),
	}

	doc.Paths = openapi3.NewPaths(
		openapi3.WithPath("/api/health", &openapi3.PathItem{
			Get: operation("Health check endpoint", http.StatusOK),
		}),
		openapi3.WithPath("/api/version", &openapi3.PathItem{
			Get: operation("Get API version information", http.StatusOK),
		}),
		openapi3.WithPath("/api/organizations", &openapi3.PathItem{
			Get:  operation("List organizations", http.StatusOK),
			Post: operation("Create organization", http.StatusCreated, http.StatusBadRequest, http.StatusConflict),
		}),
		openapi3.WithPath("/api/organizations/{id}", &openapi3.PathItem{
			Get:        operation("Get organization by ID", http.StatusOK, http.StatusNotFound),
			Put:        operation("Update organization", http.StatusOK, http.StatusBadRequest, http.StatusNotFound),
			Delete:     operation("Delete organization", http.StatusNoContent, http.StatusNotFound),
			Parameters: idParameters(),
		}),
		openapi3.WithPath("/api/users", &openapi3.PathItem{
			Get:  operation("List users", http.StatusOK),
			Post: operation("Create user", http.StatusCreated, http.StatusBadRequest, http.StatusConflict),
		}),
		openapi3.WithPath("/api/users/{id}", &openapi3.PathItem{
			Get:        operation("Get user by ID", http.StatusOK, http.StatusNotFound),
			Put:        operation("Update user", http.StatusOK, http.StatusBadRequest, http.StatusNotFound),
			Delete:     operation("Delete user", http.StatusNoContent, http.StatusNotFound),
			Parameters: idParameters(),
		}),
		openapi3.WithPath("/api/profiles", &openapi3.PathItem{
			Get:  operation("List profiles", http.StatusOK),
			Post: operation("Create profile", http.StatusCreated, http.StatusBadRequest, http.StatusConflict),
		}),
		openapi3.WithPath("/api/profiles/{id}", &openapi3.PathItem{
			Get:        operation("Get profile by ID", http.StatusOK, http.StatusNotFound),
			Put:        operation("Update profile", http.StatusOK, http.StatusBadRequest, http.StatusNotFound),
			Delete:     operation("Delete profile", http.StatusNoContent, http.StatusNotFound),
			Parameters: idParameters(),
		}),
		openapi3.WithPath("/api/stats", &openapi3.PathItem{
			Get: operation("Get statistics", http.StatusOK),
		}),
		openapi3.WithPath("/api/search/advanced", &openapi3.PathItem{
			Get: operation("Advanced search across organizations, users, and profiles", http.StatusOK),
		}),
		openapi3.WithPath("/api/batch/organizations", &openapi3.PathItem{
			Post: operation("Batch operations for organizations", http.StatusOK, http.StatusBadRequest),
		}),
		openapi3.WithPath("/api/batch/users", &openapi3.PathItem{
			Post: operation("Batch operations for users", http.StatusOK, http.StatusBadRequest),
		}),
		openapi3.WithPath("/api/batch/profiles", &openapi3.PathItem{
			Post: operation("Batch operations for profiles", http.StatusOK, http.StatusBadRequest),
		}),
	)

	return doc
}

func operation(summary string, statuses ...int) *openapi3.Operation {
	opts := make([]openapi3.NewResponsesOption, 0, len(statuses))
	for _, status := range statuses {
		opts = append(opts, openapi3.WithStatus(status, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription(http.StatusText(status)),
		}))
	}
	return &openapi3.Operation{
		Summary:   summary,
		Responses: openapi3.NewResponses(opts...),
	}
}

func idParameters() openapi3.Parameters {
	param := &openapi3.Parameter{
		Name:     "id",
		In:       openapi3.ParameterInPath,
		Required: true,
		Schema:   openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
	}
	return openapi3.Parameters{&openapi3.ParameterRef{Value: param}}
}

// handleOpenAPI handles GET /api/openapi.json.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openapiJSON)
}

// handleDocs handles GET /api/docs with a Swagger UI page pointed at the
// OpenAPI document.
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(docsHTML))
}

const docsHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Test API Docs</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
  <script>
    const ui = SwaggerUIBundle({
      url: '/api/openapi.json',
      dom_id: '#swagger-ui',
    });
  </script>
</body>
</html>
`
