package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterRender(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("testapi_requests_total", "Total requests.", "method", "path", "status")

	c.Inc("GET", "/api/organizations", "200")
	c.Inc("GET", "/api/organizations", "200")
	c.Inc("POST", "/api/users", "201")

	out := r.Render()
	assert.Contains(t, out, "# TYPE testapi_requests_total counter")
	assert.Contains(t, out, `testapi_requests_total{method="GET",path="/api/organizations",status="200"} 2`)
	assert.Contains(t, out, `testapi_requests_total{method="POST",path="/api/users",status="201"} 1`)
}

func TestGaugeRender(t *testing.T) {
	r := NewRegistry()
	g := r.NewGauge("testapi_entities", "Entities in the store.", "kind")

	g.Set(10, "organization")
	g.Set(100, "user")
	g.Set(99, "user")

	out := r.Render()
	assert.Contains(t, out, "# TYPE testapi_entities gauge")
	assert.Contains(t, out, `testapi_entities{kind="organization"} 10`)
	assert.Contains(t, out, `testapi_entities{kind="user"} 99`)
}

func TestUnlabeledGauge(t *testing.T) {
	r := NewRegistry()
	g := r.NewGauge("testapi_up", "Whether the server is up.")
	g.Set(1)
	assert.Contains(t, r.Render(), "testapi_up 1\n")
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	c := r.NewCounter("testapi_requests_total", "Total requests.", "method", "path", "status")
	c.Inc("GET", "/api/health", "200")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "testapi_requests_total")
}
