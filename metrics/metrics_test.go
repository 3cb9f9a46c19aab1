package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTP_Middleware_counts_final_status(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTP(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/students/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Student not found")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/9", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/students/:id", "404")))
}

func TestIngest_registers_collectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIngest(reg)

	m.Received.Add(3)
	m.Handled.WithLabelValues(OutcomeMalformed).Inc()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Received))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Handled.WithLabelValues(OutcomeMalformed)))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
