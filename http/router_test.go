package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anahihull/sd-api-ordenes/db"
	"github.com/anahihull/sd-api-ordenes/entities"
	"github.com/anahihull/sd-api-ordenes/message/event"
	"github.com/anahihull/sd-api-ordenes/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrdersTestRouter(t *testing.T) (*echo.Echo, *db.OrderRepository, *event.BusMock) {
	t.Helper()

	repo := db.NewOrderRepository(db.SeedOrders()...)
	bus := &event.BusMock{}
	reg := prometheus.NewRegistry()

	return NewOrdersRouter(repo, bus, metrics.NewHTTP(reg), reg), repo, bus
}

func newStudentsTestRouter(t *testing.T) (*echo.Echo, *db.StudentRepository, *event.BusMock) {
	t.Helper()

	repo := db.NewStudentRepository()
	bus := &event.BusMock{}
	reg := prometheus.NewRegistry()

	return NewStudentsRouter(repo, bus, metrics.NewHTTP(reg), reg), repo, bus
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestOrders_list_seeded(t *testing.T) {
	e, _, _ := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/api/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)

	orders := decode[[]entities.Order](t, rec)
	assert.Equal(t, db.SeedOrders(), orders)
}

func TestOrders_get(t *testing.T) {
	e, _, _ := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/api/orders/101", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Keyboard", decode[entities.Order](t, rec).ProductName)

	rec = doRequest(e, http.MethodGet, "/api/orders/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgOrderNotFound, decode[map[string]string](t, rec)["message"])
}

func TestOrders_create(t *testing.T) {
	e, repo, bus := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/orders", `{"ownerId":"7","productName":"Monitor","quantity":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[entities.Order](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "7", created.OwnerID)
	assert.Equal(t, "Monitor", created.ProductName)
	assert.Equal(t, 3, created.Quantity)

	rec = doRequest(e, http.MethodGet, "/api/orders/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[entities.Order](t, rec))

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	published := bus.Published()
	require.Len(t, published, 1)
	placed, ok := published[0].(entities.OrderPlaced_v1)
	require.True(t, ok)
	assert.Equal(t, created.ID, placed.OrderID)
}

func TestOrders_create_ids_are_unique(t *testing.T) {
	e, _, _ := newOrdersTestRouter(t)

	ids := map[string]struct{}{}
	for i := 0; i < 20; i++ {
		rec := doRequest(e, http.MethodPost, "/api/orders", `{"ownerId":"1","productName":"Pen","quantity":1}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids[decode[entities.Order](t, rec).ID] = struct{}{}
	}

	assert.Len(t, ids, 20)
}

func TestOrders_create_accepts_negative_quantity(t *testing.T) {
	e, _, _ := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodPost, "/api/orders", `{"ownerId":"1","productName":"Pen","quantity":-4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, -4, decode[entities.Order](t, rec).Quantity)
}

func TestOrders_create_invalid(t *testing.T) {
	testCases := []struct {
		Name string
		Body string
	}{
		{Name: "missing_owner", Body: `{"productName":"Pen","quantity":1}`},
		{Name: "empty_owner", Body: `{"ownerId":"","productName":"Pen","quantity":1}`},
		{Name: "missing_product", Body: `{"ownerId":"1","quantity":1}`},
		{Name: "empty_product", Body: `{"ownerId":"1","productName":"","quantity":1}`},
		{Name: "missing_quantity", Body: `{"ownerId":"1","productName":"Pen"}`},
		{Name: "string_quantity", Body: `{"ownerId":"1","productName":"Pen","quantity":"5"}`},
		{Name: "fractional_quantity", Body: `{"ownerId":"1","productName":"Pen","quantity":2.5}`},
		{Name: "not_json", Body: `{"ownerId":`},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			e, repo, bus := newOrdersTestRouter(t)

			rec := doRequest(e, http.MethodPost, "/api/orders", tc.Body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, msgInvalidOrder, decode[map[string]string](t, rec)["message"])

			orders, err := repo.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, orders, 2)
			assert.Empty(t, bus.Published())
		})
	}
}

func TestOrders_update_partial(t *testing.T) {
	e, _, bus := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodPut, "/api/orders/101", `{"quantity":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.Order{ID: "101", OwnerID: "1", ProductName: "Keyboard", Quantity: 5}, decode[entities.Order](t, rec))

	rec = doRequest(e, http.MethodPut, "/api/orders/101", `{"productName":"Trackpad"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entities.Order{ID: "101", OwnerID: "1", ProductName: "Trackpad", Quantity: 5}, decode[entities.Order](t, rec))

	rec = doRequest(e, http.MethodPut, "/api/orders/101", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Trackpad", decode[entities.Order](t, rec).ProductName)

	assert.Len(t, bus.Published(), 3)
}

func TestOrders_update_not_found(t *testing.T) {
	e, repo, _ := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodPut, "/api/orders/999", `{"quantity":5}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgOrderNotFoundForUpdate, decode[map[string]string](t, rec)["message"])

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, db.SeedOrders(), orders)
}

func TestOrders_update_mistyped_body(t *testing.T) {
	e, _, _ := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodPut, "/api/orders/101", `{"quantity":"many"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrders_delete(t *testing.T) {
	e, _, bus := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodDelete, "/api/orders/102", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/orders/102", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/orders/102", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgOrderNotFoundForRemoval, decode[map[string]string](t, rec)["message"])

	published := bus.Published()
	require.Len(t, published, 1)
	assert.Equal(t, "102", published[0].(entities.OrderDeleted_v1).OrderID)
}

func TestOrders_publish_failure_does_not_fail_request(t *testing.T) {
	e, _, bus := newOrdersTestRouter(t)
	bus.Err = errors.New("broker down")

	rec := doRequest(e, http.MethodPost, "/api/orders", `{"ownerId":"1","productName":"Pen","quantity":1}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestOrders_root_banner(t *testing.T) {
	e, _, _ := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestStudents_list_and_get(t *testing.T) {
	e, repo, _ := newStudentsTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	created, err := repo.Create(context.Background(), entities.NewStudent{Name: "Ana", BirthDate: 123, CourseID: 2})
	require.NoError(t, err)

	rec = doRequest(e, http.MethodGet, "/students", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []entities.Student{created}, decode[[]entities.Student](t, rec))

	rec = doRequest(e, http.MethodGet, "/students/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[entities.Student](t, rec))
}

func TestStudents_get_not_found(t *testing.T) {
	e, _, _ := newStudentsTestRouter(t)

	for _, id := range []string{"1", "abc", "1.5"} {
		rec := doRequest(e, http.MethodGet, "/students/"+id, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.Equal(t, msgStudentNotFound, decode[map[string]string](t, rec)["error"], id)
	}
}

func TestStudents_delete(t *testing.T) {
	e, repo, bus := newStudentsTestRouter(t)

	created, err := repo.Create(context.Background(), entities.NewStudent{Name: "Ana", BirthDate: 123, CourseID: 2})
	require.NoError(t, err)

	rec := doRequest(e, http.MethodDelete, "/students/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[deleteStudentResponse](t, rec).Deleted)

	rec = doRequest(e, http.MethodGet, "/students/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/students/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgStudentNotFound, decode[map[string]string](t, rec)["error"])

	published := bus.Published()
	require.Len(t, published, 1)
	assert.Equal(t, 1, published[0].(entities.StudentDeleted_v1).StudentID)
}

func TestHealth_and_metrics(t *testing.T) {
	e, _, _ := newOrdersTestRouter(t)

	rec := doRequest(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	doRequest(e, http.MethodGet, "/api/orders", "")

	rec = doRequest(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `campus_http_requests_total{method="GET",route="/api/orders",status="200"} 1`)
}

func TestErrorHandler_hides_internal_errors(t *testing.T) {
	testCases := []struct {
		Name       string
		MessageKey string
		Handler    echo.HandlerFunc
	}{
		{
			Name:       "error",
			MessageKey: "message",
			Handler: func(c echo.Context) error {
				return errors.New("db exploded")
			},
		},
		{
			Name:       "panic",
			MessageKey: "error",
			Handler: func(c echo.Context) error {
				panic("boom")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			e := newEcho("test", tc.MessageKey, metrics.NewHTTP(reg), reg)
			e.GET("/fail", tc.Handler)

			rec := doRequest(e, http.MethodGet, "/fail", "")
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, msgInternalServerError, decode[map[string]string](t, rec)[tc.MessageKey])
		})
	}
}
