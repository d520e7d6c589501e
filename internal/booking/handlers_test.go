package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAuth(c *fiber.Ctx) error {
	if id := c.Get("X-User"); id != "" {
		c.Locals("user_id", id)
	}
	return c.Next()
}

func newApp(svc *Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(nil)})
	RegisterRoutes(app.Group("/api/user"), svc, fakeAuth)
	return app
}

func TestBookHandlerValidationErrors(t *testing.T) {
	svc := NewService(newMock(t), fakeTrips{}, nil, nil, nil, nil, Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/user/trips", bytes.NewReader([]byte(`{"groupSize":3}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "user-1")
	resp, err := newApp(svc).Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Errors, "tripId")
}

func TestBookHandlerCreated(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, fakeTrips{"trip-1": catalog.Trip{ID: "trip-1"}}, nil, nil, nil, nil, Options{})
	mock.ExpectQuery(`INSERT INTO user_trips`).WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	req := httptest.NewRequest(http.MethodPost, "/api/user/trips", bytes.NewReader([]byte(`{"tripId":"trip-1","bookingDate":"2026-07-01T08:00:00Z","groupSize":2}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "user-1")
	resp, err := newApp(svc).Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var ut UserTrip
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ut))
	require.NotNil(t, ut.BookingDate)
	assert.Equal(t, 2026, ut.BookingDate.Year())
}

func TestCompleteHandlerConflict(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil, nil, nil, nil, nil, Options{})
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE user_trips`).WillReturnRows(pgxmock.NewRows(userTripCols))
	mock.ExpectQuery(`SELECT status FROM user_trips`).WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(StatusCancelled))
	mock.ExpectRollback()

	req := httptest.NewRequest(http.MethodPost, "/api/user/trips/ut-1/complete", nil)
	req.Header.Set("X-User", "user-1")
	resp, err := newApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestStatsHandler(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, nil, nil, nil, nil, nil, Options{})
	mock.ExpectQuery(`FROM progress_ledger WHERE user_id`).WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(ledgerCols).AddRow("l1", "user-1", "ut-1", "trip-1", "gabala", 500, 4243, time.Now()))

	req := httptest.NewRequest(http.MethodGet, "/api/user/stats", nil)
	req.Header.Set("X-User", "user-1")
	resp, err := newApp(svc).Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, float64(2), stats["climbingLevel"])
	assert.Equal(t, map[string]any{"gabala": float64(1)}, stats["regionTrips"])
}

func TestHandlersRequireAuth(t *testing.T) {
	app := newApp(NewService(newMock(t), nil, nil, nil, nil, nil, Options{}))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/user/trips", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
