package review

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SNMDESERT/peak-finder/internal/apperr"

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
	RegisterRoutes(app.Group("/api/reviews"), svc, fakeAuth)
	return app
}

func TestCreateHandler(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, fakeTrips{}, nil)
	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnRows(pgxmock.NewRows([]string{"helpful", "created_at"}).AddRow(0, time.Now()))

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte(`{"rating":4,"title":"Windy ridge"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "u1")
	resp, err := newApp(svc).Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body Review
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Windy ridge", body.Title)
	assert.Equal(t, 4, body.Rating)
}

func TestCreateHandlerBadRating(t *testing.T) {
	svc := NewService(newMock(t), fakeTrips{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/reviews", bytes.NewReader([]byte(`{"rating":0}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "u1")
	resp, err := newApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHelpfulHandlerNotFound(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, fakeTrips{}, nil)
	mock.ExpectQuery(`UPDATE reviews`).WillReturnRows(pgxmock.NewRows([]string{"helpful"}))

	req := httptest.NewRequest(http.MethodPost, "/api/reviews/nope/helpful", nil)
	req.Header.Set("X-User", "u1")
	resp, err := newApp(svc).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListHandler(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, fakeTrips{}, nil)
	mock.ExpectQuery(`FROM reviews r`).WithArgs(10).WillReturnRows(pgxmock.NewRows(listCols))

	resp, err := newApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/reviews?limit=10", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []Review
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body)
}
