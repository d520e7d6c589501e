package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SNMDESERT/peak-finder/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func newCatalogApp(svc *Service) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(nil)})
	RegisterRoutes(app.Group("/api/regions"), app.Group("/api/trips"), svc)
	return app
}

func TestTripsHandlerFeaturedQuery(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`FROM trips`).WithArgs(true, "").
		WillReturnRows(tripRow(pgxmock.NewRows(tripCols), "khinalig-village-trek", true))

	resp, err := newCatalogApp(NewService(mock, nil, 0, nil)).Test(httptest.NewRequest(http.MethodGet, "/api/trips?featured=true", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("trips status: %v", err)
	}
	var trips []map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&trips)
	if len(trips) != 1 || trips[0]["pointsReward"] != float64(500) {
		t.Fatalf("unexpected body %v", trips)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripHandlerNotFound(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`FROM trips WHERE id`).WithArgs("nope").WillReturnRows(pgxmock.NewRows(tripCols))

	resp, err := newCatalogApp(NewService(mock, nil, 0, nil)).Test(httptest.NewRequest(http.MethodGet, "/api/trips/nope", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
}

func TestRegionTripsHandler(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`FROM regions WHERE id`).WithArgs("gabala").
		WillReturnRows(pgxmock.NewRows(regionCols).AddRow("gabala", "Gabala", "gabala", "Mountain Peak", "", "", time.Now()))
	mock.ExpectQuery(`FROM trips`).WithArgs(false, "gabala").
		WillReturnRows(tripRow(tripRow(pgxmock.NewRows(tripCols), "a", false), "b", true))

	resp, err := newCatalogApp(NewService(mock, nil, 0, nil)).Test(httptest.NewRequest(http.MethodGet, "/api/regions/gabala/trips", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("region trips status: %v", err)
	}
	var trips []Trip
	_ = json.NewDecoder(resp.Body).Decode(&trips)
	if len(trips) != 2 {
		t.Fatalf("expected two trips, got %d", len(trips))
	}
}

func TestRegionsHandler(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`FROM regions ORDER BY name`).
		WillReturnRows(pgxmock.NewRows(regionCols).AddRow("gabala", "Gabala", "gabala", "Mountain Peak", "", "", time.Now()))

	app := newCatalogApp(NewService(mock, nil, 0, nil))
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/regions", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("regions status: %v", err)
	}

	mock.ExpectQuery(`FROM regions WHERE id`).WithArgs("gabala").
		WillReturnRows(pgxmock.NewRows(regionCols).AddRow("gabala", "Gabala", "gabala", "Mountain Peak", "", "", time.Now()))
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/regions/gabala", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("region status: %v", err)
	}
}
