package photo

import (
	"context"
	"testing"
	"time"

	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/catalog"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var photoCols = []string{"id", "trip_id", "user_id", "review_id", "image_url", "caption", "created_at", "first_name", "last_name", "profile_image_url"}

type fakeTrips map[string]catalog.Trip

func (f fakeTrips) Trip(_ context.Context, id string) (catalog.Trip, error) {
	if t, ok := f[id]; ok {
		return t, nil
	}
	return catalog.Trip{}, apperr.NotFound("trip not found")
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var trips = fakeTrips{"trip-1": {ID: "trip-1"}}

func TestList(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, trips, nil)
	mock.ExpectQuery(`FROM trip_photos p`).WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows(photoCols).
			AddRow("p1", "trip-1", "u1", "", "https://img.example/1.jpg", "summit", time.Now(), "Aysel", "M", ""))

	list, err := svc.List(context.Background(), "trip-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].Uploader.ID)
	assert.Equal(t, "summit", list[0].Caption)
}

func TestCreate(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, trips, nil)
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("r1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO trip_photos`).
		WithArgs(pgxmock.AnyArg(), "trip-1", "u1", pgxmock.AnyArg(), "https://img.example/1.jpg", "at the top").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	p, err := svc.Create(context.Background(), "u1", "trip-1", CreateRequest{
		ImageURL: "https://img.example/1.jpg",
		Caption:  "<i>at the top</i>",
		ReviewID: "r1",
	})
	require.NoError(t, err)
	assert.Equal(t, "at the top", p.Caption)
	assert.Equal(t, "r1", p.ReviewID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejects(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, trips, nil)

	_, err := svc.Create(context.Background(), "u1", "trip-1", CreateRequest{ImageURL: "not a url"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Create(context.Background(), "u1", "missing", CreateRequest{ImageURL: "https://img.example/1.jpg"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	_, err = svc.Create(context.Background(), "u1", "trip-1", CreateRequest{ImageURL: "https://img.example/1.jpg", ReviewID: "gone"})
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "reviewId")
}

func TestDeleteOwnerOnly(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock, trips, nil)
	mock.ExpectExec(`DELETE FROM trip_photos`).WithArgs("p1", "u1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM trip_photos`).WithArgs("p1", "u2").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, svc.Delete(context.Background(), "p1", "u1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "p1", "u2"), apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
