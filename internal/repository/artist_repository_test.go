package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

var artistCols = []string{
	"id", "name", "city", "state", "phone", "genres", "image_link", "facebook_link",
	"website", "seeking_venue", "seeking_description",
}

func TestArtistCreateAssignsID(t *testing.T) {
	db, mock := newMock(t)

	a := &model.Artist{
		Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
		Genres: model.Genres{"Rock n Roll"}, SeekingVenue: true,
		SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO artists").
		WithArgs("Guns N Petals", "San Francisco", "CA", "326-123-5000", `["Rock n Roll"]`,
			nil, nil, nil, true, "Looking for shows to perform at in the San Francisco Bay Area!").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	require.NoError(t, NewArtistRepo(db).Create(context.Background(), a))
	assert.Equal(t, uint64(4), a.ID)
}

func TestArtistListAllOrderedByName(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`FROM artists ORDER BY name, id`).
		WillReturnRows(sqlmock.NewRows(artistCols).
			AddRow(5, "Matt Quevedo", "New York", "NY", "300-400-5000", `["Jazz"]`, nil, nil, nil, false, nil).
			AddRow(6, "The Wild Sax Band", "San Francisco", "CA", "432-325-5432", `["Jazz","Classical"]`, nil, nil, nil, false, nil))

	artists, err := NewArtistRepo(db).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Matt Quevedo", artists[0].Name)
	assert.Equal(t, model.Genres{"Jazz", "Classical"}, artists[1].Genres)
}

func TestArtistGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("FROM artists WHERE id = ?").
		WithArgs(uint64(77)).
		WillReturnRows(sqlmock.NewRows(artistCols))

	_, err := NewArtistRepo(db).GetByID(context.Background(), 77)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM artists WHERE id = \?`).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewArtistRepo(db).Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistDeleteBlockedIsConflict(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM artists WHERE id = \?`).
		WithArgs(uint64(4)).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})
	mock.ExpectRollback()

	err := NewArtistRepo(db).Delete(context.Background(), 4)
	assert.ErrorIs(t, err, ErrConflict)
}
