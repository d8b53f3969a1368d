package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/model"
)

var showCols = []string{
	"venue_id", "artist_id", "start_time", "venue_name", "venue_image", "artist_name", "artist_image",
}

func TestShowCreateCommits(t *testing.T) {
	db, mock := newMock(t)
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO shows").
		WithArgs(uint64(1), uint64(4), start).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewShowRepo(db).Create(context.Background(), model.Show{VenueID: 1, ArtistID: 4, StartTime: start})
	require.NoError(t, err)
}

func TestShowCreateDuplicateIsConflict(t *testing.T) {
	db, mock := newMock(t)
	start := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO shows").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'PRIMARY'"})
	mock.ExpectRollback()

	err := NewShowRepo(db).Create(context.Background(), model.Show{VenueID: 1, ArtistID: 4, StartTime: start})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrInvalidReference)
}

func TestShowCreateUnknownVenueIsInvalidReference(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO shows").
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "foreign key constraint fails"})
	mock.ExpectRollback()

	err := NewShowRepo(db).Create(context.Background(), model.Show{VenueID: 99, ArtistID: 4, StartTime: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestShowListByVenuesGroupsRows(t *testing.T) {
	db, mock := newMock(t)
	t1 := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	t2 := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE s.venue_id IN \(\?, \?\)`).
		WithArgs(uint64(1), uint64(3)).
		WillReturnRows(sqlmock.NewRows(showCols).
			AddRow(1, 4, t1, "The Musical Hop", "", "Guns N Petals", "").
			AddRow(3, 5, t2, "Park Square", "", "Matt Quevedo", "").
			AddRow(1, 6, t2, "The Musical Hop", "", "The Wild Sax Band", ""))

	got, err := NewShowRepo(db).ListByVenues(context.Background(), []uint64{1, 3})
	require.NoError(t, err)
	require.Len(t, got[1], 2)
	require.Len(t, got[3], 1)
	assert.Equal(t, "Guns N Petals", got[1][0].ArtistName)
	assert.Equal(t, uint64(6), got[1][1].ArtistID)
}

func TestShowListByVenuesEmptyIDsSkipsQuery(t *testing.T) {
	db, _ := newMock(t)

	got, err := NewShowRepo(db).ListByVenues(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestShowListByArtist(t *testing.T) {
	db, mock := newMock(t)
	t1 := time.Date(2019, 6, 15, 23, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE s.artist_id = \? ORDER BY s.start_time`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows(showCols).
			AddRow(3, 5, t1, "Park Square", "https://img/park.jpg", "Matt Quevedo", "https://img/matt.jpg"))

	got, err := NewShowRepo(db).ListByArtist(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://img/park.jpg", got[0].VenueImageLink)
	assert.True(t, got[0].StartTime.Equal(t1))
}
