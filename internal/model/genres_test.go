package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenresValue(t *testing.T) {
	v, err := Genres{"Jazz", "Reggae"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Jazz","Reggae"]`, v)

	v, err = Genres(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestGenresScan(t *testing.T) {
	var g Genres
	require.NoError(t, g.Scan([]byte(`["Rock n Roll","Folk"]`)))
	assert.Equal(t, Genres{"Rock n Roll", "Folk"}, g)

	require.NoError(t, g.Scan(`null`))
	assert.Equal(t, Genres{}, g)

	require.NoError(t, g.Scan(nil))
	assert.Equal(t, Genres{}, g)

	assert.Error(t, g.Scan(42))
	assert.Error(t, g.Scan("not json"))
}
