package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-06-29")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC), *d)

	d, err = parseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDate("29/06/2024")
	assert.Error(t, err)
}

func TestSplitIDs(t *testing.T) {
	assert.Nil(t, splitIDs(""))
	assert.Equal(t, []string{"a", "b"}, splitIDs("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a , b ,"))
}
