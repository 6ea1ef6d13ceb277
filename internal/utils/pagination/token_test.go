package pagination

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCursor(t *testing.T) {
	c := Cursor{
		Date:      time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "6f1c9c1e-0000-4000-8000-000000000001",
	}

	token := EncodeCursor(c)
	assert.NotEmpty(t, token)

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.True(t, c.Date.Equal(decoded.Date))
	assert.True(t, c.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, c.ID, decoded.ID)

	// Zero values survive the round trip too.
	zero, err := DecodeCursor(EncodeCursor(Cursor{ID: "x"}))
	require.NoError(t, err)
	assert.True(t, zero.Date.IsZero())
}

func TestDecodeCursorError(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		errMsg string
	}{
		{name: "not base64", token: "this is not base64!", errMsg: "base64 decode"},
		{name: "missing fields", token: EncodeMultiFieldToken("2024-05-15T00:00:00Z"), errMsg: "fields"},
		{name: "empty id", token: EncodeMultiFieldToken("2024-05-15T00:00:00Z", "2024-05-15T00:00:00Z", ""), errMsg: "fields"},
		{name: "bad date", token: EncodeMultiFieldToken("notadate", "2024-05-15T00:00:00Z", "id"), errMsg: "date parse"},
		{name: "bad created at", token: EncodeMultiFieldToken("2024-05-15T00:00:00Z", "later", "id"), errMsg: "created_at parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCursor(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCursorAfter(t *testing.T) {
	day := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	created := day.Add(10 * time.Hour)
	c := Cursor{Date: day, CreatedAt: created, ID: "m"}

	assert.True(t, c.After(day.AddDate(0, 0, -1), created, "z"), "older date")
	assert.False(t, c.After(day.AddDate(0, 0, 1), created, "a"), "newer date")
	assert.True(t, c.After(day, created.Add(-time.Second), "z"), "same date, created earlier")
	assert.True(t, c.After(day, created, "a"), "tie broken by id")
	assert.False(t, c.After(day, created, "m"), "the cursor row itself")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	decoded, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...))
	assert.NoError(t, err)
	assert.Equal(t, fields, decoded)

	// When splitting an empty string with strings.Split, we get a slice with one empty string
	empty, err := DecodeMultiFieldToken(EncodeMultiFieldToken())
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, empty)

	special, err := DecodeMultiFieldToken(EncodeMultiFieldToken("field|with|pipes", "plain"))
	assert.NoError(t, err)
	assert.Len(t, special, 4, "Should split on all pipe characters")
}
