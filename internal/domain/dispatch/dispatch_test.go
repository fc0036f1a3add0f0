package dispatch

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	r, err := NewRecord(OpBulk, "req-1", 3, true, "200", "Success", 120*time.Millisecond)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, OpBulk, r.Operation)
	assert.Equal(t, 3, r.Recipients)
	assert.True(t, r.Success)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestNewRecord_UnknownOperation(t *testing.T) {
	_, err := NewRecord(Operation("fax"), "", 1, true, "", "", 0)
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestNewRecord_TruncatesDescription(t *testing.T) {
	r, err := NewRecord(OpSend, "", -1, false, "9999", strings.Repeat("x", 400), 0)
	require.NoError(t, err)

	assert.Len(t, r.ResponseDescription, MaxDescriptionLength)
	assert.Zero(t, r.Recipients)
}

func TestNewRecord_TruncatesOnRuneBoundary(t *testing.T) {
	desc := "xx" + strings.Repeat("é", 200)

	r, err := NewRecord(OpSend, "", 1, false, "9999", desc, 0)
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(r.ResponseDescription))
	assert.LessOrEqual(t, len(r.ResponseDescription), MaxDescriptionLength)
	assert.Equal(t, MaxDescriptionLength-1, len(r.ResponseDescription))
	assert.True(t, strings.HasPrefix(desc, r.ResponseDescription))
}
