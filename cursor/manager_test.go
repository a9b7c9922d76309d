package cursor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetCursor(t *testing.T) {
	m := NewManager()

	token, err := m.CreateOffsetCursor(500, 250)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	oc, err := m.ParseOffsetCursor(token)
	require.NoError(t, err)
	assert.Equal(t, int64(500), oc.Offset)
	assert.Equal(t, int64(250), oc.Limit)
}

func TestParseOffsetCursor_EmptyToken(t *testing.T) {
	oc, err := NewManager().ParseOffsetCursor("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), oc.Offset)
}

func TestParseOffsetCursor_WrongType(t *testing.T) {
	m := NewManager()
	token, err := m.CreateCursor("lsn", map[string]string{"lsn": "0/16B3748"}, nil)
	require.NoError(t, err)

	_, err = m.ParseOffsetCursor(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected offset cursor")
}

func TestParseCursor(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m := &Manager{now: func() time.Time { return fixed }}

	token, err := m.CreateCursor("offset", map[string]int{"offset": 3}, map[string]interface{}{"document": "taxcode"})
	require.NoError(t, err)

	c, err := m.ParseCursor(token)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "offset", c.Type)
	assert.JSONEq(t, `{"offset":3}`, string(c.Position))
	assert.Equal(t, "taxcode", c.Metadata["document"])
	assert.True(t, fixed.Equal(c.Timestamp))

	empty, err := m.ParseCursor("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = m.ParseCursor("not base64!")
	assert.Error(t, err)
}
