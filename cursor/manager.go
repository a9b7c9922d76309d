// Package cursor encodes opaque resume tokens carried in document configs
package cursor

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const typeOffset = "offset"

// Manager provides utilities for cursor management
type Manager struct {
	now func() time.Time
}

// NewManager creates a new cursor manager
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// Cursor represents an opaque cursor for resumable operations
type Cursor struct {
	Type      string                 `json:"type"`
	Position  json.RawMessage        `json:"position"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// CreateCursor creates a new cursor token from position data
func (m *Manager) CreateCursor(cursorType string, position interface{}, metadata map[string]interface{}) (string, error) {
	pos, err := json.Marshal(position)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor position: %w", err)
	}

	data, err := json.Marshal(&Cursor{
		Type:      cursorType,
		Position:  pos,
		Metadata:  metadata,
		Timestamp: m.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	return base64.URLEncoding.EncodeToString(data), nil
}

// ParseCursor parses an opaque cursor token back to structured data.
// An empty token yields a nil cursor.
func (m *Manager) ParseCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor token: %w", err)
	}

	var parsed Cursor
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cursor: %w", err)
	}

	return &parsed, nil
}

// OffsetCursor represents a simple offset-based cursor
type OffsetCursor struct {
	Offset int64 `json:"offset"`
	Limit  int64 `json:"limit,omitempty"`
}

// CreateOffsetCursor creates an offset-based cursor token
func (m *Manager) CreateOffsetCursor(offset, limit int64) (string, error) {
	return m.CreateCursor(typeOffset, &OffsetCursor{
		Offset: offset,
		Limit:  limit,
	}, nil)
}

// ParseOffsetCursor parses an offset cursor token; an empty token starts at offset 0
func (m *Manager) ParseOffsetCursor(token string) (*OffsetCursor, error) {
	parsed, err := m.ParseCursor(token)
	if err != nil {
		return nil, err
	}

	if parsed == nil {
		return &OffsetCursor{Offset: 0}, nil
	}

	if parsed.Type != typeOffset {
		return nil, fmt.Errorf("expected offset cursor, got %s", parsed.Type)
	}

	var offsetCursor OffsetCursor
	if err := json.Unmarshal(parsed.Position, &offsetCursor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offset cursor: %w", err)
	}

	return &offsetCursor, nil
}
