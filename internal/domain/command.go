package domain

import (
	"strings"
	"time"
)

// ResponseKind is the closed set of payload kinds a command can answer with.
type ResponseKind string

const (
	ResponseText    ResponseKind = "text"
	ResponseSticker ResponseKind = "sticker"
	ResponsePhoto   ResponseKind = "photo"
)

// Command is a user-taught key→response pair.
// Data holds the literal text for text responses and an opaque platform
// media reference for sticker/photo responses, never binary payloads.
type Command struct {
	ID        int64
	UserID    int64
	Key       string
	Kind      ResponseKind
	Data      string
	Link      *string
	CreatedAt time.Time
}

// NormalizeKey canonicalizes a command key. Keys are stored and compared
// in this form only; normalization happens once, at ingestion.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
