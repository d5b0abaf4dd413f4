package api

import (
	"context"

	"github.com/vytor/flashquiz/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DeckService      services.DeckService
	FlashcardService services.FlashcardService
	ImportService    services.ImportService
	DB               Pinger
	DefaultUserID    int64
	CORSOrigins      []string
}
