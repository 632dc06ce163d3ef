// Package history records completed draws so a user can revisit past
// signs. The memory store serves the CLI and tests; the Mongo store backs
// the server, where history must survive restarts and be shared across
// replicas.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lingqianapp/lingqian/pkg/i18n"
)

// DefaultRecentLimit bounds a Recent query when the caller passes no
// positive limit.
const DefaultRecentLimit = 20

// Draw is one recorded draw: which sign came up, in which language, and
// when. The user's request text is kept so a re-render of the card from
// history reproduces the original.
type Draw struct {
	ID       string    `json:"id" bson:"_id"`
	SignID   string    `json:"sign_id" bson:"sign_id"`
	Language string    `json:"language" bson:"language"`
	Request  string    `json:"request,omitempty" bson:"request,omitempty"`
	DrawnAt  time.Time `json:"drawn_at" bson:"drawn_at"`
}

// NewDraw builds a Draw with a fresh random ID.
func NewDraw(signID string, lang i18n.Language, request string, drawnAt time.Time) Draw {
	return Draw{
		ID:       uuid.NewString(),
		SignID:   signID,
		Language: string(lang),
		Request:  request,
		DrawnAt:  drawnAt,
	}
}

// Store persists draws. Implementations must be safe for concurrent use.
type Store interface {
	// Record appends a draw.
	Record(ctx context.Context, draw Draw) error

	// Recent returns up to limit draws, newest first. A non-positive
	// limit uses DefaultRecentLimit.
	Recent(ctx context.Context, limit int) ([]Draw, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
