// Package store defines the persistence interface for match metadata, the
// delivery ledger, and snapshots. Implementations include PostgreSQL
// (source of truth), Redis (read-through cache), and in-memory (for
// testing). The analytics layer never touches this package — it is fed by
// the service shell.
package store

import (
	"context"
	"errors"

	"github.com/crickd/insights-engine/internal/model"
)

// ErrNotFound is returned when a match, ledger, or snapshot does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is the persistence interface. The delivery ledger is append-only:
// entries are never modified or deleted once written.
type Store interface {
	// --- Match metadata ---

	// CreateMatch persists a new match record.
	CreateMatch(ctx context.Context, m *model.Match) error

	// GetMatch retrieves a match by its ID.
	GetMatch(ctx context.Context, id string) (*model.Match, error)

	// ListMatches returns all matches, newest first.
	ListMatches(ctx context.Context) ([]model.Match, error)

	// SetMatchStatus updates the lifecycle status ("live", "completed").
	SetMatchStatus(ctx context.Context, id, status string) error

	// --- Delivery ledger (append-only) ---

	// AppendDeliveries appends canonical deliveries to a match's ledger.
	AppendDeliveries(ctx context.Context, matchID string, deliveries []model.Delivery) error

	// GetDeliveries returns the full ledger for a match in insertion order.
	GetDeliveries(ctx context.Context, matchID string) ([]model.Delivery, error)

	// CountDeliveries returns the ledger length for a match.
	CountDeliveries(ctx context.Context, matchID string) (int, error)

	// --- Snapshot ---

	// PutSnapshot stores the latest external match snapshot.
	PutSnapshot(ctx context.Context, matchID string, snap *model.MatchSnapshot) error

	// GetSnapshot returns the latest snapshot for a match.
	GetSnapshot(ctx context.Context, matchID string) (*model.MatchSnapshot, error)
}
