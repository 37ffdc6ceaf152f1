package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crickd/insights-engine/internal/model"
)

// PostgresStore implements Store using PostgreSQL as the source of truth.
// Matches and deliveries use explicit columns; the roster and snapshot are
// stored as JSONB because their shape is owned by external services.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateMatch(ctx context.Context, m *model.Match) error {
	roster, err := json.Marshal(m.Roster)
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO matches (id, home_team, away_team, venue, overs_limit, status, roster, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::JSONB, $8)`,
		m.ID, m.HomeTeam, m.AwayTeam, m.Venue, m.OversLimit, m.Status, roster, m.CreatedAt,
	)
	return err
}

func (s *PostgresStore) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	var m model.Match
	var roster []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, home_team, away_team, venue, overs_limit, status, roster, created_at
		 FROM matches WHERE id = $1`, id).
		Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Venue, &m.OversLimit, &m.Status, &roster, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get match %s: %w", id, err)
	}

	if len(roster) > 0 {
		if err := json.Unmarshal(roster, &m.Roster); err != nil {
			return nil, fmt.Errorf("unmarshal roster for match %s: %w", id, err)
		}
	}
	return &m, nil
}

func (s *PostgresStore) ListMatches(ctx context.Context) ([]model.Match, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, home_team, away_team, venue, overs_limit, status, roster, created_at
		 FROM matches ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		var roster []byte
		if err := rows.Scan(&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Venue, &m.OversLimit, &m.Status, &roster, &m.CreatedAt); err != nil {
			return nil, err
		}
		if len(roster) > 0 {
			if err := json.Unmarshal(roster, &m.Roster); err != nil {
				return nil, fmt.Errorf("unmarshal roster for match %s: %w", m.ID, err)
			}
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *PostgresStore) SetMatchStatus(ctx context.Context, id, status string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE matches SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) AppendDeliveries(ctx context.Context, matchID string, deliveries []model.Delivery) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, d := range deliveries {
		_, err := tx.Exec(ctx,
			`INSERT INTO deliveries
			   (match_id, inning, over_number, ball_number, runs_scored, is_extra, extra_type,
			    is_wicket, dismissed_player_id, striker_id, non_striker_id, shot_angle_deg, shot_map)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			matchID, d.Inning, d.Over, d.Ball, d.Runs, d.IsExtra, string(d.ExtraType),
			d.IsWicket, d.DismissedID, d.StrikerID, d.NonStrikerID, d.ShotAngle, d.ShotMap,
		)
		if isForeignKeyViolation(err) {
			return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("append delivery for match %s: %w", matchID, err)
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetDeliveries(ctx context.Context, matchID string) ([]model.Delivery, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT inning, over_number, ball_number, runs_scored, is_extra, extra_type,
		        is_wicket, dismissed_player_id, striker_id, non_striker_id, shot_angle_deg, shot_map
		 FROM deliveries WHERE match_id = $1 ORDER BY seq ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := []model.Delivery{}
	for rows.Next() {
		var d model.Delivery
		var extraType string
		if err := rows.Scan(&d.Inning, &d.Over, &d.Ball, &d.Runs, &d.IsExtra, &extraType,
			&d.IsWicket, &d.DismissedID, &d.StrikerID, &d.NonStrikerID, &d.ShotAngle, &d.ShotMap); err != nil {
			return nil, err
		}
		d.ExtraType = model.ExtraType(extraType)
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func (s *PostgresStore) CountDeliveries(ctx context.Context, matchID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM deliveries WHERE match_id = $1`, matchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count deliveries for match %s: %w", matchID, err)
	}
	return count, nil
}

func (s *PostgresStore) PutSnapshot(ctx context.Context, matchID string, snap *model.MatchSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (match_id, version, payload)
		 VALUES ($1, $2, $3::JSONB)
		 ON CONFLICT (match_id) DO UPDATE SET version = $2, payload = $3::JSONB`,
		matchID, snap.Version, payload,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return err
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key
// violation (SQLSTATE 23503). The deliveries and snapshots tables reference
// matches(id), so a violation on those writes means the match does not exist.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, matchID string) (*model.MatchSnapshot, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM snapshots WHERE match_id = $1`, matchID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("snapshot for match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot for match %s: %w", matchID, err)
	}

	var snap model.MatchSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot for match %s: %w", matchID, err)
	}
	return &snap, nil
}
