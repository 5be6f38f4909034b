package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/database"
)

// store handles database operations for matches.
type store struct {
	db *sql.DB
}

// NewStore creates a new match Store.
func NewStore(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const matchColumns = `m.id, m.sport, m.court_id, m.court_name, m.lat, m.lng, m.address, m.date, m.time,
	m.starts_at, m.duration_hours, m.max_players, m.current_players, m.captain_id, m.captain_name,
	m.description, m.price_per_player, m.total_cost, m.status, m.payment_status, m.version,
	m.created_at, m.updated_at`

func (s *store) Insert(ctx context.Context, m *Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (
			id, sport, court_id, court_name, lat, lng, address, date, time, starts_at,
			duration_hours, max_players, current_players, captain_id, captain_name, description,
			price_per_player, total_cost, status, payment_status, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID, m.Sport, m.CourtID, m.CourtName, m.Location.Lat, m.Location.Lng, m.Location.Address,
		m.Date, m.Time, m.StartsAt.Unix(), m.DurationHours, m.MaxPlayers, len(m.Players),
		m.CaptainID, m.CaptainName, m.Description, m.PricePerPlayer, m.TotalCost,
		string(m.Status), m.PaymentStatus, m.Version, m.CreatedAt.Unix(), m.UpdatedAt.Unix(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s %s %s", ErrSlotTaken, m.CourtID, m.Date, m.Time)
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}

	for i, userID := range m.Players {
		_, err = tx.ExecContext(ctx, `INSERT INTO match_players (match_id, user_id, position, joined_at) VALUES (?, ?, ?, ?)`,
			m.ID, userID, i, m.CreatedAt.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert match player %s: %w", userID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match: %w", err)
	}
	log.Info("Created match", "matchID", m.ID, "court", m.CourtName, "date", m.Date, "time", m.Time)
	return nil
}

func (s *store) Get(ctx context.Context, matchID string) (*Match, error) {
	return getMatch(ctx, s.db, matchID)
}

// AddPlayer increments the counter only while the match is open, below
// capacity and without userID; the status flips to full in the same statement.
func (s *store) AddPlayer(ctx context.Context, matchID, userID string, at time.Time) (*Match, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE matches SET
			current_players = current_players + 1,
			status = CASE WHEN current_players + 1 >= max_players THEN 'full' ELSE status END,
			version = version + 1,
			updated_at = ?
		WHERE id = ?
			AND status = 'open'
			AND current_players < max_players
			AND NOT EXISTS (SELECT 1 FROM match_players WHERE match_id = ? AND user_id = ?)
	`, at.Unix(), matchID, matchID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update match counter: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	} else if n == 0 {
		return nil, classifyJoin(ctx, tx, matchID, userID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO match_players (match_id, user_id, position, joined_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM match_players WHERE match_id = ?), ?)
	`, matchID, userID, matchID, at.Unix())
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadyJoined
		}
		return nil, fmt.Errorf("failed to add match player: %w", err)
	}

	m, err := getMatch(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit join: %w", err)
	}
	return m, nil
}

// classifyJoin explains why the guarded join update matched no row.
func classifyJoin(ctx context.Context, q querier, matchID, userID string) error {
	m, err := getMatch(ctx, q, matchID)
	if err != nil {
		return err
	}
	switch {
	case m.Status == StatusCancelled:
		return ErrMatchCancelled
	case m.Status == StatusFull || m.CurrentPlayers >= m.MaxPlayers:
		return ErrAlreadyFull
	case m.HasPlayer(userID):
		return ErrAlreadyJoined
	}
	return fmt.Errorf("join of match %s rejected in unexpected state %s", matchID, m.Status)
}

func (s *store) RemovePlayer(ctx context.Context, matchID, userID string, at time.Time) (*Match, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	m, err := getMatch(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	if m.CaptainID == userID {
		return nil, ErrCaptainCannotLeave
	}
	if m.Status == StatusCancelled {
		return nil, ErrMatchCancelled
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM match_players WHERE match_id = ? AND user_id = ?`, matchID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove match player: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	} else if n == 0 {
		return nil, ErrNotJoined
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE matches SET
			current_players = current_players - 1,
			status = CASE WHEN status = 'full' THEN 'open' ELSE status END,
			version = version + 1,
			updated_at = ?
		WHERE id = ? AND status != 'cancelled' AND current_players > 0
	`, at.Unix(), matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to update match counter: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	} else if n == 0 {
		return nil, ErrMatchCancelled
	}

	m, err = getMatch(ctx, tx, matchID)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit leave: %w", err)
	}
	return m, nil
}

func (s *store) Cancel(ctx context.Context, matchID, userID string, at time.Time) (*Match, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE matches SET status = 'cancelled', version = version + 1, updated_at = ?
		WHERE id = ? AND captain_id = ? AND status != 'cancelled'
	`, at.Unix(), matchID, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to cancel match: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	m, err := getMatch(ctx, tx, matchID)
	if err != nil {
		return nil, false, err
	}
	if n == 0 && m.CaptainID != userID {
		return nil, false, ErrNotCaptain
	}
	if err = tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit cancel: %w", err)
	}
	return m, n > 0, nil
}

func (s *store) SetPaymentStatus(ctx context.Context, matchID, status string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE matches SET payment_status = ?, version = version + 1, updated_at = ? WHERE id = ?
	`, status, at.Unix(), matchID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	return nil
}

func (s *store) ListOpenFrom(ctx context.Context, from time.Time) ([]Match, error) {
	return listMatches(ctx, s.db, `
		SELECT `+matchColumns+` FROM matches m
		WHERE m.status = 'open' AND m.starts_at >= ?
		ORDER BY m.starts_at ASC, m.id ASC
	`, from.Unix())
}

func (s *store) ListForUser(ctx context.Context, userID string) ([]Match, error) {
	return listMatches(ctx, s.db, `
		SELECT `+matchColumns+` FROM matches m
		JOIN match_players p ON p.match_id = m.id
		WHERE p.user_id = ?
		ORDER BY m.starts_at ASC, m.id ASC
	`, userID)
}

func (s *store) Search(ctx context.Context, term, sport string, from time.Time) ([]Match, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(term))) + "%"
	return listMatches(ctx, s.db, `
		SELECT `+matchColumns+` FROM matches m
		WHERE m.status = 'open' AND m.starts_at >= ?
			AND (? = '' OR m.sport = ?)
			AND (LOWER(m.court_name) LIKE ? ESCAPE '\'
				OR LOWER(m.description) LIKE ? ESCAPE '\'
				OR LOWER(m.address) LIKE ? ESCAPE '\')
		ORDER BY m.starts_at ASC, m.id ASC
	`, from.Unix(), sport, sport, pattern, pattern, pattern)
}

func (s *store) OccupiedTimes(ctx context.Context, courtID, date string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT time FROM matches WHERE court_id = ? AND date = ? AND status != 'cancelled' ORDER BY time
	`, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query occupied times: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan occupied time: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func getMatch(ctx context.Context, q querier, matchID string) (*Match, error) {
	row := q.QueryRowContext(ctx, `SELECT `+matchColumns+` FROM matches m WHERE m.id = ?`, matchID)
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, matchID)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if err := loadPlayers(ctx, q, []*Match{m}); err != nil {
		return nil, err
	}
	return m, nil
}

func listMatches(ctx context.Context, q querier, query string, args ...any) ([]Match, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	var ptrs []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		ptrs = append(ptrs, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := loadPlayers(ctx, q, ptrs); err != nil {
		return nil, err
	}
	matches := make([]Match, 0, len(ptrs))
	for _, m := range ptrs {
		matches = append(matches, *m)
	}
	return matches, nil
}

// loadPlayers fills Players for every match with one query, in join order.
func loadPlayers(ctx context.Context, q querier, matches []*Match) error {
	if len(matches) == 0 {
		return nil
	}
	byID := make(map[string]*Match, len(matches))
	placeholders := make([]string, 0, len(matches))
	args := make([]any, 0, len(matches))
	for _, m := range matches {
		m.Players = []string{}
		byID[m.ID] = m
		placeholders = append(placeholders, "?")
		args = append(args, m.ID)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT match_id, user_id FROM match_players
		WHERE match_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY match_id, position ASC
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to query match players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var matchID, userID string
		if err := rows.Scan(&matchID, &userID); err != nil {
			return fmt.Errorf("failed to scan match player: %w", err)
		}
		if m, ok := byID[matchID]; ok {
			m.Players = append(m.Players, userID)
		}
	}
	return rows.Err()
}

func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var (
		m                             Match
		lat, lng                      sql.NullFloat64
		status                        string
		startsAt, createdAt, updateAt int64
	)
	err := scanner.Scan(
		&m.ID, &m.Sport, &m.CourtID, &m.CourtName, &lat, &lng, &m.Location.Address, &m.Date, &m.Time,
		&startsAt, &m.DurationHours, &m.MaxPlayers, &m.CurrentPlayers, &m.CaptainID, &m.CaptainName,
		&m.Description, &m.PricePerPlayer, &m.TotalCost, &status, &m.PaymentStatus, &m.Version,
		&createdAt, &updateAt,
	)
	if err != nil {
		return nil, err
	}
	if lat.Valid {
		m.Location.Lat = &lat.Float64
	}
	if lng.Valid {
		m.Location.Lng = &lng.Float64
	}
	m.Status = Status(status)
	m.StartsAt = time.Unix(startsAt, 0).UTC()
	m.CreatedAt = time.Unix(createdAt, 0).UTC()
	m.UpdatedAt = time.Unix(updateAt, 0).UTC()
	return &m, nil
}
