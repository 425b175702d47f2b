package daily

import (
	"context"
	"database/sql"
)

// Result is one player's finished daily puzzle.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Words     int    `json:"words"`
	Score     int    `json:"score"`
	Perfect   bool   `json:"perfect"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a finished puzzle. The first result per user and day wins.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, words, score, perfect, elapsed_ms)
VALUES(?,?,?,?,?,?)`, r.UserID, r.Date, r.Words, r.Score, r.Perfect, r.ElapsedMs,
	)
	return err
}

type LBRow struct {
	UserID    string `json:"userId"`
	Username  string `json:"username,omitempty"` // empty for guests
	Words     int    `json:"words"`
	Score     int    `json:"score"`
	Perfect   bool   `json:"perfect"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard ranks by score, then fewer words, then speed.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.user_id, COALESCE(u.username, ''), r.words, r.score, r.perfect, r.elapsed_ms
FROM daily_results r
LEFT JOIN users u ON u.id = r.user_id
WHERE r.date=?
ORDER BY r.score DESC, r.words ASC, r.elapsed_ms ASC, r.created_at ASC
LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Username, &r.Words, &r.Score, &r.Perfect, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Claim moves an anonymous player's results to their account. Days the
// account already has a result for keep the account's result.
func (s *Store) Claim(ctx context.Context, fromUser, toUser string) error {
	if fromUser == "" || toUser == "" || fromUser == toUser {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET user_id=? WHERE user_id=?`, toUser, fromUser,
	); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM daily_results WHERE user_id=?`, fromUser)
	return err
}
