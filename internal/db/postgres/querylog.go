package postgres

import (
	"context"

	"github.com/kailas-cloud/unisearch/internal/db"
)

const insertQueryLogSQL = `INSERT INTO search_query_logs (id, query, result_count, user_id, sort_mode, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
ON CONFLICT (id) DO NOTHING`

// InsertQueryLog appends one query log row. Re-inserting an id is a no-op.
func (s *Store) InsertQueryLog(ctx context.Context, row *db.QueryLogRow) error {
	_, err := s.pool.Exec(ctx, insertQueryLogSQL,
		row.ID, row.Query, row.ResultCount, row.UserID, row.SortMode, row.CreatedAt)
	if err != nil {
		return &db.Error{Op: db.OpInsertQueryLog, Err: err}
	}
	return nil
}
