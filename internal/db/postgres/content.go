package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kailas-cloud/unisearch/internal/db"
)

const contentColumns = `id, type,
	COALESCE(server_id, resource_id, wiki_id, post_id, collection_id) AS target_id,
	link, title, description, tags, keywords,
	trust_grade, relevance_grade, accuracy_grade,
	view_count, like_count, impression_count, click_count, comment_count, report_count,
	content_length, readability_score, created_at, last_active, hidden, deleted_at`

// Positional parameters: $1 raw query, $2 fuzzy floor, $3 ILIKE patterns, $4 limit.
const contentMatch = `hidden = FALSE AND deleted_at IS NULL AND (
	title % $1
	OR similarity(title, $1) > $2
	OR title ILIKE ANY($3)
	OR description ILIKE ANY($3)
	OR EXISTS (SELECT 1 FROM unnest(tags) AS t(tag) WHERE t.tag ILIKE ANY($3))
	OR EXISTS (SELECT 1 FROM unnest(keywords) AS k(kw) WHERE k.kw ILIKE ANY($3))
)`

const fuzzyScoreExpr = `CASE WHEN title % $1 THEN 1.0::float8 ELSE similarity(title, $1)::float8 END`

// renderRetrieval renders q as a parameterized statement.
func renderRetrieval(q *db.RetrievalQuery) (string, []any) {
	var order []string
	switch q.OrderBy {
	case db.SortViewCount:
		order = append(order, "view_count DESC")
	case db.SortCreatedAt:
		order = append(order, "created_at DESC")
	}
	order = append(order, "fuzzy_score DESC", "view_count DESC")

	sql := fmt.Sprintf("SELECT %s,\n\t%s AS fuzzy_score\nFROM search_content_entries\nWHERE %s\nORDER BY %s\nLIMIT $4",
		contentColumns, fuzzyScoreExpr, contentMatch, strings.Join(order, ", "))

	return sql, []any{q.RawQuery, q.FuzzyFloor, q.Patterns(), q.Limit}
}

// SearchContent runs candidate retrieval over the content index.
func (s *Store) SearchContent(ctx context.Context, q *db.RetrievalQuery) ([]db.ContentRow, error) {
	if err := q.Validate(); err != nil {
		return nil, &db.Error{Op: db.OpSearchContent, Err: err}
	}

	sql, args := renderRetrieval(q)
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearchContent, Err: err}
	}

	out, err := pgx.CollectRows(rows, scanContentRow)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearchContent, Err: err}
	}
	if out == nil {
		out = []db.ContentRow{}
	}
	return out, nil
}

func scanContentRow(row pgx.CollectableRow) (db.ContentRow, error) {
	var r db.ContentRow
	err := row.Scan(
		&r.ID, &r.Type, &r.TargetID,
		&r.Link, &r.Title, &r.Description, &r.Tags, &r.Keywords,
		&r.TrustGrade, &r.RelevanceGrade, &r.AccuracyGrade,
		&r.ViewCount, &r.LikeCount, &r.ImpressionCount, &r.ClickCount, &r.CommentCount, &r.ReportCount,
		&r.ContentLength, &r.ReadabilityScore, &r.CreatedAt, &r.LastActive, &r.Hidden, &r.DeletedAt,
		&r.FuzzyScore,
	)
	return r, err
}
