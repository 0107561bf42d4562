package content

import (
	"fmt"

	"github.com/kailas-cloud/unisearch/internal/db"
	domcontent "github.com/kailas-cloud/unisearch/internal/domain/content"
)

// rowToEntry maps a storage row to a domain entry. A row whose type or
// target reference is unusable is rejected; other malformed columns are
// normalized by the domain layer.
func rowToEntry(row *db.ContentRow) (domcontent.Entry, error) {
	kind, ok := domcontent.ParseKind(row.Type)
	if !ok {
		return domcontent.Entry{}, fmt.Errorf("entry %s: unknown type %q", row.ID, row.Type)
	}
	ref, ok := domcontent.NewRef(kind, row.TargetID)
	if !ok {
		return domcontent.Entry{}, fmt.Errorf("entry %s: missing %s reference", row.ID, kind)
	}

	f := domcontent.Fields{
		ID:          row.ID,
		Ref:         ref,
		Link:        row.Link,
		Title:       row.Title,
		Description: row.Description,
		Tags:        row.Tags,
		Keywords:    row.Keywords,
		Grades: domcontent.Grades{
			Trust:     domcontent.Grade(row.TrustGrade),
			Relevance: domcontent.Grade(row.RelevanceGrade),
			Accuracy:  domcontent.Grade(row.AccuracyGrade),
		},
		Engagement: domcontent.Engagement{
			Views:       row.ViewCount,
			Likes:       row.LikeCount,
			Impressions: row.ImpressionCount,
			Clicks:      row.ClickCount,
			Comments:    row.CommentCount,
			Reports:     row.ReportCount,
		},
		Quality: domcontent.Quality{
			ContentLength:    row.ContentLength,
			ReadabilityScore: row.ReadabilityScore,
		},
		CreatedAt: row.CreatedAt,
		Hidden:    row.Hidden,
		DeletedAt: row.DeletedAt,
	}
	if row.LastActive != nil {
		f.LastActive = *row.LastActive
	}
	return domcontent.Reconstruct(f), nil
}
