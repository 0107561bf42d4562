// Package unisearch embeds the unified search engine in a Go program.
//
// The client ranks servers, resources, wiki pages, posts and collections
// from one PostgreSQL index. Each query is classified by an optional intent
// classifier and expanded through the keyword dictionary before candidates
// are scored and ordered.
//
//	client, err := unisearch.New(ctx,
//	    unisearch.WithPostgres("postgres://localhost/unisearch"),
//	    unisearch.WithOpenAIClassifier(os.Getenv("OPENAI_API_KEY"), "", "gpt-4o-mini"),
//	)
//	defer client.Close()
//
//	resp, err := client.Search(ctx, "야생 서버", unisearch.SortRelevance)
//	for _, r := range resp.Results {
//	    fmt.Println(r.Title, r.Score, r.Breakdown.IntentBonus)
//	}
package unisearch
