package notes

import (
	"context"
	"fmt"
	"strings"

	"notebook/internal/gql"
	genqlientgraphql "github.com/Khan/genqlient/graphql"
)

// GraphQLStore reads notes from a remote GraphQL API. It does not implement
// Writer.
type GraphQLStore struct {
	client genqlientgraphql.Client
}

func NewGraphQLStore(client genqlientgraphql.Client) *GraphQLStore {
	return &GraphQLStore{client: client}
}

func (s *GraphQLStore) GetNote(ctx context.Context, id string) (*Note, error) {
	response, err := gql.NoteByID(ctx, s.client, id)
	if err != nil {
		return nil, fmt.Errorf("fetch note %q: %w", id, err)
	}
	if response == nil || response.Note == nil {
		return nil, nil
	}

	doc := response.Note
	return &Note{
		ID:        doc.Id,
		Title:     strOr(doc.Title, ""),
		Content:   strOr(doc.Content, ""),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}, nil
}

func (s *GraphQLStore) ListNotes(ctx context.Context, query string) ([]Summary, error) {
	response, err := gql.ListNotes(ctx, s.client, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("fetch notes: %w", err)
	}
	if response == nil {
		return []Summary{}, nil
	}

	items := make([]Summary, 0, len(response.Notes))
	for _, doc := range response.Notes {
		item := Summary{
			ID:        doc.Id,
			Title:     strOr(doc.Title, ""),
			Content:   strOr(doc.Content, ""),
			UpdatedAt: doc.UpdatedAt.UTC(),
		}
		if !matchesQuery(item.Title, query) {
			continue
		}
		items = append(items, item)
	}

	sortSummaries(items)
	return items, nil
}

func (s *GraphQLStore) Close() error {
	return nil
}

func strOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
