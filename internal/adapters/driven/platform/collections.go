package platform

import (
	"context"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
)

const queryCollectionsQuery = `query QueryCollections($filter: CollectionFilter) {
  collections(filter: $filter) {
    results { id name contents { id name } }
  }
}`

const getCollectionQuery = `query GetCollection($id: ID!) {
  collection(id: $id) { id name contents { id name } }
}`

const createCollectionMutation = `mutation CreateCollection($name: String!, $contents: [EntityReferenceInput!]) {
  createCollection(collection: { name: $name, contents: $contents }) { id }
}`

const addContentsToCollectionMutation = `mutation AddContentsToCollection($id: ID!, $contents: [EntityReferenceInput!]!) {
  addContentsToCollections(contents: $contents, collections: [{ id: $id }]) { id }
}`

const removeContentsFromCollectionMutation = `mutation RemoveContentsFromCollection($id: ID!, $contents: [EntityReferenceInput!]!) {
  removeContentsFromCollection(id: $id, contents: $contents) { id }
}`

const deleteCollectionMutation = `mutation DeleteCollection($id: ID!) {
  deleteCollection(id: $id) { id }
}`

type collectionWire struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Contents []refWire `json:"contents"`
}

func (w *collectionWire) toDomain() *domain.Collection {
	if w == nil {
		return nil
	}
	c := &domain.Collection{ID: w.ID, Name: w.Name}
	for _, ref := range w.Contents {
		c.Contents = append(c.Contents, domain.ContentRef(ref))
	}
	return c
}

// QueryCollections lists collections, optionally filtered by name.
func (c *Client) QueryCollections(ctx context.Context, name string, limit int) ([]domain.Collection, error) {
	filter := map[string]any{}
	if name != "" {
		filter["name"] = name
	}
	if limit > 0 {
		filter["limit"] = limit
	}

	vars := map[string]any{}
	if len(filter) > 0 {
		vars["filter"] = filter
	}

	var out struct {
		Collections struct {
			Results []collectionWire `json:"results"`
		} `json:"collections"`
	}
	if err := c.execute(ctx, "QueryCollections", queryCollectionsQuery, vars, &out); err != nil {
		return nil, err
	}

	results := make([]domain.Collection, 0, len(out.Collections.Results))
	for i := range out.Collections.Results {
		results = append(results, *out.Collections.Results[i].toDomain())
	}
	return results, nil
}

// GetCollection fetches one collection with its member references.
func (c *Client) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	var out struct {
		Collection *collectionWire `json:"collection"`
	}
	if err := c.execute(ctx, "GetCollection", getCollectionQuery, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.Collection == nil {
		return nil, domain.ErrNotFound
	}
	return out.Collection.toDomain(), nil
}

// CreateCollection creates a named collection, optionally seeded with
// contents, and returns its id.
func (c *Client) CreateCollection(ctx context.Context, name string, contents []string) (string, error) {
	vars := map[string]any{"name": name}
	if len(contents) > 0 {
		vars["contents"] = entityRefs(contents)
	}

	var out struct {
		CreateCollection idResult `json:"createCollection"`
	}
	if err := c.execute(ctx, "CreateCollection", createCollectionMutation, vars, &out); err != nil {
		return "", err
	}
	return out.CreateCollection.ID, nil
}

// AddContentsToCollection adds content references to a collection.
func (c *Client) AddContentsToCollection(ctx context.Context, id string, contents []string) error {
	vars := map[string]any{"id": id, "contents": entityRefs(contents)}
	return c.execute(ctx, "AddContentsToCollection", addContentsToCollectionMutation, vars, nil)
}

// RemoveContentsFromCollection removes content references from a collection.
func (c *Client) RemoveContentsFromCollection(ctx context.Context, id string, contents []string) error {
	vars := map[string]any{"id": id, "contents": entityRefs(contents)}
	return c.execute(ctx, "RemoveContentsFromCollection", removeContentsFromCollectionMutation, vars, nil)
}

// DeleteCollection removes a collection. Member contents are unaffected.
func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	return c.execute(ctx, "DeleteCollection", deleteCollectionMutation, map[string]any{"id": id}, nil)
}
