package platform

import (
	"context"

	"github.com/custodia-labs/lattice-mcp/internal/core/domain"
)

const getProjectQuery = `query GetProject {
  project { id name region creationDate }
}`

const lookupCreditsQuery = `query LookupCredits($duration: TimeSpan!) {
  lookupCredits(duration: $duration) {
    credits storageRatio embeddingRatio completionRatio
  }
}`

const lookupUsageQuery = `query LookupUsage($duration: TimeSpan!) {
  lookupUsage(duration: $duration) {
    promptTokens completionTokens embeddingTokens
  }
}`

const queryWorkflowsQuery = `query QueryWorkflows($filter: WorkflowFilter) {
  workflows(filter: $filter) {
    results { id name }
  }
}`

const getWorkflowQuery = `query GetWorkflow($id: ID!) {
  workflow(id: $id) { id name }
}`

const querySpecificationsQuery = `query QuerySpecifications($filter: SpecificationFilter) {
  specifications(filter: $filter) {
    results { id name serviceType }
  }
}`

const getSpecificationQuery = `query GetSpecification($id: ID!) {
  specification(id: $id) { id name serviceType }
}`

// GetProject fetches the tenant's singleton project record.
func (c *Client) GetProject(ctx context.Context) (*domain.Project, error) {
	var out struct {
		Project *struct {
			ID           string `json:"id"`
			Name         string `json:"name"`
			Region       string `json:"region"`
			CreationDate string `json:"creationDate"`
		} `json:"project"`
	}
	if err := c.execute(ctx, "GetProject", getProjectQuery, nil, &out); err != nil {
		return nil, err
	}
	if out.Project == nil {
		return nil, domain.ErrNotFound
	}
	return &domain.Project{
		ID:           out.Project.ID,
		Name:         out.Project.Name,
		Region:       out.Project.Region,
		CreationDate: parseDate(out.Project.CreationDate),
	}, nil
}

// LookupCredits reports credit consumption over the trailing ISO-8601
// duration, e.g. "P1D".
func (c *Client) LookupCredits(ctx context.Context, duration string) (*domain.Credits, error) {
	var out struct {
		LookupCredits struct {
			Credits         float64 `json:"credits"`
			StorageRatio    float64 `json:"storageRatio"`
			EmbeddingRatio  float64 `json:"embeddingRatio"`
			CompletionRatio float64 `json:"completionRatio"`
		} `json:"lookupCredits"`
	}
	if err := c.execute(ctx, "LookupCredits", lookupCreditsQuery, map[string]any{"duration": duration}, &out); err != nil {
		return nil, err
	}
	return &domain.Credits{
		Credits:    out.LookupCredits.Credits,
		StorageGB:  out.LookupCredits.StorageRatio,
		Embeddings: out.LookupCredits.EmbeddingRatio,
		Completion: out.LookupCredits.CompletionRatio,
	}, nil
}

// LookupUsage reports token consumption over the trailing ISO-8601
// duration, e.g. "P1D".
func (c *Client) LookupUsage(ctx context.Context, duration string) (*domain.TokenUsage, error) {
	var out struct {
		LookupUsage struct {
			PromptTokens     int `json:"promptTokens"`
			CompletionTokens int `json:"completionTokens"`
			EmbeddingTokens  int `json:"embeddingTokens"`
		} `json:"lookupUsage"`
	}
	if err := c.execute(ctx, "LookupUsage", lookupUsageQuery, map[string]any{"duration": duration}, &out); err != nil {
		return nil, err
	}
	return &domain.TokenUsage{
		PromptTokens:     out.LookupUsage.PromptTokens,
		CompletionTokens: out.LookupUsage.CompletionTokens,
		EmbeddingTokens:  out.LookupUsage.EmbeddingTokens,
	}, nil
}

// QueryWorkflows lists the tenant's workflow presets.
func (c *Client) QueryWorkflows(ctx context.Context, limit int) ([]domain.Workflow, error) {
	vars := map[string]any{}
	if limit > 0 {
		vars["filter"] = map[string]any{"limit": limit}
	}

	var out struct {
		Workflows struct {
			Results []refWire `json:"results"`
		} `json:"workflows"`
	}
	if err := c.execute(ctx, "QueryWorkflows", queryWorkflowsQuery, vars, &out); err != nil {
		return nil, err
	}

	results := make([]domain.Workflow, 0, len(out.Workflows.Results))
	for _, w := range out.Workflows.Results {
		results = append(results, domain.Workflow(w))
	}
	return results, nil
}

// GetWorkflow fetches one workflow preset by id.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*domain.Workflow, error) {
	var out struct {
		Workflow *refWire `json:"workflow"`
	}
	if err := c.execute(ctx, "GetWorkflow", getWorkflowQuery, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.Workflow == nil {
		return nil, domain.ErrNotFound
	}
	return &domain.Workflow{ID: out.Workflow.ID, Name: out.Workflow.Name}, nil
}

// QuerySpecifications lists the tenant's model specification presets.
func (c *Client) QuerySpecifications(ctx context.Context, limit int) ([]domain.Specification, error) {
	vars := map[string]any{}
	if limit > 0 {
		vars["filter"] = map[string]any{"limit": limit}
	}

	var out struct {
		Specifications struct {
			Results []struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				ServiceType string `json:"serviceType"`
			} `json:"results"`
		} `json:"specifications"`
	}
	if err := c.execute(ctx, "QuerySpecifications", querySpecificationsQuery, vars, &out); err != nil {
		return nil, err
	}

	results := make([]domain.Specification, 0, len(out.Specifications.Results))
	for _, s := range out.Specifications.Results {
		results = append(results, domain.Specification{
			ID:          s.ID,
			Name:        s.Name,
			ServiceType: s.ServiceType,
		})
	}
	return results, nil
}

// GetSpecification fetches one specification preset by id.
func (c *Client) GetSpecification(ctx context.Context, id string) (*domain.Specification, error) {
	var out struct {
		Specification *struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			ServiceType string `json:"serviceType"`
		} `json:"specification"`
	}
	if err := c.execute(ctx, "GetSpecification", getSpecificationQuery, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	if out.Specification == nil {
		return nil, domain.ErrNotFound
	}
	return &domain.Specification{
		ID:          out.Specification.ID,
		Name:        out.Specification.Name,
		ServiceType: out.Specification.ServiceType,
	}, nil
}
