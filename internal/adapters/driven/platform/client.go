// Package platform provides the GraphQL HTTP client for the Lattice API.
// It implements driven.PlatformClient: every method executes exactly one
// remote operation, with no retries and no caching. Clients are short
// lived; the MCP adapter constructs one per request through Factory.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.PlatformClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultAPIURL  = "https://api.lattice.dev"
	DefaultTimeout = 60 * time.Second

	// requestRate is the proactive client-side throttle (requests/sec).
	requestRate = 10
)

// Config holds the deployment credentials and endpoint for the Lattice API.
type Config struct {
	// OrganizationID identifies the tenant (required).
	OrganizationID string

	// EnvironmentID identifies the environment within the tenant (required).
	EnvironmentID string

	// JWTSecret signs the per-call bearer token (required).
	JWTSecret string

	// APIURL is the API base URL (default: https://api.lattice.dev).
	APIURL string

	// Timeout is the HTTP request timeout (default: 60s).
	Timeout time.Duration
}

// Validate checks that the required credential triple is present.
func (c Config) Validate() error {
	if c.OrganizationID == "" {
		return fmt.Errorf("platform: organization id is required")
	}
	if c.EnvironmentID == "" {
		return fmt.Errorf("platform: environment id is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("platform: JWT secret is required")
	}
	return nil
}

// APIError is a rejection from the Lattice API. Message carries the remote
// message verbatim; tool handlers surface it to the caller unchanged.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// Client executes GraphQL operations against the Lattice API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	tokens     oauth2.TokenSource
	limiter    *rate.Limiter
}

// NewClient creates a client from validated config.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClient(cfg), nil
}

func newClient(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	source := &jwtTokenSource{
		organizationID: cfg.OrganizationID,
		environmentID:  cfg.EnvironmentID,
		secret:         []byte(cfg.JWTSecret),
		ttl:            tokenTTL,
		now:            time.Now,
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiURL:     cfg.APIURL,
		tokens:     oauth2.ReuseTokenSource(nil, source),
		limiter:    rate.NewLimiter(rate.Limit(requestRate), 1),
	}
}

// graphqlRequest is the wire shape of one GraphQL call.
type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the wire shape of one GraphQL reply.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// execute performs one GraphQL operation and decodes the data payload
// into out (when non-nil).
func (c *Client) execute(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	body, err := json.Marshal(graphqlRequest{
		Query:         query,
		OperationName: operation,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("X-Correlation-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var reply graphqlResponse
	if err := json.Unmarshal(raw, &reply); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{
				Message:    fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode),
				StatusCode: resp.StatusCode,
			}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if len(reply.Errors) > 0 {
		return &APIError{Message: reply.Errors[0].Message, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{
			Message:    fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	if out != nil {
		if err := json.Unmarshal(reply.Data, out); err != nil {
			return fmt.Errorf("decode %s data: %w", operation, err)
		}
	}
	return nil
}
