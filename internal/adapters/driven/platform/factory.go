package platform

import (
	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ClientFactory = (*Factory)(nil)

// Factory builds short-lived clients from a config validated once at
// startup. Each NewClient call returns a fresh client so no token or
// throttle state leaks between requests.
type Factory struct {
	cfg Config
}

// NewFactory validates the config and returns a client factory.
func NewFactory(cfg Config) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Factory{cfg: cfg}, nil
}

// NewClient returns a fresh client for one request.
func (f *Factory) NewClient() driven.PlatformClient {
	return newClient(f.cfg)
}
