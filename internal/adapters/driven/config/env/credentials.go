package env

import (
	"os"

	"github.com/custodia-labs/lattice-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/lattice-mcp/internal/logger"
)

// Ensure Credentials implements the interface.
var _ driven.CredentialStore = (*Credentials)(nil)

// Platform credential variable names.
const (
	EnvOrganizationID = "LATTICE_ORGANIZATION_ID"
	EnvEnvironmentID  = "LATTICE_ENVIRONMENT_ID"
	EnvJWTSecret      = "LATTICE_JWT_SECRET"
)

// Credentials reads deployment credentials from the process environment.
// lookup and exit are injectable so tests can substitute both.
type Credentials struct {
	lookup func(string) (string, bool)
	exit   func(int)
}

// New returns a store backed by the process environment.
func New() *Credentials {
	return &Credentials{lookup: os.LookupEnv, exit: os.Exit}
}

// Lookup returns the named credential, reporting whether it is set.
func (c *Credentials) Lookup(name string) (string, bool) {
	value, ok := c.lookup(name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Require returns the named credentials, terminating the process if any
// is missing.
func (c *Credentials) Require(names ...string) map[string]string {
	values := make(map[string]string, len(names))
	for _, name := range names {
		value, ok := c.Lookup(name)
		if !ok {
			c.fatal(name)
			return nil
		}
		values[name] = value
	}
	return values
}

// RequireOAuth returns the {prefix}_CLIENT_ID / _CLIENT_SECRET /
// _REFRESH_TOKEN triple, terminating the process if any is missing.
func (c *Credentials) RequireOAuth(prefix string) driven.OAuthCredentials {
	values := c.Require(
		prefix+"_CLIENT_ID",
		prefix+"_CLIENT_SECRET",
		prefix+"_REFRESH_TOKEN",
	)
	if values == nil {
		return driven.OAuthCredentials{}
	}
	return driven.OAuthCredentials{
		ClientID:     values[prefix+"_CLIENT_ID"],
		ClientSecret: values[prefix+"_CLIENT_SECRET"],
		RefreshToken: values[prefix+"_REFRESH_TOKEN"],
	}
}

// Platform returns the API credential triple, terminating the process if
// any part is missing.
func (c *Credentials) Platform() (organizationID, environmentID, jwtSecret string) {
	values := c.Require(EnvOrganizationID, EnvEnvironmentID, EnvJWTSecret)
	if values == nil {
		return "", "", ""
	}
	return values[EnvOrganizationID], values[EnvEnvironmentID], values[EnvJWTSecret]
}

func (c *Credentials) fatal(name string) {
	logger.Error("missing required credential: %s must be set", name)
	c.exit(1)
}
