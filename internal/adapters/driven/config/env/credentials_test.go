package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore backs the store with a map and records exit calls.
func testStore(values map[string]string) (*Credentials, *int) {
	exitCode := -1
	store := &Credentials{
		lookup: func(name string) (string, bool) {
			v, ok := values[name]
			return v, ok
		},
		exit: func(code int) { exitCode = code },
	}
	return store, &exitCode
}

func TestCredentials_Lookup(t *testing.T) {
	t.Run("returns set credential", func(t *testing.T) {
		store, _ := testStore(map[string]string{"SLACK_BOT_TOKEN": "xoxb-1"})

		value, ok := store.Lookup("SLACK_BOT_TOKEN")

		assert.True(t, ok)
		assert.Equal(t, "xoxb-1", value)
	})

	t.Run("reports unset credential", func(t *testing.T) {
		store, _ := testStore(nil)

		_, ok := store.Lookup("SLACK_BOT_TOKEN")

		assert.False(t, ok)
	})

	t.Run("treats empty value as unset", func(t *testing.T) {
		store, _ := testStore(map[string]string{"SLACK_BOT_TOKEN": ""})

		_, ok := store.Lookup("SLACK_BOT_TOKEN")

		assert.False(t, ok)
	})
}

func TestCredentials_Require(t *testing.T) {
	t.Run("returns all named credentials", func(t *testing.T) {
		store, exitCode := testStore(map[string]string{
			"JIRA_EMAIL": "dev@example.com",
			"JIRA_TOKEN": "jira-1",
		})

		values := store.Require("JIRA_EMAIL", "JIRA_TOKEN")

		assert.Equal(t, -1, *exitCode)
		assert.Equal(t, "dev@example.com", values["JIRA_EMAIL"])
		assert.Equal(t, "jira-1", values["JIRA_TOKEN"])
	})

	t.Run("terminates when one is missing", func(t *testing.T) {
		store, exitCode := testStore(map[string]string{"JIRA_EMAIL": "dev@example.com"})

		store.Require("JIRA_EMAIL", "JIRA_TOKEN")

		assert.Equal(t, 1, *exitCode)
	})
}

func TestCredentials_RequireOAuth(t *testing.T) {
	t.Run("assembles the triple from prefixed names", func(t *testing.T) {
		store, exitCode := testStore(map[string]string{
			"GOOGLE_EMAIL_CLIENT_ID":     "id",
			"GOOGLE_EMAIL_CLIENT_SECRET": "sec",
			"GOOGLE_EMAIL_REFRESH_TOKEN": "ref",
		})

		creds := store.RequireOAuth("GOOGLE_EMAIL")

		assert.Equal(t, -1, *exitCode)
		assert.Equal(t, "id", creds.ClientID)
		assert.Equal(t, "sec", creds.ClientSecret)
		assert.Equal(t, "ref", creds.RefreshToken)
	})

	t.Run("terminates when part of the triple is missing", func(t *testing.T) {
		store, exitCode := testStore(map[string]string{
			"DROPBOX_CLIENT_ID": "id",
		})

		store.RequireOAuth("DROPBOX")

		assert.Equal(t, 1, *exitCode)
	})
}

func TestCredentials_Platform(t *testing.T) {
	t.Run("returns the api triple", func(t *testing.T) {
		store, exitCode := testStore(map[string]string{
			EnvOrganizationID: "org-1",
			EnvEnvironmentID:  "env-1",
			EnvJWTSecret:      "secret",
		})

		org, envID, secret := store.Platform()

		assert.Equal(t, -1, *exitCode)
		assert.Equal(t, "org-1", org)
		assert.Equal(t, "env-1", envID)
		assert.Equal(t, "secret", secret)
	})

	t.Run("terminates on incomplete triple", func(t *testing.T) {
		store, exitCode := testStore(map[string]string{EnvOrganizationID: "org-1"})

		store.Platform()

		assert.Equal(t, 1, *exitCode)
	})
}

func TestNew(t *testing.T) {
	t.Run("reads from the process environment", func(t *testing.T) {
		t.Setenv("LATTICE_TEST_CREDENTIAL", "value")

		value, ok := New().Lookup("LATTICE_TEST_CREDENTIAL")

		require.True(t, ok)
		assert.Equal(t, "value", value)
	})
}
