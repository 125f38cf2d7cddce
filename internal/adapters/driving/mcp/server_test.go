package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil platform factory returns error", func(t *testing.T) {
		ports := &Ports{Credentials: &mockCredentials{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingPlatform)
	})

	t.Run("nil credential store returns error", func(t *testing.T) {
		ports := &Ports{Platform: &mockFactory{client: &mockClient{}}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Platform:    &mockFactory{client: &mockClient{}},
			Credentials: &mockCredentials{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing platform returns error", func(t *testing.T) {
		ports := &Ports{Credentials: &mockCredentials{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingPlatform)
	})

	t.Run("missing credentials returns error", func(t *testing.T) {
		ports := &Ports{Platform: &mockFactory{client: &mockClient{}}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingCredentials)
	})

	t.Run("blob fetcher is optional", func(t *testing.T) {
		ports := &Ports{
			Platform:    &mockFactory{client: &mockClient{}},
			Credentials: &mockCredentials{},
		}
		assert.NoError(t, ports.Validate())
	})
}
