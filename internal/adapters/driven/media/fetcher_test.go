package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns response bytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("image-bytes"))
		}))
		defer server.Close()

		data, err := NewFetcher().Fetch(ctx, server.URL)

		require.NoError(t, err)
		assert.Equal(t, []byte("image-bytes"), data)
	})

	t.Run("rejects non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewFetcher().Fetch(ctx, server.URL)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 404")
	})

	t.Run("rejects invalid uri", func(t *testing.T) {
		_, err := NewFetcher().Fetch(ctx, "://not-a-uri")
		assert.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("slow"))
		}))
		defer server.Close()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewFetcher().Fetch(cancelled, server.URL)
		assert.Error(t, err)
	})
}
