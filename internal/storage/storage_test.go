package storage_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openplacard/nft-ingest/internal/storage"
)

// listServer fakes the bucket list endpoint, capturing the request body and
// answering with the given object names
func listServer(t *testing.T, captured *map[string]interface{}, names ...string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/storage/v1/object/list/nft-media", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*captured = body

		files := make([]map[string]interface{}, 0, len(names))
		for _, name := range names {
			files = append(files, map[string]interface{}{"name": name})
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(files))
	}))
}

func TestExistsSearchesByObjectName(t *testing.T) {
	var body map[string]interface{}
	server := listServer(t, &body, "42.png")
	defer server.Close()

	s := storage.NewSupabaseStorage(server.URL, "service-key", "nft-media")

	exists, err := s.Exists(context.Background(), "nft/0xabc/42.png")
	require.NoError(t, err)
	assert.True(t, exists)

	// The lookup must filter on the object name instead of scanning the
	// directory page by page
	assert.Equal(t, "nft/0xabc", body["prefix"])
	assert.Equal(t, "42.png", body["search"])
}

func TestExistsIgnoresSubstringMatches(t *testing.T) {
	// The search filter matches substrings; "142.png" must not count as
	// "42.png"
	var body map[string]interface{}
	server := listServer(t, &body, "142.png", "42.png.bak")
	defer server.Close()

	s := storage.NewSupabaseStorage(server.URL, "service-key", "nft-media")

	exists, err := s.Exists(context.Background(), "nft/0xabc/42.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExistsMissingObject(t *testing.T) {
	var body map[string]interface{}
	server := listServer(t, &body)
	defer server.Close()

	s := storage.NewSupabaseStorage(server.URL, "service-key", "nft-media")

	exists, err := s.Exists(context.Background(), "nft/0xabc/42.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPublicURL(t *testing.T) {
	s := storage.NewSupabaseStorage("https://proj.supabase.co/", "service-key", "nft-media")
	assert.Equal(t,
		"https://proj.supabase.co/storage/v1/object/public/nft-media/nft/0xabc/42.png",
		s.PublicURL("nft/0xabc/42.png"))
	assert.Equal(t, "nft-media", s.Bucket())
}
