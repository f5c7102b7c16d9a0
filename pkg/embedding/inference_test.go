package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewHTTPProvider(&Config{
		Endpoint:     server.URL,
		APIKey:       "test-key",
		Model:        "test-model",
		Dimensions:   3,
		HTTPTimeoutS: 5,
	})
	require.NoError(t, err)
	return provider
}

func TestEmbedBatch(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "test-model", req.Model)
		require.Equal(t, []string{"alpha", "beta"}, req.Input)
		require.Equal(t, 3, req.Dimensions)

		// Out of order on purpose; index field decides placement.
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float64{4, 5, 6}},
				{"index": 0, "embedding": []float64{1, 2, 3}},
			},
		})
	})

	vectors, err := provider.EmbedBatch(context.Background(), []string{"alpha", "beta"})
	require.NoError(t, err)
	require.Equal(t, [][]float32{{1, 2, 3}, {4, 5, 6}}, vectors)
}

func TestEmbedSingle(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float64{0.5, -0.5, 1}}},
		})
	})

	vector, err := provider.Embed(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, []float32{0.5, -0.5, 1}, vector)
}

func TestEmbedBatchDimensionMismatch(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float64{1, 2}}},
		})
	})

	_, err := provider.EmbedBatch(context.Background(), []string{"hello"})
	require.ErrorContains(t, err, "dimension mismatch")
}

func TestEmbedBatchUpstreamError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := provider.EmbedBatch(context.Background(), []string{"hello"})
	require.ErrorContains(t, err, "429")
}

func TestEmbedBatchCountMismatch(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float64{1, 2, 3}}},
		})
	})

	_, err := provider.EmbedBatch(context.Background(), []string{"a", "b"})
	require.ErrorContains(t, err, "returned 1 vectors for 2 texts")
}

func TestEmbedBatchDuplicateIndex(t *testing.T) {
	// Two items with the same index satisfy the count check but would leave
	// the other slot nil.
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float64{1, 2, 3}},
				{"index": 0, "embedding": []float64{4, 5, 6}},
			},
		})
	})

	_, err := provider.EmbedBatch(context.Background(), []string{"a", "b"})
	require.ErrorContains(t, err, "duplicate index 0")
}

func TestEmbedBatchRejectsEmptyInput(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := provider.EmbedBatch(context.Background(), nil)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	require.Error(t, (&Config{APIKey: "k", Dimensions: 3}).Validate())
	require.Error(t, (&Config{Endpoint: "e", Dimensions: 3}).Validate())
	require.Error(t, (&Config{Endpoint: "e", APIKey: "k"}).Validate())
	require.NoError(t, (&Config{Endpoint: "e", APIKey: "k", Dimensions: 3}).Validate())
}
