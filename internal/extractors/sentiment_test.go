package extractors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentimentClientAnalyzeText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/analyze", r.URL.Path)

		var req sentimentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "great video", req.Text)

		json.NewEncoder(w).Encode(SentimentScores{Positive: 0.92, Negative: 0.08})
	}))
	defer srv.Close()

	client := NewSentimentClient(srv.URL)
	scores, err := client.AnalyzeText(context.Background(), "great video")

	require.NoError(t, err)
	require.InDelta(t, 0.92, scores.Positive, 1e-9)
	require.InDelta(t, 0.08, scores.Negative, 1e-9)
}

func TestSentimentClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewSentimentClient(srv.URL)
	_, err := client.AnalyzeText(context.Background(), "text")

	require.Error(t, err)
	require.Contains(t, err.Error(), "model not loaded")
}
