package extractors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SentimentClient talks to the text-sentiment sidecar, which scores a
// span of text as a positive/negative probability pair.
type SentimentClient struct {
	baseURL string
	c       *http.Client
}

type sentimentRequest struct {
	Text string `json:"text"`
}

// SentimentScores is the sidecar's response. Both fields are expected
// to be in [0,1]; the service normalizes them before responding.
type SentimentScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
}

func NewSentimentClient(baseURL string) *SentimentClient {
	return &SentimentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		c:       &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *SentimentClient) AnalyzeText(ctx context.Context, text string) (*SentimentScores, error) {
	b, err := json.Marshal(sentimentRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("sentiment marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/analyze", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxErr = 4096
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErr))
		return nil, fmt.Errorf("sentiment %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out SentimentScores
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("sentiment decode: %w", err)
	}
	return &out, nil
}
