package reporting

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

// VizClient posts chart payloads to the visualization sidecar, which
// renders and writes timeline_plot.png and distribution_plot.png into
// the run's output directory.
type VizClient struct {
	baseURL string
	c       *http.Client
}

func NewVizClient(baseURL string) *VizClient {
	return &VizClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		c:       &http.Client{Timeout: 2 * time.Minute},
	}
}

type timelinePlotRequest struct {
	*TimelinePlotData
	OutputDir string `json:"output_dir,omitempty"`
}

type distributionPlotRequest struct {
	*DistributionPlotData
	OutputDir string `json:"output_dir,omitempty"`
}

type plotResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// GenerateTimelinePlot renders the timeline chart and returns the path
// the sidecar wrote it to.
func (v *VizClient) GenerateTimelinePlot(ctx context.Context, data *TimelinePlotData, outputDir string) (string, error) {
	return v.post(ctx, "/generate-timeline", timelinePlotRequest{TimelinePlotData: data, OutputDir: outputDir})
}

// GenerateDistributionPlot renders the averages bar chart and returns
// the written path.
func (v *VizClient) GenerateDistributionPlot(ctx context.Context, data *DistributionPlotData, outputDir string) (string, error) {
	return v.post(ctx, "/generate-distribution", distributionPlotRequest{DistributionPlotData: data, OutputDir: outputDir})
}

func (v *VizClient) post(ctx context.Context, endpoint string, payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("viz marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("viz %s %s: %s", endpoint, resp.Status, strings.TrimSpace(string(body)))
	}

	var out plotResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("viz decode: %w", err)
	}
	return out.Path, nil
}
