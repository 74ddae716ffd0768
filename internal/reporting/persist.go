package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/boemer00/cooper-video-analysis/internal/domain/models"
)

// WriteResultJSON saves the numeric analysis result next to the plots
// so the output directory is self-contained.
func WriteResultJSON(result *models.AnalysisResult, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(outputDir, "analysis_result.json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", err
	}
	return path, nil
}
