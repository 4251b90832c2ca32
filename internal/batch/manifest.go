package batch

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// ManifestEntry represents one rendered entry in the output manifest.
type ManifestEntry struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// WriteManifest writes manifest.json listing the entries that rendered.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success() {
			continue
		}
		entries = append(entries, ManifestEntry{ID: r.ID, Name: r.Name, Images: r.Images})
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "batch: encode manifest")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "batch: write %s", path)
	}
	return nil
}
