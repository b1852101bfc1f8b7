package fetcher

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/chrisVisazure/StereoPipeline/internal/archive"
	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

// Item is one file to retrieve.
type Item struct {
	URL        string
	Name       string
	OutputPath string
}

// Plan is the reconciled download set for one frame range: everything the
// range requires and the subset not yet on disk.
type Plan struct {
	FolderURL string
	OutputDir string
	Type      archive.FileType
	Required  []string
	Missing   []Item
}

// BuildPlan selects frames in [start, stop] from the index and works out
// which files still need fetching. Ortho and lidar products bring an .xml
// sidecar per file. In strict mode an existing but undecodable image is
// wiped up front so it gets refetched.
func BuildPlan(index *archive.FrameIndex, folderURL, outputDir string, start, stop int, requireAll bool) *Plan {
	logger := log.With().Str("op", "fetcher/plan").Logger()
	plan := &Plan{
		FolderURL: folderURL,
		OutputDir: outputDir,
		Type:      index.Type,
	}

	if _, ok := index.Files[start]; !ok {
		logger.Warn().Msgf("Frame %d is not found in this flight", start)
	}
	if _, ok := index.Files[stop]; !ok {
		logger.Warn().Msgf("Frame %d is not found in this flight", stop)
	}

	for _, frame := range index.Frames() {
		if frame < start || frame > stop {
			continue
		}
		names := []string{index.Files[frame]}
		if index.Type.HasSidecar() {
			names = append(names, index.Files[frame]+".xml")
		}
		for _, name := range names {
			outputPath := filepath.Join(outputDir, name)
			plan.Required = append(plan.Required, outputPath)

			// A killed transfer can leave a complete-looking but corrupt
			// image behind.
			if requireAll && HasImageExtension(outputPath) {
				if utils.FileExists(outputPath) && !IsValidImage(outputPath) {
					os.Remove(outputPath)
					logger.Info().Msgf("Wiped invalid image: %s", outputPath)
				}
			}
			if !utils.FileExists(outputPath) {
				plan.Missing = append(plan.Missing, Item{
					URL:        folderURL + "/" + name,
					Name:       name,
					OutputPath: outputPath,
				})
			}
		}
	}
	return plan
}
