package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

// MaxBatchSize caps how many files are dispatched per batch, keeping the
// archive happy and the progress output readable.
const MaxBatchSize = 100

// Fetch downloads the plan's missing files, MaxBatchSize at a time with up
// to connections parallel transfers per batch. Failed files are logged and
// counted; rerunning the tool retries them since only missing files are
// planned. In dry-run mode the URLs are printed instead. progress, when
// non-nil, is called after every finished file.
func Fetch(client *utils.Client, plan *Plan, connections int, dryRun bool, progress func(done, total int)) error {
	logger := log.With().Str("op", "fetcher/download").Logger()
	if len(plan.Missing) == 0 {
		logger.Info().Msg("All requested files already present")
		return nil
	}
	if connections < 1 {
		connections = 1
	}

	tempDir := filepath.Join(plan.OutputDir, utils.TempDirName)
	if !dryRun {
		if err := os.MkdirAll(tempDir, 0755); err != nil {
			return fmt.Errorf("error creating temp directory: %v", err)
		}
	}

	var failed, done int64
	total := len(plan.Missing)
	for offset := 0; offset < len(plan.Missing); offset += MaxBatchSize {
		end := offset + MaxBatchSize
		if end > len(plan.Missing) {
			end = len(plan.Missing)
		}
		batch := plan.Missing[offset:end]
		logger.Info().Msgf("Fetching batch of %d file(s) into %s", len(batch), plan.OutputDir)

		if dryRun {
			for _, item := range batch {
				fmt.Println(item.URL)
			}
			continue
		}

		var eg errgroup.Group
		eg.SetLimit(connections)
		for _, item := range batch {
			item := item
			eg.Go(func() error {
				if err := downloadFile(client, item, tempDir); err != nil {
					logger.Error().Err(err).Msgf("Failed to fetch %s", item.Name)
					atomic.AddInt64(&failed, 1)
				}
				if progress != nil {
					progress(int(atomic.AddInt64(&done, 1)), total)
				}
				return nil
			})
		}
		eg.Wait()
	}

	if !dryRun {
		os.Remove(tempDir) // only removed when empty
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to download, rerun to retry", failed)
	}
	return nil
}

func downloadFile(client *utils.Client, item Item, tempDir string) error {
	tempPath := filepath.Join(tempDir, item.Name+".part")

	req, err := http.NewRequest("GET", item.URL, nil)
	if err != nil {
		return fmt.Errorf("error creating GET request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error executing GET request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, item.URL)
	}

	outFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error creating output file: %v", err)
	}
	start := time.Now()
	buffer := make([]byte, utils.DefaultBufferSize)
	written, err := io.CopyBuffer(outFile, resp.Body, buffer)
	if err != nil {
		outFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("error writing to output file: %v", err)
	}
	if err := outFile.Sync(); err != nil {
		outFile.Close()
		return fmt.Errorf("error syncing output file: %v", err)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("error closing output file: %v", err)
	}
	if err := os.Rename(tempPath, item.OutputPath); err != nil {
		return fmt.Errorf("error renaming (finalizing) output file: %v", err)
	}
	log.Debug().Str("op", "fetcher/download").Msgf("Fetched %s (%s, %s)",
		item.Name, utils.FormatBytes(uint64(written)), utils.FormatSpeed(written, time.Since(start).Seconds()))
	return nil
}

// Verify checks that every file the plan requires exists non-empty and that
// imagery decodes. Invalid images are wiped so a rerun refetches them.
func Verify(plan *Plan) error {
	logger := log.With().Str("op", "fetcher/verify").Logger()
	for _, outputPath := range plan.Required {
		if !utils.FileExists(outputPath) {
			return fmt.Errorf("missing required file: %s", outputPath)
		}
		if HasImageExtension(outputPath) {
			if !IsValidImage(outputPath) {
				os.Remove(outputPath)
				return fmt.Errorf("found an invalid image, wiped it, rerun fetching: %s", outputPath)
			}
			logger.Debug().Msgf("Found valid image: %s", outputPath)
		}
	}
	return nil
}
