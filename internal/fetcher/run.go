package fetcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrisVisazure/StereoPipeline/internal/archive"
	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

// Run executes a validated job end to end: resolve the folder URL, obtain
// the frame table, plan the range, download what is missing and verify the
// result when strictness is asked for.
func Run(client *utils.Client, job *Job, connections int) error {
	logger := utils.GetLogger("fetcher")

	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		return fmt.Errorf("error creating output folder %s: %v", job.OutputDir, err)
	}

	fileType := job.fileType
	var folderURL string
	var err error
	if fileType == archive.TypeLidar {
		fileType, folderURL, err = archive.ResolveLidar(client, job.Year, job.Month, job.Day, job.Site)
		if err != nil {
			// Strict batch runs tolerate flights without lidar coverage.
			if errors.Is(err, archive.ErrNoLidar) && job.RequireAll {
				logger.Warn().Msgf("Skipping flight, %v", err)
				return nil
			}
			return err
		}
		logger.Info().Msgf("Found match with lidar type: %s", fileType)
	} else {
		folderURL, err = archive.FolderURL(job.Year, job.Month, job.Day, job.Site, fileType)
		if err != nil {
			return err
		}
	}
	logger.Debug().Msgf("Fetching from URL: %s", folderURL)

	htmlPath := filepath.Join(job.OutputDir, string(fileType)+"_index.html")
	csvPath := htmlPath + ".csv"
	if job.RefetchIndex {
		os.Remove(htmlPath)
		os.Remove(csvPath)
	}

	var index *archive.FrameIndex
	if utils.FileExists(csvPath) {
		logger.Info().Msgf("Already have the index file %s, keeping it", htmlPath)
		index, err = archive.ReadCSV(csvPath, fileType)
	} else {
		index, err = archive.FetchIndex(client, folderURL, htmlPath, csvPath, fileType)
	}
	if err != nil {
		return err
	}

	first, last, ok := index.Bounds()
	if !ok {
		return fmt.Errorf("index for %s lists no %s files", folderURL, fileType)
	}
	start, stop := job.StartFrame, job.StopFrame
	if job.AllFrames {
		start, stop = first, last
	}

	plan := BuildPlan(index, folderURL, job.OutputDir, start, stop, job.RequireAll)
	logger.Info().Msgf("Frames %d to %d: %d file(s) required, %d missing",
		start, stop, len(plan.Required), len(plan.Missing))

	fetchErr := Fetch(client, plan, connections, job.DryRun, job.Progress)
	if err := client.SaveCookies(); err != nil {
		logger.Warn().Msgf("Could not persist session cookies: %v", err)
	}
	if fetchErr != nil {
		return fetchErr
	}
	if job.RequireAll && !job.DryRun {
		return Verify(plan)
	}
	return nil
}
