package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chrisVisazure/StereoPipeline/internal/archive"
	"github.com/chrisVisazure/StereoPipeline/internal/fetcher"
	"github.com/chrisVisazure/StereoPipeline/internal/output"
)

func newIndexCmd() *cobra.Command {
	var job fetcher.Job
	var refetch bool

	cmd := &cobra.Command{
		Use:   "index [OPTIONS] OUTPUT_FOLDER",
		Short: "Fetch and print the frame table without downloading data",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			job.OutputDir = args[0]
			job.AllFrames = true // range flags are irrelevant here
			if err := job.Validate(); err != nil {
				exitError(fmt.Sprintf("Invalid arguments: %v", err))
			}
			client, err := newArchiveClient()
			if err != nil {
				exitError(err.Error())
			}
			if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
				exitError(fmt.Sprintf("Cannot create output folder: %v", err))
			}

			fileType := job.FileType()
			var folderURL string
			if fileType == archive.TypeLidar {
				fileType, folderURL, err = archive.ResolveLidar(client, job.Year, job.Month, job.Day, job.Site)
			} else {
				folderURL, err = archive.FolderURL(job.Year, job.Month, job.Day, job.Site, fileType)
			}
			if err != nil {
				exitError(err.Error())
			}

			htmlPath := filepath.Join(job.OutputDir, string(fileType)+"_index.html")
			csvPath := htmlPath + ".csv"
			if refetch {
				os.Remove(htmlPath)
				os.Remove(csvPath)
			}
			index, err := archive.FetchIndex(client, folderURL, htmlPath, csvPath, fileType)
			if err != nil {
				exitError(fmt.Sprintf("Index fetch failed: %v", err))
			}
			if err := client.SaveCookies(); err != nil {
				output.PrintWarning(fmt.Sprintf("Could not persist session cookies: %v", err))
			}

			first, last, ok := index.Bounds()
			if !ok {
				exitError(fmt.Sprintf("No %s files listed at %s", fileType, folderURL))
			}
			output.PrintHeader(fmt.Sprintf("Frame table for %s", folderURL))
			output.PrintInfo(fmt.Sprintf("  type:   %s", fileType))
			output.PrintInfo(fmt.Sprintf("  files:  %d", len(index.Files)))
			output.PrintInfo(fmt.Sprintf("  frames: %d %s %d", first, output.StyleSymbols["arrow"], last))
			output.PrintDetail(fmt.Sprintf("  table:  %s", csvPath))
		},
	}

	cmd.Flags().IntVar(&job.Year, "year", 0, "Flight year")
	cmd.Flags().IntVar(&job.Month, "month", 0, "Flight month")
	cmd.Flags().IntVar(&job.Day, "day", 0, "Flight day")
	cmd.Flags().StringVar(&job.YYYYMMDD, "yyyymmdd", "", "Specify the year, month, and day in one YYYYMMDD string")
	cmd.Flags().StringVar(&job.Site, "site", "", "Name of the location of the images (AN or GR)")
	cmd.Flags().StringVar(&job.Type, "type", "image", "File type to index (image, ortho, dem, lidar)")
	cmd.Flags().BoolVar(&refetch, "refetch-index", false, "Force refetch of the index file")
	return cmd
}
