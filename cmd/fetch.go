package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisVisazure/StereoPipeline/internal/fetcher"
	"github.com/chrisVisazure/StereoPipeline/internal/output"
)

func newFetchCmd() *cobra.Command {
	var job fetcher.Job

	cmd := &cobra.Command{
		Use:   "fetch [OPTIONS] OUTPUT_FOLDER",
		Short: "Download a frame range for one flight",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			job.OutputDir = args[0]
			if err := job.Validate(); err != nil {
				exitError(fmt.Sprintf("Invalid arguments: %v", err))
			}
			client, err := newArchiveClient()
			if err != nil {
				exitError(err.Error())
			}
			if err := fetcher.Run(client, &job, connections); err != nil {
				exitError(fmt.Sprintf("Fetch failed: %v", err))
			}
			output.PrintSuccess(fmt.Sprintf("Fetched %s data into %s", job.Type, job.OutputDir))
		},
	}

	cmd.Flags().IntVar(&job.Year, "year", 0, "Flight year")
	cmd.Flags().IntVar(&job.Month, "month", 0, "Flight month")
	cmd.Flags().IntVar(&job.Day, "day", 0, "Flight day")
	cmd.Flags().StringVar(&job.YYYYMMDD, "yyyymmdd", "", "Specify the year, month, and day in one YYYYMMDD string")
	cmd.Flags().StringVar(&job.Site, "site", "", "Name of the location of the images (AN or GR)")
	cmd.Flags().StringVar(&job.Type, "type", "image", "File type to download (image, ortho, dem, lidar)")
	cmd.Flags().IntVar(&job.StartFrame, "start-frame", 0, "Frame number or start of frame sequence")
	cmd.Flags().IntVar(&job.StopFrame, "stop-frame", 0, "End of frame sequence to download")
	cmd.Flags().BoolVar(&job.AllFrames, "all-frames", false, "Fetch all frames for this flight")
	cmd.Flags().BoolVar(&job.DryRun, "dry-run", false, "Just print the download URLs")
	cmd.Flags().BoolVar(&job.RefetchIndex, "refetch-index", false, "Force refetch of the index file")
	cmd.Flags().BoolVar(&job.RequireAll, "require-all", false, "Fail unless every required file lands valid on disk")
	return cmd
}
