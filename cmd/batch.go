package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chrisVisazure/StereoPipeline/internal/fetcher"
	"github.com/chrisVisazure/StereoPipeline/internal/scheduler"
	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

// BatchFile is the YAML flight list: one fetch job per entry.
type BatchFile struct {
	Flights []fetcher.Job `yaml:"flights"`
}

func newBatchCmd() *cobra.Command {
	var dryRun, refetchIndex, requireAll bool

	cmd := &cobra.Command{
		Use:   "batch [YAML_FILE] [OPTIONS]",
		Short: "Process multiple flight fetches from a YAML file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				exitError(fmt.Sprintf("Error reading YAML file: %v", err))
			}
			var batchFile BatchFile
			if err := yaml.Unmarshal(data, &batchFile); err != nil {
				exitError(fmt.Sprintf("Error parsing YAML file: %v", err))
			}
			if len(batchFile.Flights) == 0 {
				exitError("No flights found in the batch file")
			}
			for i := range batchFile.Flights {
				batchFile.Flights[i].DryRun = dryRun
				batchFile.Flights[i].RefetchIndex = refetchIndex
				batchFile.Flights[i].RequireAll = requireAll
			}
			client, err := newArchiveClient()
			if err != nil {
				exitError(err.Error())
			}
			// Log lines would tear the in-place job table.
			if !debug {
				utils.SetLogOutput(io.Discard)
			}
			if err := scheduler.Run(client, batchFile.Flights, workers, connections); err != nil {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Just print the download URLs for every flight")
	cmd.Flags().BoolVar(&refetchIndex, "refetch-index", false, "Force refetch of every index file")
	cmd.Flags().BoolVar(&requireAll, "require-all", false, "Fail unless every required file lands valid on disk")
	return cmd
}
