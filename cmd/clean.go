package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisVisazure/StereoPipeline/internal/output"
	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [path]",
		Short: "Clean up temporary files left by an interrupted run",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if err := utils.CleanTemp(dir); err != nil {
				exitError(fmt.Sprintf("Error cleaning up temporary files: %v", err))
			}
			output.PrintSuccess("Temporary files cleaned up")
		},
	}
}
