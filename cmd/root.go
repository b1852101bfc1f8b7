package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisVisazure/StereoPipeline/internal/auth"
	"github.com/chrisVisazure/StereoPipeline/internal/output"
	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

var (
	connections int
	workers     int
	timeout     time.Duration
	kaTimeout   time.Duration
	userAgent   string
	headers     []string
	debug       bool

	globalHTTPConfig utils.HTTPClientConfig
)

var IcefetchVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "icefetch",
	Short:   "Icefetch retrieves IceBridge aerial-survey data from the NSIDC archive",
	Version: IcefetchVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
		if userAgent == "randomize" {
			userAgent = utils.GetRandomUserAgent()
		}
		globalHTTPConfig = utils.HTTPClientConfig{
			Timeout:   timeout,
			KATimeout: kaTimeout,
			UserAgent: userAgent,
			Headers:   utils.ParseHeaderArgs(headers),
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newArchiveClient wires the shared HTTP client with Earthdata login
// material. Both credential files must already exist, matching the
// pre-flight check the archive's own instructions call for.
func newArchiveClient() (*utils.Client, error) {
	netrcPath, err := auth.NetrcPath()
	if err != nil {
		return nil, err
	}
	jarPath, err := auth.CookieJarPath()
	if err != nil {
		return nil, err
	}
	if !fileOnDisk(netrcPath) || !fileOnDisk(jarPath) {
		return nil, fmt.Errorf("missing a required authentication file, see instructions here:\n    %s", auth.CredentialHelpURL)
	}
	netrc, err := auth.ParseNetrc(netrcPath)
	if err != nil {
		return nil, err
	}
	jar, err := auth.OpenFileJar(jarPath)
	if err != nil {
		return nil, err
	}
	return utils.NewClient(globalHTTPConfig, netrc, jar), nil
}

func fileOnDisk(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func exitError(msg string) {
	output.PrintError(msg)
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&connections, "connections", "c", 4, "Number of parallel transfers within a batch")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 1, "Number of jobs to run in parallel (batch mode)")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 3*time.Minute, "Connection timeout (eg. 5s, 10m)")
	rootCmd.PersistentFlags().DurationVarP(&kaTimeout, "keep-alive-timeout", "k", 90*time.Second, "Keep-alive timeout for client (eg. 10s, 1m, 80s)")
	rootCmd.PersistentFlags().StringVarP(&userAgent, "user-agent", "a", utils.ToolUserAgent, "User agent ('randomize' picks a browser UA)")
	rootCmd.PersistentFlags().StringArrayVarP(&headers, "header", "H", []string{}, "Custom headers (like 'Authorization: Basic dXNlcjpwYXNz'); can be specified multiple times")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newIndexCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newCleanCmd())
}
