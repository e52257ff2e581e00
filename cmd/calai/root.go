package calai

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/MEME-CORP/calaiweb/internal/config"
	"github.com/spf13/cobra"
)

var (
	dbPath  string
	verbose bool

	cfg    config.Config
	logger = log.New(io.Discard, "calai: ", log.LstdFlags)
)

var rootCmd = &cobra.Command{
	Use:   "calai",
	Short: "calai tracks meals against personal nutrition targets",
	Long:  "calai is a local-first nutrition tracker: build a profile through onboarding, get calorie and macro targets, and log meals against them.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if verbose || cfg.Verbose {
			logger.SetOutput(cmd.ErrOrStderr())
		} else {
			logger.SetOutput(io.Discard)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env CALAI_DB)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log storage activity to stderr (env CALAI_VERBOSE)")
}
