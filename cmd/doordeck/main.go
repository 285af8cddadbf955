package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"doordeck/internal/config"
	"doordeck/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Set up in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "doordeck",
	Short: "doordeck scrapes wiki images and lays them out as door decoration slides.",
	Long: `doordeck runs a three stage pipeline over flat files:

  scrape   collect image URLs (and card rarities) from wiki pages
  fetch    download the images as RGB JPEGs
  deck     build a .pptx with three decorated cards per slide`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to doordeck.yaml (default: ./doordeck.yaml or ./config/doordeck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
