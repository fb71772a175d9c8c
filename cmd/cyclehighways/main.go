package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *Config
)

var rootCmd = &cobra.Command{
	Use:          "cyclehighways",
	Short:        "Cycle highway network augmentation",
	Long:         "Adds cycle highways and separated bike links to a MATSim network and extracts bike-only networks.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		return InitLogger(cfg.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file (default is ./cyclehighways.yaml if present)")
	rootCmd.AddCommand(augmentCmd, extractCmd, importOSMCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
