// =============================================================================
// EVE Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (eveparse)
//   ├── sumCmd      (eveparse sum)
//   ├── classifyCmd (eveparse classify)
//   ├── formatsCmd  (eveparse formats)
//   └── versionCmd  (eveparse version)
//
// The root command loads the configuration file and sets up logging before
// any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/eve-parser/internal/config"
	"github.com/ginjaninja78/eve-parser/internal/logging"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig is the configuration loaded before each command runs.
var appConfig = config.Default()

// logger is shared by all commands.
var logger logging.Logger = logging.Discard

// logFile is kept open for the lifetime of the process when log_file is set.
var logFile *os.File

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "eveparse",
	Short: "EVE Parser - Total up item counts copied from the EVE Online client",
	Long: `EVE Parser reads text copied out of the EVE Online client and adds up
the quantity of every item it finds.

Recognized line formats (see 'eveparse formats'):
  - Blueprint materials:  1000 x Tritanium
  - Inventory window:     Tritanium  1,000  Mineral  10 m3
  - Item then count:      Tritanium 1000
  - Count then item:      1000 Tritanium

Lines in any other shape (headers, blank lines) are ignored.

Example Usage:
  eveparse sum < materials.txt           # Read standard input
  eveparse sum --clipboard               # Read the system clipboard
  eveparse sum a.txt b.xlsx --sort total # Combine several inputs
  eveparse sum --item Tritanium a.txt    # Show a single item`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initConfig loads the configuration and configures logging. A config file
// named explicitly with --config must exist.
func initConfig(cmd *cobra.Command) error {
	required := cmd.Flags().Changed("config")

	loaded, err := config.LoadMainConfig(cfgFile, required)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = loaded

	level := appConfig.LogLevel
	if verbose {
		level = "debug"
	}

	var out io.Writer = cmd.ErrOrStderr()
	if appConfig.LogFile != "" {
		f, err := os.OpenFile(appConfig.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		out = f
	}

	logger, err = logging.New(out, level)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("Loaded configuration from %s", cfgFile)
	return nil
}
