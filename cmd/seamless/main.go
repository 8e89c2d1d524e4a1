package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/1broseidon/seamless/internal/config"
	"github.com/1broseidon/seamless/internal/runtimepath"
)

var (
	cfgFile    string
	jsonOutput bool
	noColor    bool

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "seamless",
	Short: "Track the visible regions of X11 top-level windows",
	Long: `seamless follows the top-level windows of an X11 desktop and publishes
the screen rectangles they cover, taking non-rectangular (SHAPE) windows
into account.

Run "seamless daemon" inside the session, then query it with "seamless
status" and "seamless rects", or expose it to MCP clients with
"seamless mcp serve".`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/seamless/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (default when stdout is not a terminal)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newDaemonCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newRectsCmd())
	rootCmd.AddCommand(newRebuildCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMCPCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// loadConfig reads --config, or the default location when unset.
func loadConfig() (*config.LoadResult, error) {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.LoadFromPath(path)
}

func socketPath(cfg *config.Config) (string, error) {
	return runtimepath.SocketPath(cfg.IPC.Socket)
}

// wantJSON reports whether machine-readable output was requested or stdout
// is not a terminal.
func wantJSON() bool {
	return jsonOutput || !term.IsTerminal(int(os.Stdout.Fd()))
}
