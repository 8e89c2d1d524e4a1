package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/seamless/internal/ipc"
)

func newClient() (*ipc.Client, error) {
	res, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path, err := socketPath(res.Config)
	if err != nil {
		return nil, err
	}
	return ipc.NewClient(path), nil
}

func newStatusCmd() *cobra.Command {
	var showWindows bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the daemon's tracking status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			status, err := client.GetStatus()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON() {
				if !showWindows {
					status.Windows = nil
				}
				return printJSON(out, status)
			}
			printStatus(out, status)
			if showWindows {
				printWindowsTable(out, status.Windows)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showWindows, "windows", "w", false, "list tracked windows")
	return cmd
}

func newRectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rects",
		Short: "Print the published visible rectangles",
		Long: `Print the visible rectangles of all tracked windows in absolute screen
coordinates. Each rectangle is given by its left, top, right and bottom
edges; y grows towards the bottom of the screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			data, err := client.GetRects()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON() {
				return printJSON(out, data)
			}
			printRectsTable(out, data.Rects)
			return nil
		},
	}
}

func newRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Re-enumerate every top-level window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.Rebuild(); err != nil {
				return err
			}
			if wantJSON() {
				return printJSON(cmd.OutOrStdout(), ipc.RebuildData{Requested: true})
			}
			successColor.Fprintln(cmd.OutOrStdout(), "✓ Rebuild requested")
			return nil
		},
	}
}
