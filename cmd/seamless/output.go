package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/1broseidon/seamless/internal/daemon"
	"github.com/1broseidon/seamless/internal/ipc"
	"github.com/1broseidon/seamless/internal/platform"
)

func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if noColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func printStatus(w io.Writer, status *ipc.StatusData) {
	keyColor.Fprint(w, "Tracking: ")
	if status.Tracking {
		successColor.Fprintln(w, "running")
	} else {
		errorColor.Fprintln(w, "stopped")
	}
	keyColor.Fprint(w, "Instance: ")
	fmt.Fprintln(w, status.InstanceID)
	keyColor.Fprint(w, "Uptime:   ")
	fmt.Fprintln(w, (time.Duration(status.UptimeSeconds) * time.Second).String())
	keyColor.Fprint(w, "Windows:  ")
	fmt.Fprintln(w, status.WindowCount)
	keyColor.Fprint(w, "Rects:    ")
	fmt.Fprintf(w, "%d (version %d)\n", status.RectCount, status.Version)
	if status.UpdatedAt != "" {
		keyColor.Fprint(w, "Updated:  ")
		fmt.Fprintln(w, status.UpdatedAt)
	}
}

func printWindowsTable(w io.Writer, windows []daemon.WindowSummary) {
	if len(windows) == 0 {
		infoColor.Fprintln(w, "No tracked windows")
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header("Window", "Position", "Size", "Shaped", "Regions")
	for _, win := range windows {
		shaped := ""
		if win.Shaped {
			shaped = "yes"
		}
		table.Append(
			fmt.Sprintf("0x%x", win.ID),
			fmt.Sprintf("%d,%d", win.X, win.Y),
			fmt.Sprintf("%dx%d", win.Width, win.Height),
			shaped,
			strconv.Itoa(win.Regions),
		)
	}
	table.Render()
}

func printRectsTable(w io.Writer, rects []platform.Extent) {
	if len(rects) == 0 {
		infoColor.Fprintln(w, "No visible rectangles")
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header("#", "Left", "Top", "Right", "Bottom", "Size")
	for i, r := range rects {
		table.Append(
			strconv.Itoa(i),
			strconv.Itoa(r.Left),
			strconv.Itoa(r.Top),
			strconv.Itoa(r.Right),
			strconv.Itoa(r.Bottom),
			fmt.Sprintf("%dx%d", r.Right-r.Left, r.Bottom-r.Top),
		)
	}
	table.Render()
}
