package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fredcamaral/ezprez/internal/domain/entities"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printDetail(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printError prints err, adding the export error's details as a hint line
func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, styleIconError.Render(iconError)+" "+err.Error())

	var exportErr *entities.ExportError
	if errors.As(err, &exportErr) && exportErr.Code == "destination_exists" {
		printDetail(w, "run again with --force to replace it")
	}
}

// printExportSummary prints where the presentation was written
func printExportSummary(w io.Writer, result *entities.ExportResult) {
	if result.Replaced {
		printWarning(w, "Replaced existing folder %s", result.Destination)
	}
	printSuccess(w, "Exported %s slides %s %s",
		styleNumber.Render(fmt.Sprint(result.Slides)),
		iconArrow,
		styleTitle.Render(result.Destination),
	)
	printDetail(w, "%s (%d bytes, %s)", result.IndexPath, result.Bytes, result.Duration.Round(time.Millisecond))
}

// printServeBanner prints the preview address and how to stop the server
func printServeBanner(w io.Writer, url, deckPath string) {
	printSuccess(w, "Serving %s at %s", styleTitle.Render(deckPath), styleLink.Render(url))
	printDetail(w, "watching for changes, press Ctrl+C to stop")
}
