package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const (
	progressDoneRune    = "█"
	progressPendingRune = "░"
)

func clearCurrentTerminalLine(w io.Writer) {
	w.Write([]byte("\r\033[K"))
}

func printProgressLine(line string, progress float64, eta time.Duration) {
	// Calculate progress bar
	terminalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	terminalWidth -= len(line) + 2 + 12
	if terminalWidth < 1 {
		fmt.Fprint(color.Output, line)
		return
	}
	progressChunks := int(progress * float64(terminalWidth))
	if progressChunks > terminalWidth {
		progressChunks = terminalWidth
	}
	progressLine := strings.Repeat(progressDoneRune, progressChunks)
	progressLine += strings.Repeat(progressPendingRune, terminalWidth-progressChunks)

	fmt.Fprintf(color.Output, "%s %s ETA %02d:%02d:%02d", line, progressLine,
		int64(eta.Hours()), int64(eta.Minutes())%60, int64(eta.Seconds())%60)
}
