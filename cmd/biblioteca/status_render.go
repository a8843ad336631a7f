package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"biblioteca/internal/preflight"
)

type checkState int

const (
	checkPassed checkState = iota
	checkWarned
	checkFailed
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	checkLabelWidth = 20
	checkIndent     = "  "
)

var checkStyles = map[checkState]struct {
	label string
	color string
}{
	checkPassed: {"OK", ansiGreen},
	checkWarned: {"WARN", ansiYellow},
	checkFailed: {"ERROR", ansiRed},
}

func renderCheckLine(name string, state checkState, detail string, colorize bool) string {
	style := checkStyles[state]
	line := fmt.Sprintf("%s%-*s [%s]", checkIndent, checkLabelWidth, name+":", style.label)
	if detail != "" {
		line += " " + detail
	}
	if colorize {
		return style.color + line + ansiReset
	}
	return line
}

func renderHeading(title string, colorize bool) []string {
	heading := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len(heading))
	if colorize {
		return []string{ansiBlue + heading + ansiReset, ansiBlue + rule + ansiReset}
	}
	return []string{heading, rule}
}

// checkLines renders preflight results. A failure whose name is in optional
// is a warning and does not count as a failure.
func checkLines(results []preflight.Result, optional map[string]bool, colorize bool) ([]string, int) {
	lines := make([]string, 0, len(results))
	failures := 0
	for _, r := range results {
		state := checkPassed
		switch {
		case r.Passed:
		case optional[r.Name]:
			state = checkWarned
		default:
			state = checkFailed
			failures++
		}
		lines = append(lines, renderCheckLine(r.Name, state, r.Detail, colorize))
	}
	return lines, failures
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
