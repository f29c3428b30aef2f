package ui

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// displayWidth returns the visible width of a string (excluding ANSI codes, handling wide chars)
func displayWidth(s string) int {
	return runewidth.StringWidth(ansiRegex.ReplaceAllString(s, ""))
}

// IsTTY returns true if stdout is a terminal
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// padLines pads every line to the widest display width and joins them, so
// pterm boxes get a straight right edge.
func padLines(lines []string) string {
	maxLen := 0
	for _, line := range lines {
		if w := displayWidth(line); w > maxLen {
			maxLen = w
		}
	}

	var content strings.Builder
	for i, line := range lines {
		content.WriteString(line)
		if w := displayWidth(line); w < maxLen {
			content.WriteString(strings.Repeat(" ", maxLen-w))
		}
		if i < len(lines)-1 {
			content.WriteString("\n")
		}
	}
	return content.String()
}

// HeaderBox prints command header box
func HeaderBox(command, subtitle string) {
	if !IsTTY() {
		fmt.Printf("%s\n%s\n", command, subtitle)
		return
	}

	box := pterm.DefaultBox.
		WithTitle(pterm.Cyan(command)).
		WithTitleTopLeft()
	box.Println(subtitle)
}

// Spinner wraps pterm spinner
type Spinner struct {
	spinner *pterm.SpinnerPrinter
	start   time.Time
}

// StartSpinner starts a spinner with message
func StartSpinner(message string) *Spinner {
	if !IsTTY() {
		return &Spinner{start: time.Now()}
	}

	s, _ := pterm.DefaultSpinner.Start(message)
	return &Spinner{spinner: s, start: time.Now()}
}

// Success stops spinner with success
func (s *Spinner) Success(message string) {
	elapsed := time.Since(s.start)
	msg := message
	if elapsed.Seconds() >= 0.05 {
		msg = fmt.Sprintf("%s (%.1fs)", message, elapsed.Seconds())
	}
	if s.spinner != nil {
		s.spinner.Success(msg)
	} else {
		fmt.Printf("✓ %s\n", msg)
	}
}

// Fail stops spinner with failure (red)
func (s *Spinner) Fail(message string) {
	if s.spinner != nil {
		s.spinner.Fail(message)
	} else {
		fmt.Printf("✗ %s\n", message)
	}
}

// KV is one row of a SummaryBox.
type KV struct {
	Key   string
	Value string
}

// SummaryBox prints a summary box with key-value pairs in the given order
func SummaryBox(title string, items []KV) {
	if !IsTTY() {
		fmt.Printf("── %s ──\n", title)
		for _, kv := range items {
			fmt.Printf("  %s: %s\n", kv.Key, kv.Value)
		}
		return
	}

	lines := make([]string, 0, len(items))
	for _, kv := range items {
		lines = append(lines, fmt.Sprintf("  %-10s %s", kv.Key+":", kv.Value))
	}

	box := pterm.DefaultBox.
		WithTitle(pterm.Green(title)).
		WithBoxStyle(pterm.NewStyle(pterm.FgGreen))
	box.Println(padLines(lines))
}

// DiffBlock prints a "- "/"+ " line diff indented under a file name.
func DiffBlock(path, diff string) {
	if IsTTY() {
		fmt.Printf("  %s\n", pterm.White(path))
	} else {
		fmt.Printf("  %s\n", path)
	}
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		if line == "" {
			continue
		}
		if !IsTTY() {
			fmt.Printf("    %s\n", line)
			continue
		}
		switch {
		case strings.HasPrefix(line, "+ "):
			fmt.Printf("    %s\n", pterm.Green(line))
		case strings.HasPrefix(line, "- "):
			fmt.Printf("    %s\n", pterm.Red(line))
		default:
			fmt.Printf("    %s\n", pterm.Gray(line))
		}
	}
}

// Step-based UI components for the deploy flow

const (
	StepArrow  = "▸"
	StepLine   = "│"
	StepBranch = "├"
	StepCorner = "└"
)

// StepStart prints the first step (with arrow)
func StepStart(label, value string) {
	if IsTTY() {
		fmt.Printf("%s  %s  %s\n", pterm.Yellow(StepArrow), pterm.White(label), value)
	} else {
		fmt.Printf("%s  %s  %s\n", StepArrow, label, value)
	}
}

// StepContinue prints a middle step (with branch)
func StepContinue(label, value string) {
	if IsTTY() {
		fmt.Printf("%s\n", pterm.Gray(StepLine))
		fmt.Printf("%s %s  %s\n", pterm.Gray(StepBranch+"─"), pterm.White(label), value)
	} else {
		fmt.Printf("%s\n", StepLine)
		fmt.Printf("%s─ %s  %s\n", StepBranch, label, value)
	}
}

// StepEnd prints the last step (with corner)
func StepEnd(label, value string) {
	if IsTTY() {
		fmt.Printf("%s\n", pterm.Gray(StepLine))
		fmt.Printf("%s %s  %s\n", pterm.Gray(StepCorner+"─"), pterm.White(label), value)
	} else {
		fmt.Printf("%s\n", StepLine)
		fmt.Printf("%s─ %s  %s\n", StepCorner, label, value)
	}
}
