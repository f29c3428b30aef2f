package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// ProgressBar draws a single-line progress bar on a TTY and prints one line
// per update otherwise.
type ProgressBar struct {
	current int
	total   int
	title   string
	start   time.Time
	isTTY   bool
	stopped bool
}

// StartProgress starts a progress bar.
func StartProgress(title string, total int) *ProgressBar {
	if !IsTTY() {
		return &ProgressBar{total: total, title: title}
	}

	cursor.Hide()
	p := &ProgressBar{total: total, title: title, start: time.Now(), isTTY: true}
	p.render()
	return p
}

// Increment advances the bar by one and shows title as the current item.
func (p *ProgressBar) Increment(title string) {
	p.current++
	p.title = truncateTitle(title)
	if p.isTTY {
		p.render()
		return
	}
	fmt.Printf("  [%d/%d] %s\n", p.current, p.total, p.title)
}

// Stop renders the final frame and restores the cursor.
func (p *ProgressBar) Stop() {
	if p.stopped {
		return
	}
	p.stopped = true
	if !p.isTTY {
		return
	}
	p.current = p.total
	p.render()
	fmt.Println()
	cursor.Show()
}

func truncateTitle(title string) string {
	const maxTitleWidth = 40
	if len(title) > maxTitleWidth {
		return "..." + title[len(title)-(maxTitleWidth-3):]
	}
	return title
}

// render draws the progress bar on the current line using \r.
func (p *ProgressBar) render() {
	cur, total := p.current, p.total
	if total == 0 {
		return
	}
	if cur > total {
		cur = total
	}

	width := pterm.GetTerminalWidth()

	// Format: title [cur/total] ████░░░░ pct% | elapsed
	pct := int(math.Round(float64(cur) / float64(total) * 100))
	elapsed := time.Since(p.start).Round(time.Second)

	padding := 1 + int(math.Log10(float64(total)))
	counter := fmt.Sprintf("[%0*d/%d]", padding, cur, total)
	pctStr := fmt.Sprintf("%3d%%", pct)
	timeStr := fmt.Sprintf("| %s", elapsed)

	fixedLen := len(p.title) + 1 + len(counter) + 1 + 1 + len(pctStr) + 1 + len(timeStr)
	barWidth := width - fixedLen
	if barWidth < 5 {
		barWidth = 5
	}

	filled := barWidth * cur / total
	bar := Cyan + strings.Repeat("█", filled) + Gray + strings.Repeat("░", barWidth-filled) + Reset

	line := fmt.Sprintf("%s %s %s %s%s%s %s",
		Cyan+p.title+Reset, Gray+counter+Reset, bar, pctColor(pct), pctStr, Reset, timeStr)
	fmt.Printf("\r%-*s", width, line)
}

// pctColor returns a color code fading from red (0%) to green (100%).
func pctColor(pct int) string {
	if pct >= 100 {
		return Green
	}
	if pct >= 50 {
		return Yellow
	}
	return Red
}
