package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spendgraph/pkg/pipeline"
)

// Terminal palette, ANSI 256.
var (
	colorAccent  = lipgloss.Color("36")
	colorGood    = lipgloss.Color("35")
	colorCaution = lipgloss.Color("220")
	colorBad     = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorText    = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

// Styles shared by the commands.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorAccent)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorCaution)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel       = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCommand)
	styleSeparator   = StyleDim.Render(" · ")
)

// status marks the start of a one-line message.
type status struct {
	icon  string
	style lipgloss.Style
}

var (
	statusOK   = status{"✓", lipgloss.NewStyle().Foreground(colorGood)}
	statusFail = status{"✗", lipgloss.NewStyle().Foreground(colorBad)}
	statusWarn = status{"!", lipgloss.NewStyle().Foreground(colorCaution)}
	statusNote = status{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

func (s status) print(msg string) {
	fmt.Println(s.style.Render(s.icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	statusOK.print(fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	statusFail.print(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	statusWarn.print(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	statusNote.print(fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printStats summarizes a layout pass: node counts, settled ticks, and
// whether the layout came from the cache.
func printStats(stats pipeline.Stats, cached bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d categories", stats.CategoryCount)),
		StyleDim.Render(fmt.Sprintf("%d expenses", stats.ExpenseCount)),
		StyleDim.Render(fmt.Sprintf("%d links", stats.LinkCount)),
	}
	if stats.Ticks > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d ticks", stats.Ticks)))
	}
	if cached {
		parts = append(parts, statusOK.style.Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, styleSeparator))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
