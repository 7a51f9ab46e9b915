package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/haguru/sakura/internal/validation"
)

var (
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#2C4A54")
)

// Styles used for alerts and field errors.
var Styles = struct {
	Success    lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
	SuccessBox lipgloss.Style
	ErrorBox   lipgloss.Style
}{
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	SuccessBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),
}

func printAlert(w io.Writer, ok bool, text string) {
	box := Styles.ErrorBox
	if ok {
		box = Styles.SuccessBox
	}
	fmt.Fprintln(w, box.Render(text))
}

// printFieldErrors lists every failing field, one per line.
func printFieldErrors(w io.Writer, errs validation.Errors) {
	for _, field := range errs.Fields() {
		fmt.Fprintf(w, "%s %s\n", Styles.Error.Render("✗ "+string(field)+":"), errs[field])
	}
}
