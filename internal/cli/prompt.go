package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/haguru/sakura/internal/forms"
	"golang.org/x/term"
)

// field is one value collected from the user.
type field struct {
	name   string
	title  string
	secret bool
}

var (
	usernameField = field{name: forms.FieldUsername, title: "Username"}
	emailField    = field{name: forms.FieldEmail, title: "Email"}
	passwordField = field{name: forms.FieldPassword, title: "Password", secret: true}
)

func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// collect asks for each field and folds the answers into state. A terminal
// gets an interactive form with the password hidden; anything else is read
// one line per field.
func collect[S forms.State](in io.Reader, out io.Writer, state S, fields ...field) (S, error) {
	var answers []string
	var err error
	if isTerminal(in) {
		answers, err = askInteractive(fields)
	} else {
		answers, err = askLines(in, out, fields)
	}
	if err != nil {
		return state, err
	}

	for i, f := range fields {
		state, err = forms.Reduce(state, f.name, answers[i])
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

func askInteractive(fields []field) ([]string, error) {
	answers := make([]string, len(fields))
	inputs := make([]huh.Field, 0, len(fields))
	for i, f := range fields {
		input := huh.NewInput().Title(f.title).Value(&answers[i])
		if f.secret {
			input = input.EchoMode(huh.EchoModePassword)
		}
		inputs = append(inputs, input)
	}

	if err := huh.NewForm(huh.NewGroup(inputs...)).Run(); err != nil {
		return nil, fmt.Errorf("failed to read form: %w", err)
	}
	return answers, nil
}

// askLines reads one line per field. Only the line ending is stripped so
// surrounding spaces reach validation unchanged. A missing last line reads
// as empty.
func askLines(in io.Reader, out io.Writer, fields []field) ([]string, error) {
	reader := bufio.NewReader(in)
	answers := make([]string, len(fields))
	for i, f := range fields {
		if _, err := fmt.Fprint(out, Styles.Muted.Render(f.title+": ")); err != nil {
			return nil, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		answers[i] = strings.TrimRight(line, "\r\n")
	}
	fmt.Fprintln(out)
	return answers, nil
}
