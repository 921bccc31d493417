package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color shortcuts.
var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Dim    = color.New(color.FgHiBlack).SprintFunc()
)

// Glyphs used throughout the UI.
const (
	Pass   = "✓"
	Fail   = "✗"
	Prompt = ">"
)

// Error prints an error message with ✗ prefix to w.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, Red(Fail)+" "+format+"\n", args...)
}

// Success prints a success message with ✓ prefix.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, Green(Pass)+" "+format+"\n", args...)
}

// Warn prints a warning message.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, Yellow("⚠")+"  "+format+"\n", args...)
}

// Info prints a regular message.
func Info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Command renders a git invocation the way an operator would type it.
// e.g. ["stash", "push", "-m", "a b"] → "git stash push -m 'a b'"
func Command(args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "git")
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

// Echo returns a function that prints "> git ..." to w before each step.
func Echo(w io.Writer) func(args []string) {
	return func(args []string) {
		fmt.Fprintln(w, Dim(Prompt+" "+Command(args)))
	}
}

// shellQuote wraps s in single quotes if it contains shell-special characters.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`|&;<>(){}[]!*?~#") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// IsTTY reports whether stdout is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
