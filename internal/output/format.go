// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/task"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// PendingTitle and CompletedTitle head the two sections.
	PendingTitle   = "Todo"
	CompletedTitle = "Done"
)

// Formatter writes task lists, optionally styled.
type Formatter struct {
	color  bool
	header lipgloss.Style
	done   lipgloss.Style
	remark lipgloss.Style
}

// NewFormatter returns a Formatter. With color unset output is plain text.
func NewFormatter(color bool) *Formatter {
	return &Formatter{
		color:  color,
		header: lipgloss.NewStyle().Bold(true),
		done:   lipgloss.NewStyle().Faint(true).Strikethrough(true),
		remark: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
	}
}

// Task formats a task line.
// Format: "{N:>4}  {TITLE}\n", followed by "      {REMARK}\n" when a remark is set.
func (f *Formatter) Task(w io.Writer, num int, t task.Task, completed bool) {
	title := normalize(t.Title)
	if completed {
		title = f.style(f.done, title)
	}
	fmt.Fprintf(w, "%4d  %s\n", num, title)
	if remark := strings.TrimSpace(t.Remark); remark != "" {
		fmt.Fprintf(w, "      %s\n", f.style(f.remark, normalize(remark)))
	}
}

// Header formats a section header.
func (f *Formatter) Header(w io.Writer, title string, count int) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, f.style(f.header, fmt.Sprintf("%s (%d)", title, count)))
	fmt.Fprintln(w, ListSeparator)
}

// Section formats a header followed by the numbered tasks.
func (f *Formatter) Section(w io.Writer, title string, tasks []task.Task, completed bool) {
	f.Header(w, title, len(tasks))
	for i, t := range tasks {
		f.Task(w, i+1, t, completed)
	}
}

// State formats both sections. Returns false if there was nothing to print.
func (f *Formatter) State(w io.Writer, s task.State, showPending, showCompleted bool) bool {
	printed := false
	if showPending && len(s.Pending) > 0 {
		f.Section(w, PendingTitle, s.Pending, false)
		printed = true
	}
	if showCompleted && len(s.Completed) > 0 {
		f.Section(w, CompletedTitle, s.Completed, true)
		printed = true
	}
	return printed
}

func (f *Formatter) style(s lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return s.Render(text)
}

// normalize replaces newlines with spaces so each task stays on one line.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
