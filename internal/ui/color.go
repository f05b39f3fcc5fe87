package ui

import (
	"fmt"
	"io"

	"sigma_app/internal/auth"
	"sigma_app/internal/catalog"
	"sigma_app/internal/facility"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
	faint  = color.New(color.Faint)
	bold   = color.New(color.Bold)
	cyan   = color.New(color.FgCyan)
)

// LevelColor picks the badge colour of a congestion level.
func LevelColor(l facility.Level) *color.Color {
	switch l {
	case facility.Relaxed:
		return green
	case facility.Moderate:
		return yellow
	case facility.Crowded:
		return red
	default:
		return faint
	}
}

// LevelBadge returns the coloured Korean label of l.
func LevelBadge(l facility.Level) string {
	return LevelColor(l).Sprint(l.Label())
}

// TagColor picks the colour of a schedule tag.
func TagColor(kind catalog.TagKind) *color.Color {
	switch kind {
	case catalog.TagExam:
		return red
	case catalog.TagSeminar:
		return cyan
	case catalog.TagRegistration:
		return green
	default:
		return faint
	}
}

// CourseStatus colours a course's registration status: green while
// registration is open, faint otherwise.
func CourseStatus(c catalog.Course) string {
	if c.Available() {
		return green.Sprint(c.Status)
	}
	return faint.Sprint(c.Status)
}

// Notice writes an outcome as a title line and a message line, the terminal
// equivalent of the app's alert dialog.
func Notice(w io.Writer, o auth.Outcome) error {
	c := red
	switch o.Kind {
	case auth.Success:
		c = green
	case auth.Busy, auth.RateLimited:
		c = yellow
	}
	if _, err := fmt.Fprintln(w, c.Sprint(bold.Sprint(o.Title()))); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, o.Message)
	return err
}

// Heading writes a bold section title.
func Heading(w io.Writer, title string) error {
	_, err := fmt.Fprintln(w, bold.Sprint(title))
	return err
}

// ChatLine formats one chat bubble with a sender prefix.
func ChatLine(m catalog.ChatMessage) string {
	if m.Sender == catalog.SenderUser {
		return cyan.Sprint("나: ") + m.Text
	}
	return green.Sprint("AI: ") + m.Text
}
