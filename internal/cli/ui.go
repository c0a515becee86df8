package cli

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

const (
	termGreen  = termenv.ANSIGreen
	termYellow = termenv.ANSIYellow
	termRed    = termenv.ANSIRed
)

// ui는 stderr에 사람이 읽는 메시지를 출력한다. stdout에는 절대 쓰지 않는다.
type ui struct {
	out *termenv.Output
}

func newUI(w io.Writer, mode string, noColor bool) *ui {
	switch {
	case mode == "never" || (noColor && mode != "always"):
		return &ui{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
	case mode == "always":
		return &ui{out: termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI))}
	default:
		return &ui{out: termenv.NewOutput(w)}
	}
}

func (u *ui) style(s string, c termenv.Color) termenv.Style {
	return u.out.String(s).Foreground(c)
}

func (u *ui) name(s string) string {
	return u.style(s, termenv.ANSICyan).String()
}

func (u *ui) bold(s string) string {
	return u.out.String(s).Bold().String()
}

func (u *ui) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *ui) step(format string, args ...any) {
	fmt.Fprintf(u.out, "%s %s\n", u.style("→", termenv.ANSICyan), fmt.Sprintf(format, args...))
}

func (u *ui) success(format string, args ...any) {
	fmt.Fprintf(u.out, "%s %s\n", u.style("✓", termGreen), fmt.Sprintf(format, args...))
}

func (u *ui) warn(format string, args ...any) {
	fmt.Fprintln(u.out, u.style(fmt.Sprintf(format, args...), termYellow))
}

func (u *ui) error(msg string) {
	fmt.Fprintf(u.out, "%s %s\n", u.style("Error:", termRed).Bold(), msg)
}
