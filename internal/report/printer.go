package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"utilgen/internal/diagnostic"
	"utilgen/internal/typesys"
)

// Printer writes diagnostics and field lists for people.
type Printer struct {
	w io.Writer

	errColor  *color.Color
	warnColor *color.Color
	infoColor *color.Color
	declColor *color.Color
	hintColor *color.Color
	nameColor *color.Color
}

// NewPrinter returns a Printer writing to w. Colors are used unless noColor
// is set or color output is disabled for the process (NO_COLOR, or stdout
// is not a terminal).
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:         w,
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow, color.Bold),
		infoColor: color.New(color.FgCyan),
		declColor: color.New(color.FgBlue),
		hintColor: color.New(color.FgGreen),
		nameColor: color.New(color.Bold),
	}

	enabled := !noColor && !color.NoColor

	for _, c := range []*color.Color{p.errColor, p.warnColor, p.infoColor, p.declColor, p.hintColor, p.nameColor} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// Diagnostic prints one diagnostic:
//
//	error[UTG0004] views.go:3:1: Pick: property Missing not found in poco.TestPoco
//	  --> PocoSummary = Pick<TestPoco, Missing>
//	  help: did you mean NotNullInt?
func (p *Printer) Diagnostic(d diagnostic.Diagnostic) {
	label := p.severity(d.Severity)
	if d.Code != "" {
		label += "[" + d.Code + "]"
	}

	var loc string
	if d.Pos.IsValid() {
		loc = " " + d.Pos.String() + ":"
	} else if d.Pos.Filename != "" {
		loc = " " + d.Pos.Filename + ":"
	}

	fmt.Fprintf(p.w, "%s%s %s\n", label, loc, d.Message)

	if d.Declaration != "" {
		fmt.Fprintf(p.w, "  %s %s = %s\n", p.declColor.Sprint("-->"), d.Declaration, d.Selector)
	}

	for _, s := range d.Suggestions {
		fmt.Fprintf(p.w, "  %s %s\n", p.hintColor.Sprint("help:"), s)
	}
}

func (p *Printer) severity(s diagnostic.DiagnosticSeverity) string {
	switch s {
	case diagnostic.DiagnosticError:
		return p.errColor.Sprint("error")
	case diagnostic.DiagnosticWarning:
		return p.warnColor.Sprint("warning")
	default:
		return p.infoColor.Sprint("info")
	}
}

// Diagnostics prints all diagnostics in severity order followed by a
// summary line, and returns the number of errors.
func (p *Printer) Diagnostics(diags diagnostic.Diagnostics) int {
	all := diags.All()
	for _, d := range all {
		p.Diagnostic(d)
	}

	if len(all) > 0 {
		fmt.Fprintln(p.w, Summary(diags))
	}

	return len(diags.Errors)
}

// Fields prints a field list, one field per line.
func (p *Printer) Fields(fields []typesys.Field) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name))
	}

	for _, f := range fields {
		line := fmt.Sprintf("  %s%s %s", p.nameColor.Sprint(f.Name), strings.Repeat(" ", width-len(f.Name)), typeName(f.Type))
		if flags := Flags(f); len(flags) > 0 {
			line += " " + p.infoColor.Sprint("("+strings.Join(flags, " ")+")")
		}

		fmt.Fprintln(p.w, line)
	}
}

// Summary describes the number of errors and warnings.
func Summary(diags diagnostic.Diagnostics) string {
	return fmt.Sprintf("%s, %s", plural(len(diags.Errors), "error"), plural(len(diags.Warnings), "warning"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}

// Flags returns the names of the flags set on f.
func Flags(f typesys.Field) []string {
	var flags []string

	if f.Nullable {
		flags = append(flags, "nullable")
	}

	if f.Readonly {
		flags = append(flags, "readonly")
	}

	if f.Required {
		flags = append(flags, "required")
	}

	return flags
}

func typeName(t typesys.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
