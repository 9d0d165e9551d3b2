package nobel

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/xhad/nobel/internal/models"
)

const separator = "---------------------------------"

type Printer struct {
	out   io.Writer
	label *color.Color
	sep   *color.Color
}

func NewPrinter(out io.Writer, colorize bool) *Printer {
	p := &Printer{
		out:   out,
		label: color.New(color.FgCyan, color.Bold),
		sep:   color.New(color.FgHiBlack),
	}
	if colorize {
		p.label.EnableColor()
		p.sep.EnableColor()
	} else {
		p.label.DisableColor()
		p.sep.DisableColor()
	}
	return p
}

func (p *Printer) Print(s models.Summary) {
	p.sep.Fprintln(p.out, separator)
	p.field("Full name", s.FullName)
	p.field("Award year", s.AwardYear)
	p.field("Affiliations", s.Affiliation)
	fmt.Fprintln(p.out)
}

func (p *Printer) PrintAll(summaries []models.Summary) {
	for _, s := range summaries {
		p.Print(s)
	}
}

func (p *Printer) field(name, value string) {
	p.label.Fprint(p.out, name+":")
	fmt.Fprintf(p.out, " %s\n", value)
}
