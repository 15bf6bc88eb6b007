package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/angeloszaimis/kube-healthcheck/internal/status"
)

type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// Printer writes colored status lines.
type Printer struct {
	w         io.Writer
	down      *color.Color
	unhealthy *color.Color
	up        *color.Color
	failed    *color.Color
	ok        *color.Color
}

// NewPrinter returns a printer writing to w. In ModeAuto colors follow
// fatih/color's detection for standard output, which honors NO_COLOR and
// non-terminal destinations.
func NewPrinter(w io.Writer, mode Mode) *Printer {
	p := &Printer{
		w:         w,
		down:      color.New(color.FgRed),
		unhealthy: color.New(color.FgYellow),
		up:        color.New(color.FgGreen),
		failed:    color.New(color.FgRed),
		ok:        color.New(color.FgGreen),
	}

	for _, c := range []*color.Color{p.down, p.unhealthy, p.up, p.failed, p.ok} {
		switch mode {
		case ModeAlways:
			c.EnableColor()
		case ModeNever:
			c.DisableColor()
		}
	}

	return p
}

// Print writes l followed by a newline.
func (p *Printer) Print(l Line) error {
	_, err := fmt.Fprintln(p.w, p.Sprint(l))
	return err
}

// Sprint renders l with colors applied and no trailing newline.
func (p *Printer) Sprint(l Line) string {
	description := p.ok
	if l.Failed {
		description = p.failed
	}

	return l.format(p.labelColor(l.Label).Sprint(l.PaddedLabel()), description.Sprint(l.Description))
}

func (p *Printer) labelColor(label status.Label) *color.Color {
	switch label {
	case status.LabelDown:
		return p.down
	case status.LabelUnhealthy:
		return p.unhealthy
	default:
		return p.up
	}
}
