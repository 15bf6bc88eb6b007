package render

import (
	"fmt"
	"net/url"
	"time"

	"github.com/angeloszaimis/kube-healthcheck/internal/probe"
	"github.com/angeloszaimis/kube-healthcheck/internal/status"
)

// labelWidth keeps the columns after the label aligned.
var labelWidth = len(status.LabelUnhealthy.String())

// Line is everything printed for one iteration.
type Line struct {
	Label       status.Label
	Timestamp   time.Time
	Path        string
	Description string
	Failed      bool
	Elapsed     time.Duration
}

// NewLine combines the rolling label with the current outcome.
func NewLine(label status.Label, target *url.URL, out probe.Outcome) Line {
	return Line{
		Label:       label,
		Timestamp:   out.StartedAt,
		Path:        Path(target),
		Description: out.Description,
		Failed:      out.Failed,
		Elapsed:     out.Elapsed,
	}
}

// Path returns the escaped path of u, or "/" when it has none.
func Path(u *url.URL) string {
	if u == nil {
		return "/"
	}
	if p := u.EscapedPath(); p != "" {
		return p
	}
	return "/"
}

// PaddedLabel is the label left-aligned to the width of the longest one.
func (l Line) PaddedLabel() string {
	return fmt.Sprintf("%-*s", labelWidth, l.Label)
}

func (l Line) String() string {
	return l.format(l.PaddedLabel(), l.Description)
}

func (l Line) format(label, description string) string {
	return fmt.Sprintf("%s %s %s: %s (%s)",
		label,
		l.Timestamp.Format(time.RFC3339Nano),
		l.Path,
		description,
		l.Elapsed,
	)
}
