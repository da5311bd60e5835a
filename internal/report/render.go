package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"leeter/internal/journal"
	"leeter/internal/mission"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	colorHeading = lipgloss.Color("#64d2ff")
	colorKind    = lipgloss.Color("#e91e63")
	colorMuted   = lipgloss.Color("#808080")
	colorSuccess = lipgloss.Color("#30d158")
	colorWarning = lipgloss.Color("#ffd60a")
	colorError   = lipgloss.Color("#ff453a")
)

// Renderer writes projections as plain lines. Styling only reaches the
// output when the writer is a colour-capable terminal.
type Renderer struct {
	out     io.Writer
	printer *message.Printer

	heading lipgloss.Style
	kind    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)
	return &Renderer{
		out:     out,
		printer: message.NewPrinter(language.English),
		heading: r.NewStyle().Bold(true).Foreground(colorHeading),
		kind:    r.NewStyle().Foreground(colorKind),
		muted:   r.NewStyle().Foreground(colorMuted),
		success: r.NewStyle().Foreground(colorSuccess),
		warning: r.NewStyle().Foreground(colorWarning),
		failure: r.NewStyle().Foreground(colorError),
	}
}

func (r *Renderer) Heading(title string) {
	fmt.Fprintln(r.out, r.heading.Render(title))
}

func (r *Renderer) Counts(counts []KindCount) {
	for _, c := range counts {
		fmt.Fprintf(r.out, "%s: %s\n", r.kind.Render(c.Kind), r.number(int64(c.Count)))
	}
}

func (r *Renderer) Board(missions []mission.Mission) {
	if len(missions) == 0 {
		fmt.Fprintln(r.out, r.muted.Render("No missions found."))
		return
	}
	for _, m := range missions {
		line := r.kind.Render(m.Name)
		if m.Faction != "" {
			line += " " + r.muted.Render("["+m.Faction+"]")
		}
		if dest := joinNonEmpty(" / ", m.DestinationSystem, m.DestinationStation); dest != "" {
			line += " -> " + dest
		}
		fmt.Fprintln(r.out, line)

		if len(m.History) == 0 {
			fmt.Fprintf(r.out, "  %s\n", r.muted.Render("active"))
			continue
		}
		for _, t := range m.History {
			fmt.Fprintf(r.out, "  %s  %s\n", t.Record.Timestamp.UTC().Format(timeLayout), r.transition(t.Record.Kind))
		}
	}
}

func (r *Renderer) Ledger(entries []LedgerEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(r.out, r.muted.Render("No market transactions found."))
		return
	}
	for _, e := range entries {
		side := r.failure.Render("BUY ")
		if !e.Buy {
			side = r.success.Render("SELL")
		}
		fmt.Fprintf(r.out, "%s  %s  %s x %s  %s CR  %s\n",
			e.Timestamp.UTC().Format(timeLayout),
			side,
			r.number(e.Count),
			r.kind.Render(e.Commodity),
			r.number(e.Amount),
			joinNonEmpty(", ", e.StationName, e.StarSystem),
		)
	}
}

func (r *Renderer) Brief(records []journal.Record) {
	for _, rec := range records {
		line := fmt.Sprintf("%s  %s", rec.Timestamp.UTC().Format(timeLayout), r.kind.Render(rec.Kind))
		if detail := Describe(rec); detail != "" {
			line += "  " + r.muted.Render(detail)
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *Renderer) transition(kind string) string {
	label := strings.TrimPrefix(kind, "Mission")
	switch kind {
	case journal.KindMissionCompleted:
		return r.success.Render(label)
	case journal.KindMissionRedirected:
		return r.warning.Render(label)
	case journal.KindMissionFailed, journal.KindMissionAbandoned:
		return r.failure.Render(label)
	default:
		return label
	}
}

func (r *Renderer) number(n int64) string {
	return r.printer.Sprintf("%d", n)
}

// Describe summarises a record in a few words for the brief timeline.
func Describe(rec journal.Record) string {
	switch p := rec.Payload.(type) {
	case journal.MissionAccepted:
		return p.Name
	case journal.MissionTransition:
		if dest := joinNonEmpty(" / ", p.NewDestinationSystem, p.NewDestinationStation); dest != "" {
			return fmt.Sprintf("mission %d -> %s", p.MissionID, dest)
		}
		return fmt.Sprintf("mission %d", p.MissionID)
	case journal.MarketTransaction:
		return fmt.Sprintf("%d x %s", p.Count, p.Commodity())
	case journal.Docked:
		return joinNonEmpty(", ", p.StationName, p.StarSystem)
	}
	for _, field := range []string{"StarSystem", "BodyName", "StationName", "Name", "Message_Localised", "Message"} {
		if value := rec.String(field); value != "" {
			return value
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
