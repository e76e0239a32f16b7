package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// TermView renders the presenter's output to a terminal. Terminal output
// is append-only, so fades and dismissals are no-ops and busy state is
// not drawn.
type TermView struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewTermView builds a terminal view writing to out. Color is enabled
// only when out is a TTY.
func NewTermView(out io.Writer) *TermView {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &TermView{out: out, color: color}
}

func (v *TermView) paint(s string, colors text.Colors) string {
	if !v.color {
		return s
	}
	return colors.Sprint(s)
}

func (v *TermView) RenderLoading(prompt string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, v.paint("... "+prompt, text.Colors{text.Faint}))
}

func (v *TermView) RenderResult(rv ResultView) {
	v.mu.Lock()
	defer v.mu.Unlock()

	title := rv.Title
	if rv.HasYear {
		title = fmt.Sprintf("%s (%d)", rv.Title, rv.Year)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(v.out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{v.paint(title, text.Colors{text.Bold})})
	tw.AppendRow(table.Row{fmt.Sprintf("%s  %s  %s", rv.ConfidenceBadge, rv.MatchBadge, rv.TimeBadge)})
	tw.Render()

	dw := table.NewWriter()
	dw.SetOutputMirror(v.out)
	dw.SetStyle(table.StyleLight)
	dw.AppendRow(table.Row{"Confidence", rv.ConfidenceDetail})
	dw.AppendRow(table.Row{"Processing time", rv.TimeDetail})
	if rv.SceneTimestamp != "" {
		dw.AppendRow(table.Row{"Scene at", rv.SceneTimestamp})
	}
	dw.Render()
}

func (v *TermView) RenderError(message, hint string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, v.paint(message, text.Colors{text.FgRed}))
	if hint != "" {
		fmt.Fprintln(v.out, v.paint(hint, text.Colors{text.Faint}))
	}
}

func (v *TermView) ClearPanel() {}

func (v *TermView) SetBusy(bool) {}

func (v *TermView) ShowToast(t Toast) {
	v.mu.Lock()
	defer v.mu.Unlock()
	colors := text.Colors{text.Faint}
	switch t.Severity {
	case SeveritySuccess:
		colors = text.Colors{text.FgGreen}
	case SeverityError:
		colors = text.Colors{text.FgYellow}
	}
	fmt.Fprintln(v.out, v.paint("["+string(t.Severity)+"] "+t.Message, colors))
}

func (v *TermView) FadeToast(int) {}

func (v *TermView) DismissToast(int) {}

func (v *TermView) SetConnectivity(online bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	label := "online"
	colors := text.Colors{text.FgGreen}
	if !online {
		label = "offline"
		colors = text.Colors{text.FgRed}
	}
	fmt.Fprintln(v.out, v.paint("connectivity: "+label, colors))
}

// RenderMediaTable prints the server catalog, shared by the media CLI
// command.
func (v *TermView) RenderMediaTable(rows [][]string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	tw := table.NewWriter()
	tw.SetOutputMirror(v.out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Title", "Year", "Duration", "Fingerprints"})
	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			row[i] = cell
		}
		tw.AppendRow(row)
	}
	tw.Render()
}
