package services

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"housing-report/models"
)

var (
	bannerColor  = color.New(color.FgMagenta, color.Bold)
	sectionColor = color.New(color.FgYellow, color.Bold)
	bestColor    = color.New(color.FgGreen, color.Bold)
	noticeColor  = color.New(color.FgCyan)
)

// Printer renders a report on a terminal.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes every section of r in dashboard order.
func (p *Printer) Print(r *models.Report) {
	sep := strings.Repeat("═", 64)

	bannerColor.Fprintf(p.w, "\n%s\n", sep)
	bannerColor.Fprintf(p.w, "  HOUSING PRICE PREDICTION REPORT\n")
	bannerColor.Fprintf(p.w, "%s\n\n", sep)

	p.printExploration(r)
	p.printImages(r, "correlation")
	p.printMetrics(r)
	p.printImages(r, "models")
	p.printConclusions(r)

	bannerColor.Fprintf(p.w, "%s\n\n", sep)
}

func (p *Printer) section(title string) {
	sectionColor.Fprintf(p.w, "  %s\n", title)
	fmt.Fprintf(p.w, "  %s\n", strings.Repeat("─", 62))
}

func (p *Printer) placeholders(r *models.Report, section string) bool {
	found := false
	for _, ph := range r.Placeholders {
		if ph.Section == section {
			noticeColor.Fprintf(p.w, "  ℹ %s\n", ph.Message)
			found = true
		}
	}
	return found
}

func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.SetStyle(table.StyleLight)
	return t
}

func (p *Printer) printExploration(r *models.Report) {
	p.section("Data exploration")
	if r.Summary == nil {
		p.placeholders(r, "exploration")
		fmt.Fprintln(p.w)
		return
	}
	s := r.Summary

	fmt.Fprintf(p.w, "  Records : %d\n", s.Rows)
	fmt.Fprintf(p.w, "  Columns : %d\n", s.Columns)
	fmt.Fprintf(p.w, "  Target  : %s\n\n", s.Target)

	preview := p.newTable()
	header := make(table.Row, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	preview.AppendHeader(header)
	for _, row := range s.Preview {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		preview.AppendRow(tr)
	}
	preview.Render()

	stats := p.newTable()
	stats.AppendHeader(table.Row{"", "count", "mean", "std", "min", "25%", "50%", "75%", "max"})
	for _, c := range s.Describe {
		stats.AppendRow(table.Row{
			c.Name, c.Count, statCell(c.Mean), statCell(c.Std), statCell(c.Min),
			statCell(c.P25), statCell(c.P50), statCell(c.P75), statCell(c.Max),
		})
	}
	stats.SetColumnConfigs(rightAligned(2, 9))
	stats.Render()
	fmt.Fprintln(p.w)
}

func (p *Printer) printImages(r *models.Report, section string) {
	for _, img := range r.Images {
		if img.Section != section {
			continue
		}
		if img.Path != "" {
			fmt.Fprintf(p.w, "  [image] %s → %s\n", img.Caption, img.Path)
		} else {
			fmt.Fprintf(p.w, "  [image] %s (%d bytes)\n", img.Caption, img.Size)
		}
	}
	if p.placeholders(r, section) {
		fmt.Fprintln(p.w)
	}
}

func (p *Printer) printMetrics(r *models.Report) {
	p.section("Regression model comparison")

	t := p.newTable()
	t.AppendHeader(table.Row{"Model", "R2", "RMSE", "MAE"})
	best := ""
	if r.Conclusions != nil {
		best = r.Conclusions.Best.Name
	}
	for _, row := range r.Metrics.Rows {
		name := row.Metric.Name
		if name == best {
			name = bestColor.Sprint(name + " ★")
		}
		t.AppendRow(table.Row{name, row.R2, row.RMSE, row.MAE})
	}
	t.SetColumnConfigs(rightAligned(2, 4))
	t.Render()
	fmt.Fprintln(p.w)
}

func (p *Printer) printConclusions(r *models.Report) {
	if r.Conclusions == nil {
		return
	}
	p.section("Conclusions")
	for _, s := range r.Conclusions.Statements {
		fmt.Fprintf(p.w, "  • %s\n", s)
	}
	fmt.Fprintln(p.w)
}

func rightAligned(from, to int) []table.ColumnConfig {
	cfgs := make([]table.ColumnConfig, 0, to-from+1)
	for n := from; n <= to; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	return cfgs
}

func statCell(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
