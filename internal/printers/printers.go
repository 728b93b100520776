// Package printers renders store data for the non-interactive commands.
package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/verte-zerg/bloodroll/internal/model"
)

// Printer writes tables or JSON to Out.
type Printer struct {
	Out  io.Writer
	JSON bool
}

// New returns a printer writing to color.Output.
func New(asJSON bool) *Printer {
	return &Printer{Out: color.Output, JSON: asJSON}
}

type componentJSON struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Unit      string   `json:"unit"`
	NormalMin *float64 `json:"normal_min,omitempty"`
	NormalMax *float64 `json:"normal_max,omitempty"`
}

type entryJSON struct {
	ID         int64   `json:"id"`
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
	Notes      string  `json:"notes,omitempty"`
	OutOfRange bool    `json:"out_of_range"`
}

var (
	bold  = color.New(color.Bold, color.Underline)
	faint = color.New(color.Faint, color.Italic)
	alert = color.New(color.FgHiCyan, color.Bold)
)

// Components prints every component with its normal range.
func (p *Printer) Components(components []model.Component) error {
	if p.JSON {
		out := make([]componentJSON, 0, len(components))
		for _, c := range components {
			out = append(out, componentJSON{ID: c.ID, Name: c.Name, Unit: c.Unit, NormalMin: c.NormalMin, NormalMax: c.NormalMax})
		}
		return p.encode(out)
	}
	if len(components) == 0 {
		_, err := faint.Fprintln(p.Out, "no components")
		return err
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Unit"), bold.Sprint("Normal range"))
	for _, c := range components {
		tbl.AddRow(c.Name, c.Unit, Range(c))
	}
	_, err := fmt.Fprintln(p.Out, tbl)
	return err
}

// Entries prints a component's entries in the given order.
func (p *Printer) Entries(comp model.Component, entries []model.Entry) error {
	if p.JSON {
		out := make([]entryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryJSON{
				ID:         e.ID,
				Date:       e.DateString(),
				Value:      e.Value,
				Notes:      e.Notes,
				OutOfRange: comp.OutOfRange(e.Value),
			})
		}
		return p.encode(out)
	}
	if _, err := bold.Fprintf(p.Out, "%s (%s)\n", comp.Name, comp.Unit); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := faint.Fprintln(p.Out, " none")
		return err
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Value"), bold.Sprint("Notes"))
	for _, e := range entries {
		value := fmt.Sprintf("%.2f", e.Value)
		if comp.OutOfRange(e.Value) {
			value = alert.Sprint(value)
		}
		tbl.AddRow(e.DateString(), value, e.Notes)
	}
	_, err := fmt.Fprintln(p.Out, tbl)
	return err
}

// Range formats a component's normal range, "-" for a missing bound.
func Range(c model.Component) string {
	if c.NormalMin == nil && c.NormalMax == nil {
		return "-"
	}
	return fmt.Sprintf("%s .. %s", bound(c.NormalMin), bound(c.NormalMax))
}

func bound(v *float64) string {
	if v == nil {
		return "-"
	}
	return model.FormatBound(v)
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
