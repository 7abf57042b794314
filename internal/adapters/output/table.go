// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"publishx/internal/core/domain"
	"publishx/internal/core/ports"
)

// Table imprime los resultados de una ejecución como tabla legible.
func Table(w io.Writer, results []domain.Result) error {
	tw := newWriter()
	tw.AppendHeader(table.Row{"#", "Stage", "Plugin", "Instance", "Status", "Duration", "Error"})

	failed := 0
	for i, r := range results {
		status := "ok"
		if !r.Success {
			status = "FAILED"
			failed++
		}
		tw.AppendRow(table.Row{
			i + 1,
			r.Stage.String(),
			r.Plugin,
			dash(r.InstanceName()),
			status,
			r.Duration.Round(time.Millisecond).String(),
			r.ErrorMessage(),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "Total", fmt.Sprintf("%d/%d ok", len(results)-failed, len(results)), "", ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, WidthMax: 60},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

// PluginsTable imprime los plugins registrados con el stage que les corresponde.
func PluginsTable(w io.Writer, metas []ports.PluginMetadata) error {
	tw := newWriter()
	tw.AppendHeader(table.Row{"Order", "Stage", "Plugin", "Kind", "Targets", "Families", "Description"})

	for _, m := range metas {
		stage := "-"
		if s, ok := domain.StageOf(m.Order); ok {
			stage = s.String()
		}
		tw.AppendRow(table.Row{
			strconv.FormatFloat(m.Order, 'g', -1, 64),
			stage,
			m.Name,
			string(m.Kind),
			strings.Join(m.Targets, ","),
			strings.Join(m.Families, ","),
			m.Description,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func newWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	return tw
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
