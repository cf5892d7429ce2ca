package liveness

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"regscan/internal/source"
	"regscan/internal/ssa"
)

// ChartOptions configures WriteChart.
type ChartOptions struct {
	Color bool
}

var barColor = color.New(color.FgCyan, color.Bold)

// WriteChart draws every range as a bar over the instruction axis:
//
//	a1: +---+
//	b1:   +-+
//	    0 1 2
func WriteChart(w io.Writer, info *Info, resolve source.Resolver, opts ChartOptions) error {
	intervals := info.Intervals()
	if len(intervals) == 0 {
		return nil
	}

	names := make([]string, len(intervals))
	width, last := 0, 0
	for i, iv := range intervals {
		names[i] = ssa.VarName(iv.Var, resolve) + ": "
		width = max(width, runewidth.StringWidth(names[i]))
		last = max(last, iv.Range.End)
	}

	paint := func(s string) string { return s }
	if opts.Color {
		c := *barColor
		c.EnableColor()
		paint = func(s string) string { return c.Sprint(s) }
	}

	var sb strings.Builder
	for i, iv := range intervals {
		sb.WriteString(runewidth.FillRight(names[i], width))
		sb.WriteString(strings.Repeat("  ", iv.Range.Start))
		sb.WriteString(paint("+-" + strings.Repeat("--", max(iv.Range.Len()-1, 0)) + "+"))
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat(" ", width))
	for pos := 0; pos <= last; pos++ {
		if pos > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(pos))
	}
	sb.WriteByte('\n')

	_, err := fmt.Fprint(w, sb.String())
	return err
}
