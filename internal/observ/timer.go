// Package observ collects per-stage timings of a compilation run.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Stage is one timed section of a run.
type Stage struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	done  bool
}

// Timer records stages in the order they began. The zero value is usable.
type Timer struct {
	stages []Stage
}

// NewTimer returns an empty Timer.
func NewTimer() *Timer { return &Timer{stages: make([]Stage, 0, 5)} }

// Begin opens a stage and returns its index.
func (t *Timer) Begin(name string) int {
	t.stages = append(t.stages, Stage{Name: name, Start: time.Now()})
	return len(t.stages) - 1
}

// End closes stage idx. Unknown or already closed indices are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.stages) || t.stages[idx].done {
		return
	}
	s := &t.stages[idx]
	s.Dur = time.Since(s.Start)
	s.Note = note
	s.done = true
}

// Stages returns a copy of the recorded stages.
func (t *Timer) Stages() []Stage {
	out := make([]Stage, len(t.stages))
	copy(out, t.stages)
	return out
}

// Summary renders the timings as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, s := range report.Stages {
		fmt.Fprintf(&sb, "  %-14s %7.2f ms", s.Name, s.DurationMS)
		if s.Note != "" {
			sb.WriteString("  // ")
			sb.WriteString(s.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-14s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// StageReport представляет сжатое описание стадии для сериализации.
type StageReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report aggregates a run's timings.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Stages  []StageReport `json:"stages" msgpack:"stages"`
}

// Report builds the serialisable view; unfinished stages count as zero.
func (t *Timer) Report() Report {
	if len(t.stages) == 0 {
		return Report{}
	}
	report := Report{Stages: make([]StageReport, len(t.stages))}
	var total time.Duration
	for i, s := range t.stages {
		total += s.Dur
		report.Stages[i] = StageReport{
			Name:       s.Name,
			DurationMS: millis(s.Dur),
			Note:       s.Note,
		}
	}
	report.TotalMS = millis(total)
	return report
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
