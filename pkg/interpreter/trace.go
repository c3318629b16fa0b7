package interpreter

import (
	"time"

	"github.com/thomasrohde/badbasic/pkg/ast"
)

// TraceEventType identifies the type of a trace event.
type TraceEventType string

const (
	TraceRunStart  TraceEventType = "run_start"
	TraceRunEnd    TraceEventType = "run_end"
	TraceLineStart TraceEventType = "line_start"
	TraceLineEnd   TraceEventType = "line_end"
	TraceRecovered TraceEventType = "recovered"
)

// TraceEvent represents a single trace event emitted during execution.
type TraceEvent struct {
	Timestamp string         `json:"ts"`
	RunID     string         `json:"runId"`
	Event     TraceEventType `json:"event"`
	Label     *ast.Label     `json:"label,omitempty"`
	Span      *ast.Span      `json:"span,omitempty"`
	Value     *int64         `json:"value,omitempty"`
	Code      string         `json:"code,omitempty"`
	Message   string         `json:"message,omitempty"`
}

func (it *Interpreter) emit(ev TraceEvent) {
	if it.trace == nil {
		return
	}
	ev.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	ev.RunID = it.runID
	it.trace(ev)
}

func (it *Interpreter) emitLine(event TraceEventType, label ast.Label, stmt ast.Node) {
	if it.trace == nil {
		return
	}
	span := stmt.NodeSpan()
	it.emit(TraceEvent{Event: event, Label: &label, Span: &span})
}
