package format

import (
	"encoding/json"
	"io"

	"github.com/example/esparse/source"
	"github.com/example/esparse/visitor"
)

// EventJSONEncoder turns a recorded visitor.Spy trace into JSON: one
// object per event, in emission order, with whichever payload fields that
// event carries.
type EventJSONEncoder struct {
	w       io.Writer
	records []visitor.Record
}

func NewEventJSONEncoder(w io.Writer, records []visitor.Record) *EventJSONEncoder {
	return &EventJSONEncoder{w: w, records: records}
}

func (e *EventJSONEncoder) Encode() error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *EventJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildEvents(), "", "  ")
}

type jsonEvent struct {
	Event string `json:"event"`
	Name  string `json:"name,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func (e *EventJSONEncoder) buildEvents() []jsonEvent {
	out := make([]jsonEvent, len(e.records))
	for i, r := range e.records {
		jn := jsonEvent{Event: string(r.Event), Name: r.Name}
		if declaresKind(r.Event) {
			jn.Kind = r.Kind.String()
		}
		out[i] = jn
	}
	return out
}

func declaresKind(event visitor.EventName) bool {
	return event == visitor.EventVariableDeclaration
}

// DiagnosticJSONEncoder turns a source.Sink's diagnostics into JSON,
// translating each Range into a human-readable Span via loc when loc is
// non-nil; with a nil loc only the byte range is written.
type DiagnosticJSONEncoder struct {
	w    io.Writer
	diag []source.Diagnostic
	loc  *source.Locator
}

func NewDiagnosticJSONEncoder(w io.Writer, diag []source.Diagnostic, loc *source.Locator) *DiagnosticJSONEncoder {
	return &DiagnosticJSONEncoder{w: w, diag: diag, loc: loc}
}

func (e *DiagnosticJSONEncoder) Encode() error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DiagnosticJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildDiagnostics(), "", "  ")
}

type jsonDiagnostic struct {
	Kind  string        `json:"kind"`
	Range jsonByteRange `json:"range"`
	Span  *jsonSpan     `json:"span,omitempty"`
}

type jsonByteRange struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *DiagnosticJSONEncoder) buildDiagnostics() []jsonDiagnostic {
	out := make([]jsonDiagnostic, len(e.diag))
	for i, d := range e.diag {
		jd := jsonDiagnostic{
			Kind:  d.Kind.String(),
			Range: jsonByteRange{Begin: d.Range.Begin, End: d.Range.End},
		}
		if e.loc != nil {
			span := e.loc.Span(d.Range)
			jd.Span = &jsonSpan{
				Start: jsonPosition{Line: span.Begin.Line, Column: span.Begin.Column},
				End:   jsonPosition{Line: span.End.Line, Column: span.End.Column},
			}
		}
		out[i] = jd
	}
	return out
}
