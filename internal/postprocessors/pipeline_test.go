package postprocessors

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/figprep/internal/core/domain"
)

// mockProcessor is a test processor that sets a fixed label or fails.
type mockProcessor struct {
	name  string
	label int64
	err   error
	seen  int
}

func (m *mockProcessor) Name() string      { return m.name }
func (m *mockProcessor) Columns() []string { return []string{m.name} }

func (m *mockProcessor) Process(_ context.Context, _ *domain.Record, out *domain.ProcessedRecord) error {
	m.seen++
	if m.err != nil {
		return m.err
	}
	out.Label = m.label
	return nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.Len() != 0 {
		t.Errorf("expected 0 processors, got %d", p.Len())
	}
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	if p.Len() != 1 {
		t.Errorf("expected 1 processor, got %d", p.Len())
	}
}

func TestPipeline_Process_NilRecord(t *testing.T) {
	p := NewPipeline()

	_, err := p.Process(context.Background(), nil)
	if err == nil {
		t.Error("expected error for nil record")
	}
}

func TestPipeline_Process_EmptyPipelineCopiesFields(t *testing.T) {
	p := NewPipeline()
	in := &domain.Record{
		Text:     domain.StringPtr("hello"),
		Lonely:   []int64{0, 1},
		Idx:      int64(7),
		UniqueID: "u-7",
		Extra:    map[string]any{"annotator": "a1"},
	}

	out, err := p.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RawText() != "hello" {
		t.Errorf("expected text to be carried, got %q", out.RawText())
	}
	if len(out.Lonely) != 2 || out.Lonely[1] != 1 {
		t.Errorf("expected lonely to be carried, got %v", out.Lonely)
	}
	if out.Extra["annotator"] != "a1" {
		t.Errorf("expected extra column to be carried, got %v", out.Extra)
	}
}

func TestPipeline_Process_DoesNotShareInputMemory(t *testing.T) {
	p := NewPipeline()
	in := &domain.Record{
		Text:   domain.StringPtr("hello"),
		Lonely: []int64{1, 0},
		Extra:  map[string]any{"k": "v"},
	}

	out, err := p.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out.Lonely[0] = 9
	*out.Text = "changed"
	out.Extra["k"] = "changed"

	if in.Lonely[0] != 1 || *in.Text != "hello" || in.Extra["k"] != "v" {
		t.Errorf("input record was modified through output: %+v", in)
	}
}

func TestPipeline_Process_MultipleProcessors(t *testing.T) {
	first := &mockProcessor{name: "first", label: 1}
	second := &mockProcessor{name: "second", label: 2}
	p := NewPipeline(first, second)

	out, err := p.Process(context.Background(), &domain.Record{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.seen != 1 || second.seen != 1 {
		t.Errorf("expected each processor to run once, got %d and %d", first.seen, second.seen)
	}
	if out.Label != 2 {
		t.Errorf("expected last processor to win, got %d", out.Label)
	}
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	expectedErr := errors.New("processor failed")
	after := &mockProcessor{name: "after"}

	p := NewPipeline(&mockProcessor{name: "failing", err: expectedErr}, after)

	_, err := p.Process(context.Background(), &domain.Record{})
	if err == nil {
		t.Fatal("expected error from failing processor")
	}
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected wrapped error, got: %v", err)
	}
	if after.seen != 0 {
		t.Error("expected processing to stop at the first error")
	}
}

func TestPipeline_Columns(t *testing.T) {
	p := NewPipeline(&mockProcessor{name: "a"}, &mockProcessor{name: "b"})

	cols := p.Columns()
	if len(cols) != 2 || cols[0] != "a" || cols[1] != "b" {
		t.Errorf("expected [a b], got %v", cols)
	}
}
