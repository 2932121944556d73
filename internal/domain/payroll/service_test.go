package payroll

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

type countingRecorder struct {
	computations int
}

func (c *countingRecorder) RecordComputation() {
	c.computations++
}

func newTestService(recorder Recorder) *Service {
	return NewService(DefaultSchedule(), slog.New(slog.NewTextHandler(io.Discard, nil)), recorder)
}

func TestServiceComputeResolvesCodes(t *testing.T) {
	recorder := &countingRecorder{}
	svc := newTestService(recorder)
	in := sampleInputs()

	summary, err := svc.Compute(in, Overrides{"prevoyance": {Rate: ptr(0.01)}}, Overrides{"AT/MP": {Base: ptr(1000)}})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	line, _ := summary.Employee(NamePrevoyance)
	if line.Rate != 0.01 {
		t.Fatalf("expected overridden rate, got %+v", line)
	}
	atmp, _ := summary.Employer(NameATMP)
	if atmp.Base != 1000 || atmp.Rate != 0.070 {
		t.Fatalf("expected overridden base, got %+v", atmp)
	}
	if recorder.computations != 1 {
		t.Fatalf("expected 1 recorded computation, got %d", recorder.computations)
	}

	direct := ComputePayroll(in, Overrides{NamePrevoyance: {Rate: ptr(0.01)}}, Overrides{NameATMP: {Base: ptr(1000)}})
	if direct.NetPay != summary.NetPay {
		t.Fatalf("expected service and core to agree: %v vs %v", summary.NetPay, direct.NetPay)
	}
}

func TestServiceComputeRejectsUnknownOverrides(t *testing.T) {
	recorder := &countingRecorder{}
	svc := newTestService(recorder)
	_, err := svc.Compute(sampleInputs(), nil, Overrides{"zzz": {}, "aaa": {}})
	if !errors.Is(err, ErrUnknownContribution) {
		t.Fatalf("expected ErrUnknownContribution, got %v", err)
	}
	if err.Error() != "unknown contribution: employer aaa, zzz" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if recorder.computations != 0 {
		t.Fatal("rejected computation must not be recorded")
	}
}

func TestServiceNilRecorder(t *testing.T) {
	svc := NewService(DefaultSchedule(), nil, nil)
	if _, err := svc.Compute(DefaultInputs(), nil, nil); err != nil {
		t.Fatalf("compute: %v", err)
	}
}

func TestRenderPayslip(t *testing.T) {
	svc := newTestService(nil)
	in := sampleInputs()
	summary, err := svc.Compute(in, nil, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	pdf, err := svc.RenderPayslip(in, summary)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatalf("expected PDF header, got %q", pdf[:min(len(pdf), 8)])
	}
}

func TestServiceComputeMergesAliasedOverrides(t *testing.T) {
	svc := newTestService(nil)
	in := DefaultInputs()
	want := ComputePayroll(in, Overrides{NameCRDS: {Rate: ptr(0.01), Base: ptr(1000)}}, nil)

	for i := 0; i < 50; i++ {
		summary, err := svc.Compute(in, Overrides{"CRDS": {Rate: ptr(0.01)}, "crds": {Base: ptr(1000)}}, nil)
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		line, _ := summary.Employee(NameCRDS)
		if line.Base != 1000 || line.Rate != 0.01 {
			t.Fatalf("run %d: expected both overrides applied, got %+v", i, line)
		}
		if summary.NetPay != want.NetPay {
			t.Fatalf("run %d: expected net %v, got %v", i, want.NetPay, summary.NetPay)
		}
	}
}

func TestServiceComputeRejectsConflictingAliases(t *testing.T) {
	recorder := &countingRecorder{}
	svc := newTestService(recorder)
	_, err := svc.Compute(DefaultInputs(), nil, Overrides{"AT/MP": {Rate: ptr(0.02)}, "at_mp": {Rate: ptr(0.03)}})
	if !errors.Is(err, ErrConflictingOverride) {
		t.Fatalf("expected ErrConflictingOverride, got %v", err)
	}
	if !strings.Contains(err.Error(), `"AT/MP" and "at_mp"`) {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if recorder.computations != 0 {
		t.Fatalf("expected no recorded computation, got %d", recorder.computations)
	}

	if _, err := svc.Compute(DefaultInputs(), nil, Overrides{"AT/MP": {Rate: ptr(0.02)}, "at_mp": {Rate: ptr(0.02)}}); err != nil {
		t.Fatalf("expected identical aliased values to be accepted, got %v", err)
	}
}
