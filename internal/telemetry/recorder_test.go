package telemetry

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestRecorderSnapshot(t *testing.T) {
	recorder := NewRecorder(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if snapshot := recorder.Snapshot(); snapshot.TotalRequests != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snapshot)
	}

	wake := recorder.StartRequest("wake", "req-1")
	if wake == nil {
		t.Fatalf("expected request metrics")
	}
	wake.RecordWake(true, "greeting")
	wake.RecordSynthesis(128, nil)
	wake.Finish(nil)

	strike := recorder.StartRequest("wake", "req-2")
	strike.RecordWake(true, "hyanguk_1")
	strike.Finish(nil)

	reset := recorder.StartRequest("wake", "req-3")
	reset.RecordWake(true, "hyanguk_2")
	reset.Finish(nil)

	quiet := recorder.StartRequest("wake", "req-4")
	quiet.RecordWake(false, "none")
	quiet.Finish(nil)

	bible := recorder.StartRequest("bible", "req-5")
	bible.RecordPassage("1절. 태초에")
	bible.RecordSynthesis(0, errors.New("boom"))
	time.Sleep(2 * time.Millisecond)
	bible.Finish(nil)

	failed := recorder.StartRequest("bible", "req-6")
	failed.RecordParseFailure("no_book")
	failed.Finish(nil)

	missing := recorder.StartRequest("bible", "req-7")
	missing.RecordLookupFailure("chapter_not_found")
	missing.Finish(nil)

	recorder.RecordManualReset()

	snapshot := recorder.Snapshot()
	want := Snapshot{
		TotalRequests:   7,
		ActiveRequests:  0,
		WakeDetected:    3,
		Greetings:       1,
		Strikes:         2,
		StrikeResets:    1,
		ManualResets:    1,
		BibleRequests:   3,
		PassagesRead:    1,
		ParseFailures:   1,
		LookupFailures:  1,
		SynthesisErrors: 1,
	}
	if snapshot != want {
		t.Fatalf("unexpected snapshot:\n got %+v\nwant %+v", snapshot, want)
	}

	bible.Finish(nil)
	if snapshot2 := recorder.Snapshot(); snapshot2.ActiveRequests != 0 {
		t.Fatalf("double finish changed active requests: %+v", snapshot2)
	}
}

func TestRequestFinishWithError(t *testing.T) {
	recorder := NewRecorder(slog.New(slog.NewTextHandler(io.Discard, nil)))
	req := recorder.StartRequest("bible", "r")
	req.Finish(io.EOF)

	snapshot := recorder.Snapshot()
	if snapshot.TotalRequests != 1 || snapshot.ActiveRequests != 0 || snapshot.FailedRequests != 1 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var recorder *Recorder
	req := recorder.StartRequest("wake", "r")
	req.RecordWake(true, "greeting")
	req.Finish(nil)
	recorder.RecordManualReset()
	if recorder.Snapshot() != (Snapshot{}) {
		t.Fatal("expected empty snapshot from nil recorder")
	}
}
