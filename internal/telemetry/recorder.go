package telemetry

import (
	"log/slog"
	"sync/atomic"
	"time"
	"unicode/utf8"
)

// Recorder tracks kiosk-level telemetry across all requests.
type Recorder struct {
	log *slog.Logger

	totalRequests   atomic.Uint64
	activeRequests  atomic.Int64
	failedRequests  atomic.Uint64
	wakeDetected    atomic.Uint64
	greetings       atomic.Uint64
	strikes         atomic.Uint64
	strikeResets    atomic.Uint64
	manualResets    atomic.Uint64
	bibleRequests   atomic.Uint64
	passagesRead    atomic.Uint64
	parseFailures   atomic.Uint64
	lookupFailures  atomic.Uint64
	synthesisErrors atomic.Uint64
}

// Snapshot captures cumulative metrics recorded so far.
type Snapshot struct {
	TotalRequests   uint64
	ActiveRequests  int64
	FailedRequests  uint64
	WakeDetected    uint64
	Greetings       uint64
	Strikes         uint64
	StrikeResets    uint64
	ManualResets    uint64
	BibleRequests   uint64
	PassagesRead    uint64
	ParseFailures   uint64
	LookupFailures  uint64
	SynthesisErrors uint64
}

// NewRecorder constructs a Recorder using the provided logger.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		log: logger.With("component", "telemetry.Recorder"),
	}
}

// Snapshot returns an immutable view of the recorder totals.
func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		TotalRequests:   r.totalRequests.Load(),
		ActiveRequests:  r.activeRequests.Load(),
		FailedRequests:  r.failedRequests.Load(),
		WakeDetected:    r.wakeDetected.Load(),
		Greetings:       r.greetings.Load(),
		Strikes:         r.strikes.Load(),
		StrikeResets:    r.strikeResets.Load(),
		ManualResets:    r.manualResets.Load(),
		BibleRequests:   r.bibleRequests.Load(),
		PassagesRead:    r.passagesRead.Load(),
		ParseFailures:   r.parseFailures.Load(),
		LookupFailures:  r.lookupFailures.Load(),
		SynthesisErrors: r.synthesisErrors.Load(),
	}
}

// RecordManualReset counts an externally requested strike reset.
func (r *Recorder) RecordManualReset() {
	if r == nil {
		return
	}
	r.manualResets.Add(1)
}

// RequestMetrics accumulates statistics for a single kiosk request.
type RequestMetrics struct {
	recorder *Recorder
	log      *slog.Logger

	started   time.Time
	outcome   string
	textRunes int
	audio     int
	closed    atomic.Bool
}

// StartRequest initialises a RequestMetrics instance bound to the recorder.
func (r *Recorder) StartRequest(kind, requestID string) *RequestMetrics {
	if r == nil {
		return nil
	}

	r.totalRequests.Add(1)
	r.activeRequests.Add(1)
	if kind == "bible" {
		r.bibleRequests.Add(1)
	}

	return &RequestMetrics{
		recorder: r,
		log:      r.log.With("kind", kind, "request_id", requestID),
		started:  time.Now(),
	}
}

// RecordWake stores the outcome of a wake evaluation: the action name chosen
// by the interaction machine.
func (m *RequestMetrics) RecordWake(detected bool, action string) {
	if m == nil {
		return
	}
	m.outcome = action
	if !detected {
		return
	}
	m.recorder.wakeDetected.Add(1)
	switch action {
	case "greeting":
		m.recorder.greetings.Add(1)
	case "hyanguk_1":
		m.recorder.strikes.Add(1)
	case "hyanguk_2":
		m.recorder.strikes.Add(1)
		m.recorder.strikeResets.Add(1)
	}
}

// RecordPassage counts a successfully resolved passage.
func (m *RequestMetrics) RecordPassage(text string) {
	if m == nil {
		return
	}
	m.outcome = "passage"
	m.textRunes = utf8.RuneCountInString(text)
	m.recorder.passagesRead.Add(1)
}

// RecordParseFailure counts a transcript that did not yield a reference.
func (m *RequestMetrics) RecordParseFailure(reason string) {
	if m == nil {
		return
	}
	m.outcome = "parse_failure:" + reason
	m.recorder.parseFailures.Add(1)
}

// RecordLookupFailure counts a reference the corpus could not satisfy.
func (m *RequestMetrics) RecordLookupFailure(reason string) {
	if m == nil {
		return
	}
	m.outcome = "lookup_failure:" + reason
	m.recorder.lookupFailures.Add(1)
}

// RecordSynthesis stores the size of synthesized audio, or counts the failure.
func (m *RequestMetrics) RecordSynthesis(size int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.recorder.synthesisErrors.Add(1)
		m.log.Warn("speech synthesis failed", "error", err)
		return
	}
	m.audio = size
}

// Finish logs a summary and updates active request counters. A non-nil err
// counts the request as failed.
func (m *RequestMetrics) Finish(err error) {
	if m == nil {
		return
	}
	if !m.closed.CompareAndSwap(false, true) {
		return
	}

	defer m.recorder.activeRequests.Add(-1)

	args := []any{
		"duration_ms", time.Since(m.started).Milliseconds(),
		"outcome", m.outcome,
		"text_runes", m.textRunes,
		"audio_bytes", m.audio,
	}

	if err != nil {
		m.recorder.failedRequests.Add(1)
		m.log.Error("request completed with error", append(args, "error", err)...)
		return
	}

	m.log.Info("request completed", args...)
}
