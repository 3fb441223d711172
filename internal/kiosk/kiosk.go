// Package kiosk wires the scripture resolver and the interaction machine into
// the two request flows of the kiosk: wake handling and passage readout.
package kiosk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heyeunseok/scripture-kiosk/internal/interaction"
	"github.com/heyeunseok/scripture-kiosk/internal/scripture"
	"github.com/heyeunseok/scripture-kiosk/internal/telemetry"
	"github.com/heyeunseok/scripture-kiosk/internal/voice"
)

// ActionBible is the action reported for passage requests.
const ActionBible = "bible"

// SynthesisFailedText is reported to callers when standalone synthesis fails.
const SynthesisFailedText = "TTS 실패"

var (
	// ErrEmptyText is returned by Synthesize for blank input.
	ErrEmptyText = errors.New("kiosk: text is empty")
	// ErrSynthesisFailed is returned by Synthesize when no audio was produced.
	ErrSynthesisFailed = errors.New("kiosk: synthesis produced no audio")
)

// Response is the outcome of one kiosk request. Text is always set for
// greetings and passage requests; Audio is set only when synthesis produced output.
type Response struct {
	RequestID  string
	Speaker    string
	Confidence float64
	Transcript string
	WakeWord   bool
	Text       string
	Audio      []byte
	Action     string
	Reference  *scripture.Reference
}

// Options configures a Service. Nil fields get defaults.
type Options struct {
	Parser      *scripture.Parser
	Store       *scripture.Store
	Machine     *interaction.Machine
	Wake        *interaction.WakeDetector
	Synthesizer voice.Synthesizer
	Recorder    *telemetry.Recorder
	Language    string
	Logger      *slog.Logger
}

// Service is safe for concurrent use. The store and tables are read-only;
// the strike counter inside Machine serialises its own updates.
type Service struct {
	parser   *scripture.Parser
	store    *scripture.Store
	machine  *interaction.Machine
	wake     *interaction.WakeDetector
	synth    voice.Synthesizer
	metrics  *telemetry.Recorder
	language string
	log      *slog.Logger
}

// New returns a Service.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		parser:   opts.Parser,
		store:    opts.Store,
		machine:  opts.Machine,
		wake:     opts.Wake,
		synth:    opts.Synthesizer,
		metrics:  opts.Recorder,
		language: opts.Language,
		log:      logger.With("component", "kiosk"),
	}
	if s.parser == nil {
		s.parser = scripture.NewParser(logger)
	}
	if s.store == nil {
		s.store = scripture.UnloadedStore("")
	}
	if s.machine == nil {
		s.machine = interaction.NewMachine(logger)
	}
	if s.wake == nil {
		s.wake = interaction.NewWakeDetector(nil)
	}
	if s.synth == nil {
		s.synth = voice.SilentSynthesizer{}
	}
	if s.metrics == nil {
		s.metrics = telemetry.NewRecorder(logger)
	}
	return s
}

// ProcessWake checks transcript for a wake word and lets the interaction
// machine decide how to react to speaker.
func (s *Service) ProcessWake(ctx context.Context, requestID, transcript string, speaker interaction.Speaker, confidence float64) Response {
	metrics := s.metrics.StartRequest("wake", requestID)
	var synthErr error
	defer func() { metrics.Finish(synthErr) }()

	wake := s.wake.Detect(transcript)
	decision := s.machine.Handle(wake, speaker)
	metrics.RecordWake(wake, decision.Action.String())

	resp := Response{
		RequestID:  requestID,
		Speaker:    speaker.String(),
		Confidence: confidence,
		Transcript: transcript,
		WakeWord:   wake,
		Action:     decision.Action.String(),
	}
	s.log.Debug("wake evaluated",
		"request_id", requestID,
		"speaker", resp.Speaker,
		"confidence", confidence,
		"wake_word", wake,
		"action", resp.Action,
	)

	if decision.Action != interaction.ActionGreet {
		return resp
	}
	resp.Text = decision.Greeting
	resp.Audio, synthErr = s.speak(ctx, metrics, resp.Text, "greeting")
	return resp
}

// ProcessBible resolves transcript to a passage and returns the passage text,
// or the sentence explaining why it could not be read.
func (s *Service) ProcessBible(ctx context.Context, requestID, transcript string) Response {
	metrics := s.metrics.StartRequest(ActionBible, requestID)
	var synthErr error
	defer func() { metrics.Finish(synthErr) }()

	resp := Response{
		RequestID:  requestID,
		Transcript: transcript,
		Action:     ActionBible,
	}

	ref, text, err := s.Resolve(transcript)
	switch {
	case err == nil:
		metrics.RecordPassage(text)
		s.log.Info("passage resolved", "request_id", requestID, "reference", ref.String())
	case isParseError(err):
		metrics.RecordParseFailure(parseReason(err))
		s.log.Info("transcript not recognised", "request_id", requestID, "transcript", transcript, "error", err)
	default:
		metrics.RecordLookupFailure(lookupReason(err))
		s.log.Info("passage unavailable", "request_id", requestID, "reference", ref.String(), "error", err)
	}
	if !isParseError(err) {
		resp.Reference = &ref
	}
	resp.Text = text
	resp.Audio, synthErr = s.speak(ctx, metrics, text, ActionBible)
	return resp
}

// Synthesize speaks arbitrary text. Unlike the request flows it fails when
// no audio comes back, wrapping ErrSynthesisFailed.
func (s *Service) Synthesize(ctx context.Context, requestID, text string) (audio []byte, err error) {
	metrics := s.metrics.StartRequest("tts", requestID)
	defer func() { metrics.Finish(err) }()

	if text == "" {
		return nil, ErrEmptyText
	}
	audio, err = s.speak(ctx, metrics, text, "tts")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}
	if len(audio) == 0 {
		return nil, ErrSynthesisFailed
	}
	return audio, nil
}

// Resolve parses transcript and looks the reference up. The returned text is
// never empty: on failure it is the user-facing explanation of err.
func (s *Service) Resolve(transcript string) (scripture.Reference, string, error) {
	ref, err := s.parser.Parse(transcript)
	if err != nil {
		return scripture.Reference{}, scripture.Message(err), err
	}
	text, err := s.store.Lookup(ref)
	if err != nil {
		return ref, scripture.Message(err), err
	}
	return ref, text, nil
}

// LookupVerse resolves bookName through the alias table and reads the given
// verses. It fails with scripture.ErrNoBookMatched when no alias matches.
func (s *Service) LookupVerse(bookName string, chapter, verse, verseEnd int) (scripture.Reference, string, error) {
	if !s.store.Loaded() {
		return scripture.Reference{}, scripture.Message(scripture.ErrDataNotLoaded), scripture.ErrDataNotLoaded
	}
	book, ok := s.parser.Books().FindBook(bookName)
	if !ok {
		return scripture.Reference{}, scripture.Message(scripture.ErrNoBookMatched), scripture.ErrNoBookMatched
	}
	ref := scripture.Reference{Book: book, Chapter: chapter, VerseStart: verse, VerseEnd: verseEnd}
	text, err := s.store.Lookup(ref)
	if err != nil {
		return ref, scripture.Message(err), err
	}
	return ref, text, nil
}

// ResetStrikes zeroes the blocked-speaker strike counter.
func (s *Service) ResetStrikes() {
	s.machine.Reset()
	s.metrics.RecordManualReset()
}

// Strikes returns the current strike count.
func (s *Service) Strikes() int {
	return s.machine.Strikes()
}

// Info reports corpus state.
func (s *Service) Info() scripture.Info {
	return s.store.Info()
}

// Telemetry returns cumulative request counters.
func (s *Service) Telemetry() telemetry.Snapshot {
	return s.metrics.Snapshot()
}

// speak returns nil audio on failure; callers decide whether that is fatal.
func (s *Service) speak(ctx context.Context, metrics *telemetry.RequestMetrics, text, purpose string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}
	audio, err := s.synth.Synthesize(ctx, text, voice.Options{Language: s.language, Purpose: purpose})
	metrics.RecordSynthesis(len(audio), err)
	if err != nil {
		return nil, err
	}
	return audio, nil
}

func isParseError(err error) bool {
	return errors.Is(err, scripture.ErrNoBookMatched) || errors.Is(err, scripture.ErrInsufficientNumerals)
}

func parseReason(err error) string {
	if errors.Is(err, scripture.ErrNoBookMatched) {
		return "no_book"
	}
	return "insufficient_numerals"
}

func lookupReason(err error) string {
	if errors.Is(err, scripture.ErrDataNotLoaded) {
		return "data_not_loaded"
	}
	var lerr *scripture.LookupError
	if errors.As(err, &lerr) {
		return lerr.Kind.String()
	}
	return "unknown"
}
