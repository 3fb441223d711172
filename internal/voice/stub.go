package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/heyeunseok/scripture-kiosk/internal/kioskinfo"
)

// ErrEmptyText is returned when there is nothing to synthesize.
var ErrEmptyText = errors.New("voice: empty text")

// StubSynthesizer produces deterministic placeholder audio without invoking a model.
type StubSynthesizer struct {
	log *slog.Logger
}

// NewStubSynthesizer returns a Synthesizer that emits placeholder payloads.
func NewStubSynthesizer(logger *slog.Logger) *StubSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubSynthesizer{
		log: logger.With(
			"component", "voice.stub",
			"module", kioskinfo.Info.Slug,
		),
	}
}

// Synthesize implements the Synthesizer interface.
func (s *StubSynthesizer) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyText
	}
	runes := utf8.RuneCountInString(text)
	s.log.Debug("stub synthesis", "purpose", opts.Purpose, "runes", runes)
	return []byte(fmt.Sprintf("[stub:%s] %d runes", normaliseLanguage(opts.Language), runes)), nil
}

// Close implements the Synthesizer interface.
func (s *StubSynthesizer) Close() error { return nil }

// SilentSynthesizer never produces audio. Responses built with it carry text only.
type SilentSynthesizer struct{}

// Synthesize implements the Synthesizer interface.
func (SilentSynthesizer) Synthesize(context.Context, string, Options) ([]byte, error) {
	return nil, nil
}

// Close implements the Synthesizer interface.
func (SilentSynthesizer) Close() error { return nil }

// New returns the synthesizer selected by configuration. No native backend is
// compiled in, so the choice is between placeholder audio and none.
func New(useStub bool, logger *slog.Logger) Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	if useStub {
		logger.Warn("stub synthesizer forced by configuration")
		return NewStubSynthesizer(logger)
	}
	logger.Info("no speech synthesizer configured; responses carry text only")
	return SilentSynthesizer{}
}

func normaliseLanguage(candidate string) string {
	if candidate == "" {
		return "ko"
	}
	return candidate
}
