package voice

import "context"

// Synthesizer turns kiosk text into audio. Implementations wrap an external
// speech synthesis model; the kiosk only forwards text and relays bytes.
type Synthesizer interface {
	// Synthesize renders text and returns encoded audio. A nil slice with a nil
	// error means the synthesizer has nothing to say, e.g. no reference voice.
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)
	// Close releases underlying resources.
	Close() error
}

// Options configures one synthesis call.
type Options struct {
	Language string
	// Purpose labels the utterance ("greeting", "bible") for logging.
	Purpose string
}
