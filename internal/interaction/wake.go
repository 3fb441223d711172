package interaction

import "strings"

// DefaultWakeWords lists the wake phrase and the variants the recognizer
// commonly produces for it.
var DefaultWakeWords = []string{
	"헤이 은석", "헤이은석", "hey 은석", "헤이 은서", "에이 은석",
	"애이 은석", "헤이 응석", "헤이은서", "헤이 은숙", "헤이 인석",
	"이 은석", "헤이 윤석", "hey inseok", "hey insuk",
}

var wakeCleaner = strings.NewReplacer(" ", "", "?", "", "!", "")

// WakeDetector reports whether a transcript contains a wake phrase.
type WakeDetector struct {
	phrases []string
}

// NewWakeDetector builds a detector over phrases, or DefaultWakeWords when
// phrases is empty.
func NewWakeDetector(phrases []string) *WakeDetector {
	if len(phrases) == 0 {
		phrases = DefaultWakeWords
	}
	d := &WakeDetector{phrases: make([]string, 0, len(phrases))}
	for _, p := range phrases {
		if cleaned := cleanWake(p); cleaned != "" {
			d.phrases = append(d.phrases, cleaned)
		}
	}
	return d
}

// Detect lowercases the transcript, drops spaces and ? ! marks, and looks for
// any phrase as a substring.
func (d *WakeDetector) Detect(transcript string) bool {
	text := cleanWake(transcript)
	if text == "" {
		return false
	}
	for _, p := range d.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func cleanWake(s string) string {
	return wakeCleaner.Replace(strings.ToLower(s))
}
