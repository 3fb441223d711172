// Package interaction decides how the kiosk reacts to a wake utterance.
package interaction

import "strings"

// Speaker is the identity resolved by the speaker verification collaborator.
// The set is closed; switches over Speaker are expected to be exhaustive.
type Speaker int

const (
	SpeakerUnknown Speaker = iota
	SpeakerJiwon
	SpeakerMoksa
	// SpeakerHyanguk is the blocked identity. Wake words from this speaker
	// count as strikes and are never greeted.
	SpeakerHyanguk
)

// ParseSpeaker maps a verification label to a Speaker. Unrecognised labels
// resolve to SpeakerUnknown.
func ParseSpeaker(label string) Speaker {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "jiwon", "me":
		return SpeakerJiwon
	case "moksa":
		return SpeakerMoksa
	case "hyanguk":
		return SpeakerHyanguk
	default:
		return SpeakerUnknown
	}
}

func (s Speaker) String() string {
	switch s {
	case SpeakerJiwon:
		return "jiwon"
	case SpeakerMoksa:
		return "moksa"
	case SpeakerHyanguk:
		return "hyanguk"
	case SpeakerUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

const (
	greetingJiwon   = "네, 안녕하세요 지원 청년! 찾으시는 성경 구절을 말씀해주세요."
	greetingMoksa   = "네, 안녕하세요 목사님! 찾으시는 성경 구절을 말씀해주세요."
	greetingDefault = "네, 안녕하세요! 찾으시는 성경 구절을 말씀해주세요."
)

// Greeting returns the text spoken to s after a wake word. The blocked
// identity has no greeting.
func Greeting(s Speaker) (string, bool) {
	switch s {
	case SpeakerJiwon:
		return greetingJiwon, true
	case SpeakerMoksa:
		return greetingMoksa, true
	case SpeakerHyanguk:
		return "", false
	case SpeakerUnknown:
		return greetingDefault, true
	default:
		return greetingDefault, true
	}
}
