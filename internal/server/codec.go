package server

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/heyeunseok/scripture-kiosk/internal/scripture"
	"github.com/heyeunseok/scripture-kiosk/internal/telemetry"
)

// WakeRequest is the payload of ProcessWake.
type WakeRequest struct {
	Transcript string  `json:"transcript"`
	Speaker    string  `json:"speaker,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// BibleRequest is the payload of ProcessBible and ParseTranscript.
type BibleRequest struct {
	Transcript string `json:"transcript"`
}

// LookupRequest is the payload of LookupVerse.
type LookupRequest struct {
	Book     string `json:"book"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	VerseEnd int    `json:"verse_end,omitempty"`
}

// SynthesizeRequest is the payload of Synthesize.
type SynthesizeRequest struct {
	Text string `json:"text"`
}

// Reply is the response payload shared by every method. Audio travels as a
// base64 string inside the Struct.
type Reply struct {
	RequestID  string               `json:"request_id,omitempty"`
	Speaker    string               `json:"speaker,omitempty"`
	Confidence float64              `json:"confidence,omitempty"`
	Transcript string               `json:"transcript,omitempty"`
	WakeWord   bool                 `json:"wake_word"`
	Text       string               `json:"text,omitempty"`
	Audio      []byte               `json:"audio,omitempty"`
	Action     string               `json:"action,omitempty"`
	Reference  *scripture.Reference `json:"reference,omitempty"`
	Book       string               `json:"book,omitempty"`
	Error      string               `json:"error,omitempty"`
	Strikes    int                  `json:"strikes"`
	Metadata   map[string]string    `json:"metadata,omitempty"`
}

// InfoReply is the response payload of Info.
type InfoReply struct {
	Service   string             `json:"service"`
	Version   string             `json:"version"`
	Bible     scripture.Info     `json:"bible"`
	Strikes   int                `json:"strikes"`
	Telemetry telemetry.Snapshot `json:"telemetry"`
}

// toStruct converts v to a Struct through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("server: marshal payload: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("server: payload is not an object: %w", err)
	}
	return structpb.NewStruct(fields)
}

// fromStruct decodes s into v through its JSON form. A nil Struct decodes as
// an empty object.
func fromStruct(s *structpb.Struct, v any) error {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("server: marshal struct: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("server: decode payload: %w", err)
	}
	return nil
}
