package kioskinfo

// Metadata captures static identifiers for the kiosk service.
type Metadata struct {
	Name        string
	BinaryName  string
	Slug        string
	Description string
	Version     string
}

// Info describes the current service.
var Info = Metadata{
	Name:        "Hey Eunseok Scripture Kiosk",
	BinaryName:  "kiosk",
	Slug:        "scripture-kiosk",
	Description: "Voice kiosk core that greets known speakers and reads back scripture passages.",
	Version:     "3.0.0",
}

// ResponseMetadata produces the standard metadata payload attached to kiosk
// responses.
func ResponseMetadata(requestID, corpusDigest string) map[string]string {
	meta := map[string]string{
		"service":    Info.Slug,
		"version":    Info.Version,
		"request_id": requestID,
	}
	if corpusDigest != "" {
		meta["corpus_digest"] = corpusDigest
	}
	return meta
}
