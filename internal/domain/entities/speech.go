package entities

import "golang.org/x/text/language"

// Utterance is a piece of text to be spoken in a given language.
type Utterance struct {
	Text string
	Lang language.Tag
	Rate float64 // speaking rate, 1.0 is normal speed
}

// Audio is a synthesized utterance.
type Audio struct {
	Utterance Utterance
	Data      []byte
	MIMEType  string
}
