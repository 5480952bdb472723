package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

type fakeSynth struct {
	calls []entities.Utterance
	err   error
}

func (f *fakeSynth) Synthesize(_ context.Context, u entities.Utterance) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	f.calls = append(f.calls, u)
	return []byte(u.Text), "audio/mpeg", nil
}

func TestSpeechPhrases(t *testing.T) {
	svc := NewSpeechService(nil, 0, zap.NewNop())
	n := entities.NumberWord{Value: 21, Word: "twenty one"}

	prompt := svc.Prompt(n)
	if len(prompt) != 2 {
		t.Fatalf("Prompt returned %d utterances, want 2", len(prompt))
	}
	if prompt[0].Text != "twenty one" || prompt[0].Lang != language.AmericanEnglish {
		t.Errorf("english utterance = %+v", prompt[0])
	}
	if prompt[1].Text != "ยี่สิบเอ็ด" || prompt[1].Lang.String() != "th-TH" {
		t.Errorf("thai utterance = %+v", prompt[1])
	}
	if prompt[0].Rate != 0.9 {
		t.Errorf("default rate = %v, want 0.9", prompt[0].Rate)
	}

	if got := svc.Praise(n)[0].Text; got != "Great! twenty one" {
		t.Errorf("Praise = %q", got)
	}
	if got := svc.Correction(n)[0].Text; got != "Let's try again. The correct answer is twenty one" {
		t.Errorf("Correction = %q", got)
	}
}

func TestSpeakDisabled(t *testing.T) {
	svc := NewSpeechService(nil, 1, zap.NewNop())
	if svc.Enabled() {
		t.Fatal("speech enabled without a synthesizer")
	}

	_, err := svc.Speak(context.Background(), svc.Praise(entities.NumberWord{Value: 1, Word: "one"}))
	if !errors.Is(err, ErrSpeechUnavailable) {
		t.Fatalf("Speak error = %v, want ErrSpeechUnavailable", err)
	}
}

func TestSpeak(t *testing.T) {
	synth := &fakeSynth{}
	svc := NewSpeechService(synth, 1.2, zap.NewNop())

	audio, err := svc.Speak(context.Background(), svc.Prompt(entities.NumberWord{Value: 3, Word: "three"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(audio) != 2 || len(synth.calls) != 2 {
		t.Fatalf("got %d audio parts, %d calls", len(audio), len(synth.calls))
	}
	if string(audio[0].Data) != "three" || audio[0].MIMEType != "audio/mpeg" {
		t.Fatalf("first part = %+v", audio[0])
	}
	if synth.calls[1].Rate != 1.2 {
		t.Fatalf("rate = %v, want 1.2", synth.calls[1].Rate)
	}

	boom := errors.New("boom")
	synth.err = boom
	if _, err := svc.Speak(context.Background(), svc.Praise(entities.NumberWord{Value: 3, Word: "three"})); !errors.Is(err, boom) {
		t.Fatalf("Speak error = %v, want wrapped boom", err)
	}
}
