// Package tts synthesizes speech with Google Cloud Text-to-Speech and caches the audio.
package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

const (
	defaultEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"
	mimeTypeMP3     = "audio/mpeg"
	requestTimeout  = 10 * time.Second
)

// Client calls the Google TTS REST API. Results are cached, failures are not.
type Client struct {
	apiKey     string
	endpoint   string
	cache      Cache
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(apiKey string, cache Cache, logger *zap.Logger) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		cache:    cache,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// Synthesize returns MP3 audio for the utterance.
func (c *Client) Synthesize(ctx context.Context, u entities.Utterance) ([]byte, string, error) {
	key := CacheKey(u)

	data, err := c.cache.Get(ctx, key)
	if err == nil {
		return data, mimeTypeMP3, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("tts cache read failed", zap.String("key", key), zap.Error(err))
	}

	data, err = c.callGoogleTTS(ctx, u)
	if err != nil {
		return nil, "", err
	}

	if err := c.cache.Set(ctx, key, data); err != nil {
		c.logger.Warn("tts cache write failed", zap.String("key", key), zap.Error(err))
	}

	return data, mimeTypeMP3, nil
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		SSMLGender   string `json:"ssmlGender"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate,omitempty"`
	} `json:"audioConfig"`
}

func (c *Client) callGoogleTTS(ctx context.Context, u entities.Utterance) ([]byte, error) {
	var reqBody synthesizeRequest
	reqBody.Input.Text = u.Text
	reqBody.Voice.LanguageCode = u.Lang.String()
	reqBody.Voice.SSMLGender = "FEMALE"
	reqBody.AudioConfig.AudioEncoding = "MP3"
	reqBody.AudioConfig.SpeakingRate = u.Rate

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+c.apiKey, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts api error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}

	return audio, nil
}
