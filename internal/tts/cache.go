package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
)

const audioFormat = "mp3"

var ErrCacheMiss = errors.New("tts cache miss")

// Cache stores synthesized audio by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{M}\p{N}]+`)

// CacheKey returns the cache key of an utterance: sha256 of "text|rate|format|locale".
// Text is lowercased and stripped of punctuation and spaces first, so
// "Great! one" and "great one" share audio.
func CacheKey(u entities.Utterance) string {
	text := nonWord.ReplaceAllString(strings.ToLower(u.Text), "")
	rate := strconv.FormatFloat(u.Rate, 'f', 2, 64)
	raw := fmt.Sprintf("%s|%s|%s|%s", text, rate, audioFormat, u.Lang)

	hash := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(hash[:])
}
