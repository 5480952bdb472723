// Package numerals renders the integers 1..100 as English and Thai cardinal words.
package numerals

import (
	"errors"
	"fmt"
)

const (
	Min = 1   // smallest supported number
	Max = 100 // largest supported number
)

var ErrInvalidArgument = errors.New("number out of range")

func validate(n int) error {
	if n < Min || n > Max {
		return fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidArgument, n, Min, Max)
	}
	return nil
}
