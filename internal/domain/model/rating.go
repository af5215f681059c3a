// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rating is a validated skill rating: a finite number >= 0.
type Rating float64

// NewRating validates v as a rating.
func NewRating(v float64) (Rating, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v is not a finite number", ErrInvalidRating, v)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %v; ratings must be larger than or equal to zero", ErrInvalidRating, v)
	}
	return Rating(v), nil
}

// ParseRating converts a raw ingested value into a Rating. Integers, floats,
// json.Number and decimal strings are accepted; anything else (bool, nil,
// slices, ...) is rejected.
func ParseRating(raw any) (Rating, error) {
	switch v := raw.(type) {
	case Rating:
		return NewRating(float64(v))
	case float64:
		return NewRating(v)
	case float32:
		return NewRating(float64(v))
	case int:
		return NewRating(float64(v))
	case int8:
		return NewRating(float64(v))
	case int16:
		return NewRating(float64(v))
	case int32:
		return NewRating(float64(v))
	case int64:
		return NewRating(float64(v))
	case uint:
		return NewRating(float64(v))
	case uint8:
		return NewRating(float64(v))
	case uint16:
		return NewRating(float64(v))
	case uint32:
		return NewRating(float64(v))
	case uint64:
		return NewRating(float64(v))
	case json.Number:
		return parseRatingString(v.String())
	case string:
		return parseRatingString(v)
	default:
		return 0, fmt.Errorf("%w: cannot convert %T value '%v'; only strings and numbers are allowed", ErrInvalidRating, raw, raw)
	}
}

func parseRatingString(s string) (Rating, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to convert '%s' to a number", ErrInvalidRating, s)
	}
	return NewRating(f)
}

// Float64 returns the rating as a plain float.
func (r Rating) Float64() float64 { return float64(r) }
