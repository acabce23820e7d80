package league

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Score is a submitted game score. Clients may send a JSON number or a numeric
// string; anything that does not parse to a finite number leaves Valid false.
type Score struct {
	Value float64
	Valid bool
}

// NewScore returns a valid score holding v.
func NewScore(v float64) Score {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Score{}
	}
	return Score{Value: v, Valid: true}
}

// UnmarshalJSON never fails: invalid input is reported later by validation.
func (s *Score) UnmarshalJSON(data []byte) error {
	*s = Score{}
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
		text = strings.TrimSpace(text)
	}
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	*s = NewScore(v)
	return nil
}

// MarshalJSON writes the value, or null when the score is not valid.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}
