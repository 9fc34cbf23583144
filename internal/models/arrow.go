package models

import (
	"encoding/json"
	"fmt"
)

// ArrowValue is a single arrow score. On the wire it is either a plain number
// or a symbolic marker such as "M" (miss) or "X" (inner ten), matching what
// scoring clients submit.
type ArrowValue struct {
	// Value is the numeric score when the arrow was recorded as a number
	Value int

	// Symbol is the symbolic marker when the arrow was recorded as a string
	Symbol string
}

// Arrow returns a numeric arrow value.
func Arrow(value int) ArrowValue {
	return ArrowValue{Value: value}
}

// ArrowSymbol returns a symbolic arrow value.
func ArrowSymbol(symbol string) ArrowValue {
	return ArrowValue{Symbol: symbol}
}

// MarshalJSON encodes the arrow as a bare number, or as a string when the
// value is symbolic.
func (a ArrowValue) MarshalJSON() ([]byte, error) {
	if a.Symbol != "" {
		return json.Marshal(a.Symbol)
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts either wire form.
func (a *ArrowValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var symbol string
		if err := json.Unmarshal(data, &symbol); err != nil {
			return fmt.Errorf("failed to unmarshal arrow symbol: %w", err)
		}
		a.Value = 0
		a.Symbol = symbol
		return nil
	}

	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal arrow value: %w", err)
	}
	a.Value = value
	a.Symbol = ""
	return nil
}
