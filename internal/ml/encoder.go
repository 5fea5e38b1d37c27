package ml

import (
	"encoding/json"
	"sort"
	"sync/atomic"
)

// FallbackCode is the code assigned to categorical values that were not seen
// during fitting. Unseen values degrade to the default bucket instead of
// failing the request.
const FallbackCode = 0

// A LabelEncoder maps categorical string values to integer codes. The code
// assignment is fixed at fit time and stable for the lifetime of the fitted
// instance; every refit may reassign codes.
type LabelEncoder struct {
	// Classes holds the distinct values seen at fit time, in code order.
	Classes []string `json:"classes"`

	codes       map[string]int
	unseenCount atomic.Uint64
}

// FitLabelEncoder assigns codes over the sorted unique values of the input.
func FitLabelEncoder(values []string) *LabelEncoder {
	seen := make(map[string]bool)
	var classes []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)

	enc := &LabelEncoder{Classes: classes}
	enc.buildCodes()
	return enc
}

func (e *LabelEncoder) buildCodes() {
	e.codes = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		e.codes[c] = i
	}
}

// Encode returns the learned code for a value, or FallbackCode if the value
// was not seen during fitting.
func (e *LabelEncoder) Encode(value string) int {
	if code, ok := e.codes[value]; ok {
		return code
	}
	e.unseenCount.Add(1)
	return FallbackCode
}

// UnseenCount reports how many encode calls fell back to the default bucket
// since this encoder was fitted or loaded.
func (e *LabelEncoder) UnseenCount() uint64 {
	return e.unseenCount.Load()
}

// MarshalJSON implements json.Marshaler.
func (e *LabelEncoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Classes []string `json:"classes"`
	}{Classes: e.Classes})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *LabelEncoder) UnmarshalJSON(data []byte) error {
	var aux struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Classes = aux.Classes
	e.buildCodes()
	return nil
}
