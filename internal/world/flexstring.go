package world

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexString is a string field that datasets sometimes store as a bare
// number (zip codes are the known offender). It always normalizes to a
// string on decode and marshals back as a string.
type FlexString string

// UnmarshalJSON accepts a JSON string, number or null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode flex string: %w", err)
	}
	switch t := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = FlexString(t)
	case json.Number:
		*f = FlexString(t.String())
	default:
		return fmt.Errorf("flex string: unsupported JSON type %T", v)
	}
	return nil
}

// Norm returns the trimmed string form used for comparisons.
func (f FlexString) Norm() string {
	return strings.TrimSpace(string(f))
}

func (f FlexString) String() string {
	return string(f)
}
