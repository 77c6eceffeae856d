package ctbs

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The provider is loose with scalar typing: the same field may arrive as
// 1, "1", true or "true" depending on endpoint and on whether the response
// came back as JSON or converted XML. These types absorb that once, at the
// unmarshal boundary, so the rest of the codebase only ever sees Go types.

type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "1", "true", "yes":
		*b = true
	default:
		*b = false
	}

	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (b FlexBool) Bool() bool {
	return bool(b)
}

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*f = 0
		return nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*f = 0
		return nil
	}

	*f = FlexFloat(parsed)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(f))
}

func (f FlexFloat) Float64() float64 {
	return float64(f)
}

type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}

	*i = FlexInt(int(f))
	return nil
}

func (i FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(i))
}

func (i FlexInt) Int() int {
	return int(i)
}

// FlexString accepts both quoted strings and bare numbers (order and point
// identifiers arrive as either).
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	value := string(data)
	if value == "null" {
		*s = ""
		return nil
	}

	var unquoted string
	if err := json.Unmarshal(data, &unquoted); err == nil {
		*s = FlexString(unquoted)
		return nil
	}

	*s = FlexString(value)
	return nil
}

func (s FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s FlexString) String() string {
	return string(s)
}
