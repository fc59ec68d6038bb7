package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// HeaterChoice is one selectable value inside a heater option group, e.g. {"type":"Premium","price":150}.
type HeaterChoice struct {
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}

// HeaterOptionGroup is a named list of choices ("stones", "controls", ...).
type HeaterOptionGroup struct {
	Key     string         `json:"key"`
	Choices []HeaterChoice `json:"choices"`
}

// HeaterOptions is the heater-specific option schema. Its keys vary per heater, so it is kept as an
// ordered dictionary: the JSON object order is preserved on decode and on encode.
type HeaterOptions []HeaterOptionGroup

// Entries returns the option groups in catalog order.
func (h HeaterOptions) Entries() []HeaterOptionGroup {
	return h
}

// Group returns the choices of the named group.
func (h HeaterOptions) Group(key string) ([]HeaterChoice, bool) {
	for _, g := range h {
		if g.Key == key {
			return g.Choices, true
		}
	}
	return nil, false
}

// Lookup finds the choice whose type matches exactly.
func (h HeaterOptions) Lookup(key, choiceType string) (HeaterChoice, bool) {
	choices, ok := h.Group(key)
	if !ok {
		return HeaterChoice{}, false
	}
	for _, c := range choices {
		if c.Type == choiceType {
			return c, true
		}
	}
	return HeaterChoice{}, false
}

// Set appends a group, or replaces the choices of an existing one in place.
func (h *HeaterOptions) Set(key string, choices []HeaterChoice) {
	for i := range *h {
		if (*h)[i].Key == key {
			(*h)[i].Choices = choices
			return
		}
	}
	*h = append(*h, HeaterOptionGroup{Key: key, Choices: choices})
}

func (h HeaterOptions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Key)
		if err != nil {
			return nil, err
		}
		choices := g.Choices
		if choices == nil {
			choices = []HeaterChoice{}
		}
		value, err := json.Marshal(choices)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (h *HeaterOptions) UnmarshalJSON(data []byte) error {
	*h = HeaterOptions{}
	return DecodeOrderedObject(data, func(key string, dec *json.Decoder) error {
		var choices []HeaterChoice
		if err := dec.Decode(&choices); err != nil {
			return fmt.Errorf("heater options %q: %w", key, err)
		}
		h.Set(key, choices)
		return nil
	})
}

// DecodeOrderedObject walks a JSON object in source order, calling fn with each key and a decoder
// positioned at its value. fn must consume the value. null decodes as an empty object.
func DecodeOrderedObject(data []byte, fn func(key string, dec *json.Decoder) error) error {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}

func (h *HeaterOptions) Scan(value interface{}) error {
	bytes, err := jsonbBytes(value)
	if err != nil {
		return fmt.Errorf("failed to scan HeaterOptions: %w", err)
	}
	if bytes == nil {
		*h = HeaterOptions{}
		return nil
	}
	return h.UnmarshalJSON(bytes)
}

func (h HeaterOptions) Value() (driver.Value, error) {
	return h.MarshalJSON()
}
