package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Genres is an ordered list of genre names stored as a JSON array column.
// A nil list is written as an empty array so the column is never NULL.
type Genres []string

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("model.Genres: unsupported source type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("model.Genres: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*g = out
	return nil
}
