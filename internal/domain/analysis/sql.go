package analysis

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value stores the list as a JSON array.
func (l SuggestionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a JSON array column.
func (l *SuggestionList) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*l = SuggestionList{}
		return nil
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("cannot scan %T into SuggestionList", src)
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return fmt.Errorf("suggested_brands column: %w", err)
	}
	*l = SuggestionList(out)
	return nil
}
