package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// JSONTime accepts the timestamp shapes that show up in survey headers and
// vendor exports: RFC3339, bare dates, and the dd-MMM-yyyy style service
// companies like. It marshals back out as RFC3339.
type JSONTime struct {
	time.Time
}

var jsonTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02-Jan-2006",
	"2-Jan-2006",
}

func (jt *JSONTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		jt.Time = time.Time{}
		return nil
	}
	for _, layout := range jsonTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			jt.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported time format: %s", s)
}

func (jt JSONTime) MarshalJSON() ([]byte, error) {
	if jt.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + jt.Time.Format(time.RFC3339) + `"`), nil
}

// Value implements driver.Valuer so GORM can write the wrapped time.
func (jt JSONTime) Value() (driver.Value, error) {
	if jt.Time.IsZero() {
		return nil, nil
	}
	return jt.Time, nil
}

// Scan implements sql.Scanner.
func (jt *JSONTime) Scan(value interface{}) error {
	if value == nil {
		jt.Time = time.Time{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		jt.Time = v
		return nil
	case []byte:
		return jt.UnmarshalJSON(v)
	case string:
		return jt.UnmarshalJSON([]byte(v))
	}
	return fmt.Errorf("cannot scan %T into JSONTime", value)
}

// ParseFlexibleTime parses s with the same layouts JSONTime accepts.
// Loaders use it for cell values that never pass through JSON.
func ParseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range jsonTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %s", s)
}
