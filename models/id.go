package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a backend resource id. Backends send it as a JSON number or a string;
// the console only ever handles it as text.
type ID string

// IDFromInt formats a numeric database id.
func IDFromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

func (id ID) String() string {
	return string(id)
}

// Int64 parses id as a numeric database id.
func (id ID) Int64() (int64, error) {
	return strconv.ParseInt(string(id), 10, 64)
}

// MarshalJSON writes canonical integer ids as JSON numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := id.Int64(); err == nil && IDFromInt(n) == id {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a number, a string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Scan reads an integer or text column.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*id = IDFromInt(v)
	case int:
		*id = IDFromInt(int64(v))
	case string:
		*id = ID(v)
	case []byte:
		*id = ID(v)
	case nil:
		*id = ""
	default:
		return fmt.Errorf("unsupported id column type %T", src)
	}
	return nil
}
