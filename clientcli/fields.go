package clientcli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sagarc03/roster"
)

// ParseAssignments builds fields from key=value arguments.
// Values are sent as strings. A key given twice keeps the last value.
func ParseAssignments(args []string) (roster.Fields, error) {
	if len(args) == 0 {
		return nil, ErrNoFields
	}

	fields := make(roster.Fields, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAssignment, arg)
		}
		fields[strings.TrimSpace(key)] = value
	}

	return fields, nil
}

// ParseData decodes a JSON object given on the command line.
// Numbers keep their exact text.
func ParseData(data string) (roster.Fields, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var fields roster.Fields
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("parse data: %w", ErrNoFields)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse data: trailing data after object")
	}

	return fields, nil
}

// formatValue renders a field value for table output.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(bytes.TrimSpace(data))
	}
}
