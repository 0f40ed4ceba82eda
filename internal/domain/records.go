package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNotObject = errors.New("record is not a JSON object")

// ParseRecords decodes newline-delimited JSON into records.
// Blank lines are skipped. The first undecodable line aborts the parse
// with a *RecordSyntaxError and no records are returned.
func ParseRecords(text string) ([]Record, error) {
	records := []Record{}

	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, &RecordSyntaxError{Line: i + 1, Err: err}
		}
		// "null" decodes into a nil map without error
		if rec == nil {
			return nil, &RecordSyntaxError{Line: i + 1, Err: errNotObject}
		}
		records = append(records, rec)
	}

	return records, nil
}
