package executor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// DecodeJSON validates stdout as JSON. Paginated output may be several JSON arrays
// back to back, one per page; they are merged into one array in page order.
func DecodeJSON(stdout []byte, paginated bool) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(stdout))
	var values []json.RawMessage
	for {
		var v json.RawMessage
		err := dec.Decode(&v)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	switch {
	case len(values) == 0:
		return nil, fmt.Errorf("empty output")
	case len(values) == 1:
		return values[0], nil
	case !paginated:
		return nil, fmt.Errorf("unexpected data after top-level value")
	}

	merged := []json.RawMessage{}
	for i, page := range values {
		var items []json.RawMessage
		if err := json.Unmarshal(page, &items); err != nil {
			return nil, fmt.Errorf("page %d is not a JSON array: %w", i+1, err)
		}
		merged = append(merged, items...)
	}
	return json.Marshal(merged)
}
