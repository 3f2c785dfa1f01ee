package fileutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
)

// WriteJSONL streams records to w, one JSON object per line, and returns the
// number of lines written before any error.
func WriteJSONL[T any](w io.Writer, records []T) (int, error) {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i, record := range records {
		if err := enc.Encode(record); err != nil {
			return i, err
		}
	}
	return len(records), bw.Flush()
}

// EncodeJSONL is WriteJSONL into memory, for callers that compare the result
// with what is already on disk.
func EncodeJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := WriteJSONL(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
