package record

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONRecorder appends one snapshot per tick to a single file kept as a
// syntactically complete JSON array at all times. The file is opened once;
// each append seeks to just before the closing bracket, writes a separating
// comma when needed, the new element, and rewrites the bracket. A run
// killed between appends still leaves a parseable array behind.
type JSONRecorder struct {
	f *os.File
	n int
}

// NewJSONRecorder creates (truncating) the file and writes the empty array.
func NewJSONRecorder(path string) (*JSONRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create json file: %w", err)
	}
	if _, err := f.WriteString("[\n]\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("write json array: %w", err)
	}
	return &JSONRecorder{f: f}, nil
}

// Append writes v as the next array element.
func (r *JSONRecorder) Append(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	// The file always ends in "]\n"; back up over it.
	if _, err := r.f.Seek(-2, io.SeekEnd); err != nil {
		return fmt.Errorf("seek json file: %w", err)
	}
	if r.n >= 1 {
		if _, err := r.f.WriteString(",\n"); err != nil {
			return fmt.Errorf("write json separator: %w", err)
		}
	}
	if _, err := r.f.Write(data); err != nil {
		return fmt.Errorf("write json element: %w", err)
	}
	if _, err := r.f.WriteString("\n]\n"); err != nil {
		return fmt.Errorf("close json array: %w", err)
	}

	r.n++
	return nil
}

// Close closes the underlying file. The array is already complete.
func (r *JSONRecorder) Close() error {
	return r.f.Close()
}
