package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BaSui01/agenteval/types"
)

// maxLineSize bounds a single dataset line. Records carry whole message
// sequences, so lines can get large.
const maxLineSize = 16 * 1024 * 1024

// Writer emits evaluation records as line-delimited JSON.
type Writer struct {
	bw    *bufio.Writer
	enc   *json.Encoder
	count int
}

// NewWriter creates a dataset writer on top of w.
func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	return &Writer{bw: bw, enc: json.NewEncoder(bw)}
}

// Write appends one record as a single JSON line.
func (w *Writer) Write(record *types.EvaluationRecord) error {
	if err := w.enc.Encode(record); err != nil {
		return fmt.Errorf("encode record %d: %w", w.count, err)
	}
	w.count++
	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int {
	return w.count
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// WriteFile writes all records to a JSONL file.
func WriteFile(path string, records []types.EvaluationRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset: %w", err)
	}
	defer f.Close()

	w := NewWriter(f)
	for i := range records {
		if err := w.Write(&records[i]); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush dataset: %w", err)
	}
	return f.Close()
}

// Reader consumes line-delimited evaluation records. Blank lines are
// skipped; a malformed line fails with its line number.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a dataset reader on top of r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{scanner: scanner}
}

// Read returns the next record, or io.EOF when the input is exhausted.
func (r *Reader) Read() (*types.EvaluationRecord, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record types.EvaluationRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return &record, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// ReadAll reads records until EOF.
func (r *Reader) ReadAll() ([]types.EvaluationRecord, error) {
	var records []types.EvaluationRecord
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
}

// ReadFile reads a whole JSONL dataset file.
func ReadFile(path string) ([]types.EvaluationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return NewReader(f).ReadAll()
}

// ReadTraces reads line-delimited raw traces (one trace per line).
func ReadTraces(r io.Reader) ([]RawTrace, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var (
		traces []RawTrace
		line   int
	)
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var tr RawTrace
		if err := json.Unmarshal(data, &tr); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		traces = append(traces, tr)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return traces, nil
}

// WriteTraceFile writes raw traces to a JSONL file (one trace per line).
func WriteTraceFile(path string, traces []RawTrace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create traces: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	for i := range traces {
		if err := enc.Encode(&traces[i]); err != nil {
			return fmt.Errorf("encode trace %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush traces: %w", err)
	}
	return f.Close()
}

// ReadTraceFile reads a raw-trace JSONL file.
func ReadTraceFile(path string) ([]RawTrace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open traces: %w", err)
	}
	defer f.Close()
	return ReadTraces(f)
}
