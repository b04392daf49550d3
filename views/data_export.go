package views

import (
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"motion-logger/models"
)

const separator = ", "

// LogWriter appends rows to a delimited text log.
//
// Every Append is a complete open/write/close cycle: no handle is held
// between rows and nothing is buffered, so each row reaches the OS as
// soon as Append returns. A crash mid-write can still leave a partial
// line.
type LogWriter struct {
	mu   sync.Mutex
	path string
	rows uint64
}

// NewLogWriter creates (or truncates) path and writes the header line.
// The header keeps a trailing separator, which readers skip.
func NewLogWriter(path string, header []string) (*LogWriter, error) {
	var sb strings.Builder
	for _, h := range header {
		sb.WriteString(h)
		sb.WriteString(separator)
	}
	sb.WriteString("\n")

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return nil, errors.Wrapf(err, "create log %s", path)
	}
	return &LogWriter{path: path}, nil
}

// Append writes one row. Sequence fields are flattened inline. The row's
// field order must match the header; it is not checked.
func (w *LogWriter) Append(row models.Row) error {
	line := strings.Join(row.Tokens(), separator) + "\n"

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return errors.Wrapf(err, "open log %s", w.path)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "append to log %s", w.path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close log %s", w.path)
	}
	w.rows++
	return nil
}

// Log appends the row of a reading.
func (w *LogWriter) Log(r models.Loggable) error {
	return w.Append(r.LogRow())
}

// Path returns the file being written.
func (w *LogWriter) Path() string {
	return w.path
}

// Rows returns the number of data rows written (excludes header).
func (w *LogWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}
