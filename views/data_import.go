package views

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// NotFoundError is returned when a log file does not exist.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("log file %s not found", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError is returned when a non-empty data token is not a number.
type ParseError struct {
	Path  string
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: cannot parse %q as a number", e.Path, e.Line, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LogTable is the in-memory form of a log file.
type LogTable struct {
	Headers []string
	// Rows are in file order, one per line after the header. A row may be
	// shorter or longer than Headers: sequence fields are flattened, a row
	// stops at its first empty token and a blank line gives an empty row.
	Rows [][]float64
}

// ReadLog parses the header line and every data line of the log at path.
func ReadLog(path string) (*LogTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, errors.Wrapf(err, "open log %s", path)
	}
	defer f.Close()

	return parseLog(path, f)
}

// maxLineBytes bounds one log line; a 360-beam scan row is a few KiB.
const maxLineBytes = 1 << 20

func parseLog(path string, r io.Reader) (*LogTable, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	table := &LogTable{Headers: []string{}, Rows: [][]float64{}}

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrapf(err, "read header of %s", path)
		}
		return table, nil
	}
	for _, tok := range strings.Split(sc.Text(), ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			break
		}
		table.Headers = append(table.Headers, tok)
	}

	for line := 2; sc.Scan(); line++ {
		row := []float64{}
		for _, tok := range strings.Split(sc.Text(), ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				break
			}
			v, err := parseNumber(tok)
			if err != nil {
				return nil, &ParseError{Path: path, Line: line, Token: tok, Err: err}
			}
			row = append(row, v)
		}
		table.Rows = append(table.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return table, nil
}

// parseNumber accepts what ParseFloat accepts. Out-of-range literals
// saturate to ±Inf or 0 instead of failing.
func parseNumber(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && errors.Is(err, strconv.ErrRange) {
		return v, nil
	}
	return v, err
}

// Column returns the values of the named column, one per row, or false
// if the header has no such name. Rows too short to hold the column give
// NaN.
func (t *LogTable) Column(name string) ([]float64, bool) {
	idx := -1
	for i, h := range t.Headers {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		} else {
			out[i] = math.NaN()
		}
	}
	return out, true
}

// StampsSeconds returns each row's last value (its stamp, in nanoseconds)
// relative to the first row's stamp, in seconds. Empty rows yield zero.
func (t *LogTable) StampsSeconds() []float64 {
	out := make([]float64, len(t.Rows))
	if len(t.Rows) == 0 || len(t.Rows[0]) == 0 {
		return out
	}
	first := t.Rows[0][len(t.Rows[0])-1]
	for i, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		out[i] = (row[len(row)-1] - first) / 1e9
	}
	return out
}
