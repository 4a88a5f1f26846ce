package clef

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wyclef-go/wyclef/internal/logging"
)

// ErrIO is returned when the log file cannot be read.
var ErrIO = errors.New("reading log file")

// maxLineBytes bounds a single CLEF line. Exceptions with long stack traces
// are the usual reason for big lines.
const maxLineBytes = 16 * 1024 * 1024

// utf8BOM is stripped from the start of the first line.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Skipped records a line that was dropped by a lenient load.
type Skipped struct {
	// Line is the 1-based line number in the file.
	Line int
	Err  error
}

// Log is the ordered set of events read from one file.
type Log struct {
	path    string
	events  []Event
	skipped []Skipped
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	skipMalformed bool
	logger        *log.Logger
}

// WithSkipMalformed makes Load drop lines that are not JSON objects instead
// of failing. Dropped lines are reported through Skipped and logged at warn
// level.
func WithSkipMalformed() LoadOption {
	return func(o *loadOptions) {
		o.skipMalformed = true
	}
}

// WithLogger sets the logger used while loading. When nil, a logger with
// the "clef" prefix is used.
func WithLogger(logger *log.Logger) LoadOption {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// Load reads the file at path and parses each non-blank line as an event.
//
// Lines are split on "\n", "\r\n" and "\r". By default the first malformed
// line aborts the load with an error wrapping ErrMalformedEvent that names
// the line number; see WithSkipMalformed for the lenient alternative.
func Load(path string, opts ...LoadOption) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	l, err := decode(path, f, opts...)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// decode parses CLEF lines from r. name is used in error messages and kept
// as the log's path.
func decode(name string, r io.Reader, opts ...LoadOption) (*Log, error) {
	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.New("clef")
	}

	l := &Log{path: name}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	sc.Split(scanUniversalLines)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Bytes()
		if lineNo == 1 {
			raw = bytes.TrimPrefix(raw, utf8BOM)
		}
		line := string(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}

		e, err := Parse(line)
		if err != nil {
			if !o.skipMalformed {
				return nil, fmt.Errorf("%s line %d: %w", name, lineNo, err)
			}
			o.logger.Warn("skipping malformed line", "path", name, "line", lineNo, "error", err)
			l.skipped = append(l.skipped, Skipped{Line: lineNo, Err: err})
			continue
		}
		l.events = append(l.events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrIO, name, err)
	}

	o.logger.Debug("loaded log", "path", name, "events", len(l.events), "skipped", len(l.skipped))
	return l, nil
}

// scanUniversalLines is a bufio.SplitFunc like bufio.ScanLines that also
// treats a lone "\r" as a line break.
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A '\r' at the end of the buffer may be the first half of "\r\n".
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Path returns the path the log was loaded from.
func (l *Log) Path() string { return l.path }

// Len returns the number of events.
func (l *Log) Len() int { return len(l.events) }

// At returns the event at index i. It panics if i is out of range.
func (l *Log) At(i int) Event { return l.events[i] }

// Events returns the events in file order. The returned slice must not be
// modified.
func (l *Log) Events() []Event { return l.events }

// Skipped returns the lines dropped by a lenient load, in file order.
func (l *Log) Skipped() []Skipped { return l.skipped }

// LineStyler colours a display line according to its level.
type LineStyler interface {
	StyleLine(level Level, line string) string
}

// Print writes one display line per event to w. When styler is nil the
// lines are written uncoloured.
func (l *Log) Print(w io.Writer, styler LineStyler) error {
	bw := bufio.NewWriter(w)
	for _, e := range l.events {
		line := DisplayLine(e)
		if styler != nil {
			line = styler.StyleLine(e.level, line)
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}
