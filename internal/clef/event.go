package clef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedEvent is returned when a line is not a JSON object.
var ErrMalformedEvent = errors.New("malformed event")

// Reserved CLEF keys. Any other key on the object is a Rendering.
const (
	keyTimestamp = "@t"
	keyMessage   = "@m"
	keyTemplate  = "@mt"
	keyLevel     = "@l"
	keyException = "@x"
	keyEventID   = "@i"
)

// Rendering is a single user property of an event.
type Rendering struct {
	// Key is the property name. A leading "@@" in the source is unescaped
	// to a single "@".
	Key string
	// Value is the compact JSON text of the property value. String values
	// keep their surrounding quotes; numbers are in canonical form.
	Value string
}

// Text returns the value as it should appear inside a rendered message:
// the decoded content for JSON strings, the JSON text for everything else.
func (r Rendering) Text() string {
	return jsonText(r.Value)
}

// Event is one parsed CLEF record. It is immutable once returned by Parse.
type Event struct {
	timestamp  string
	message    string
	template   string
	level      Level
	exception  string
	eventID    string
	renderings []Rendering
}

// Timestamp returns the JSON text of @t, quotes included. Use
// DisplayTimestamp for presentation.
func (e Event) Timestamp() string { return e.timestamp }

// DisplayTimestamp returns the timestamp with surrounding quotes removed.
func (e Event) DisplayTimestamp() string { return strings.Trim(e.timestamp, `"`) }

// Message returns the pre-rendered @m message, or "".
func (e Event) Message() string { return e.message }

// Template returns the @mt message template, or "".
func (e Event) Template() string { return e.template }

// Level returns the resolved level.
func (e Event) Level() Level { return e.level }

// Exception returns the @x exception text, or "".
func (e Event) Exception() string { return e.exception }

// EventID returns the @i identifier, or "".
func (e Event) EventID() string { return e.eventID }

// Renderings returns the event's user properties in source key order. The
// returned slice is a copy.
func (e Event) Renderings() []Rendering {
	if len(e.renderings) == 0 {
		return nil
	}
	out := make([]Rendering, len(e.renderings))
	copy(out, e.renderings)
	return out
}

// Parse decodes a single CLEF line. It returns an error wrapping
// ErrMalformedEvent when the line is not valid JSON or its top-level value
// is not an object.
func Parse(line string) (Event, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Event{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedEvent)
	}

	var (
		e     Event
		level string
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
		}
		key, ok := tok.(string)
		if !ok {
			return Event{}, fmt.Errorf("%w: unexpected token %v", ErrMalformedEvent, tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return Event{}, fmt.Errorf("%w: value of %q: %w", ErrMalformedEvent, key, err)
		}
		value := compactJSON(raw)

		switch key {
		case keyTimestamp:
			e.timestamp = value
		case keyMessage:
			e.message = jsonText(value)
		case keyTemplate:
			e.template = jsonText(value)
		case keyLevel:
			level = value
		case keyException:
			e.exception = jsonText(value)
		case keyEventID:
			e.eventID = jsonText(value)
		default:
			if strings.HasPrefix(key, "@@") {
				key = key[1:]
			}
			e.renderings = append(e.renderings, Rendering{Key: key, Value: value})
		}
	}

	// Closing brace, then nothing else on the line.
	if _, err := dec.Token(); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Event{}, fmt.Errorf("%w: trailing data after object", ErrMalformedEvent)
	}

	e.level = ResolveLevel(level)
	return e, nil
}

// compactJSON strips insignificant whitespace from raw and rewrites a
// top-level number in canonical form. raw is known to be valid JSON, so
// Compact only fails on inputs the decoder already rejected.
func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	text := buf.String()
	if text != "" && (text[0] == '-' || (text[0] >= '0' && text[0] <= '9')) {
		return canonicalNumber(text)
	}
	return text
}

// canonicalNumber formats a JSON number the shortest way that reads back to
// the same value: integers without a fraction or exponent, and other values
// with trailing zeros dropped ("12.50" becomes "12.5", "-3e2" becomes
// "-300"). Integers beyond 64 bits and out-of-range floats are returned as
// written.
func canonicalNumber(text string) string {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return strconv.FormatUint(u, 10)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) {
		return text
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// jsonText decodes value when it is a JSON string and returns it unchanged
// otherwise.
func jsonText(value string) string {
	if !strings.HasPrefix(value, `"`) {
		return value
	}
	var s string
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return value
	}
	return s
}
