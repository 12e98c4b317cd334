package task

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// layoutISO matches the millisecond ISO-8601 form written into the slot,
// e.g. 2026-10-15T09:30:00.000Z.
const layoutISO = "2006-01-02T15:04:05.000Z07:00"

// layouts are tried in order by ParseTime. Zoneless forms are read as UTC.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// ParseTime accepts RFC 3339 timestamps, with or without fractions or a
// zone, plain dates, and the RFC 1123 and browser Date.toString forms.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	// Date.toString appends the zone name, e.g. " (Central European Time)".
	if i := strings.Index(v, " ("); i > 0 && strings.HasSuffix(v, ")") {
		v = v[:i]
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}

// FormatTime renders v the way the slot stores it.
func FormatTime(v time.Time) string {
	return v.UTC().Format(layoutISO)
}

// Timestamp wraps time.Time with the slot's JSON representation. A string
// that does not parse is kept as is and written back unchanged.
type Timestamp struct {
	time.Time
	raw string
}

// Stamp returns a pointer Timestamp for the nullable fields.
func Stamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// Raw returns the stored text of a timestamp that could not be parsed.
func (t Timestamp) Raw() string {
	return t.raw
}

// Unset reports whether t holds neither an instant nor unparsed text.
func (t Timestamp) Unset() bool {
	return t.IsZero() && t.raw == ""
}

// Same compares instants, and the stored text of unparsed timestamps.
func (t Timestamp) Same(o Timestamp) bool {
	return t.Equal(o.Time) && t.raw == o.raw
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		if t.raw != "" {
			return json.Marshal(t.raw)
		}
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	// Epoch milliseconds, as Date.now() produces.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if strings.TrimSpace(timestamp) == "" {
		return nil
	}
	parsed, err := ParseTime(timestamp)
	if err != nil {
		t.raw = timestamp
		return nil
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	if t.IsZero() && t.raw != "" {
		return t.raw
	}
	return FormatTime(t.Time)
}

// Display formats t for people, in local time.
func (t Timestamp) Display() string {
	if t.IsZero() && t.raw != "" {
		return t.raw
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}
