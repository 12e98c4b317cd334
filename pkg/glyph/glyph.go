package glyph

import (
	"tableflip.dev/things/pkg/task"
)

// Glyph is a one-character marker with its legend text.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

func (g Glyph) String() string {
	return g.Symbol
}

// StatusGlyphs lists the status markers in lifecycle order.
func StatusGlyphs() []Glyph {
	return []Glyph{
		Status(task.Todo),
		Status(task.Completed),
		Status(task.Archived),
	}
}

// CategoryGlyphs lists the category markers.
func CategoryGlyphs() []Glyph {
	return []Glyph{
		Category(task.Personal),
		Category(task.Business),
	}
}

// Status returns the marker for s.
func Status(s task.Status) Glyph {
	switch s {
	case task.Completed:
		return Glyph{Key: "x", Symbol: "✔", Meaning: "completed"}
	case task.Archived:
		return Glyph{Key: "a", Symbol: "▣", Meaning: "archived"}
	case task.Todo:
		return Glyph{Key: " ", Symbol: "○", Meaning: "todo"}
	}
	return Glyph{Key: "?", Symbol: "?", Meaning: string(s)}
}

// Category returns the marker for c.
func Category(c task.Category) Glyph {
	switch c {
	case task.Personal:
		return Glyph{Key: "p", Symbol: "●", Meaning: "personal"}
	case task.Business:
		return Glyph{Key: "b", Symbol: "◆", Meaning: "business"}
	}
	return Glyph{Key: "?", Symbol: "·", Meaning: string(c)}
}
