package procgraph

import (
	"math"
	"strconv"
	"strings"
)

// Reserved position hint keys.
const (
	HintX     = "xloc"
	HintY     = "yloc"
	HintStyle = "style"
)

// HintEntry is one key/value pair of editor-only layout data.
type HintEntry struct {
	Key   string `xml:"key" json:"key" yaml:"key"`
	Value string `xml:"value" json:"value" yaml:"value"`
}

// PositionHints is an ordered entry list, not a set: duplicate keys may occur
// and the first one wins.
type PositionHints []HintEntry

// Get returns the value of the first entry with the given key.
func (h PositionHints) Get(key string) (string, bool) {
	for _, e := range h {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Set returns hints with the first entry for key replaced, or with a new
// entry appended when the key is absent. The receiver is left untouched.
func (h PositionHints) Set(key, value string) PositionHints {
	out := make(PositionHints, len(h), len(h)+1)
	copy(out, h)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, HintEntry{Key: key, Value: value})
}

// X is the x location, 0 when absent or not a number.
func (h PositionHints) X() float64 { return h.float(HintX) }

// Y is the y location, 0 when absent or not a number.
func (h PositionHints) Y() float64 { return h.float(HintY) }

// Style is the visual style hint, empty when absent.
func (h PositionHints) Style() string {
	v, _ := h.Get(HintStyle)
	return v
}

// WithPosition returns hints carrying the given location.
func (h PositionHints) WithPosition(x, y float64) PositionHints {
	return h.Set(HintX, formatFloat(x)).Set(HintY, formatFloat(y))
}

func (h PositionHints) float(key string) float64 {
	v, ok := h.Get(key)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (h PositionHints) clone() PositionHints {
	if h == nil {
		return nil
	}
	return append(PositionHints(nil), h...)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
