package htr

import (
	"fmt"

	"github.com/cwbudde/algo-htr/dsp/peak"
)

// Tag labels an event.
type Tag int

const (
	// TagIsolated marks the first event and events farther than the
	// fractionation window from their predecessor.
	TagIsolated Tag = iota
	// TagFractionated marks events within the window of their predecessor.
	TagFractionated
)

func (t Tag) String() string {
	switch t {
	case TagIsolated:
		return "isolated"
	case TagFractionated:
		return "fractionated"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// MarshalText encodes the tag name.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tag name.
func (t *Tag) UnmarshalText(b []byte) error {
	switch string(b) {
	case "isolated":
		*t = TagIsolated
	case "fractionated":
		*t = TagFractionated
	default:
		return fmt.Errorf("htr: unknown tag %q", b)
	}
	return nil
}

// Event is a retained peak with its classification.
type Event struct {
	peak.Peak
	Tag Tag
}

// Classification is the output of [Classify].
type Classification struct {
	Events            []Event
	TotalCount        int
	FractionatedCount int
}

// Classify tags time-ordered peaks in a single pass. A peak whose gap to
// the previous peak is at most minDistance samples is fractionated.
func Classify(peaks []peak.Peak, minDistance int) Classification {
	c := Classification{
		Events:     make([]Event, len(peaks)),
		TotalCount: len(peaks),
	}

	for i, p := range peaks {
		c.Events[i] = Event{Peak: p, Tag: TagIsolated}
		if i > 0 && p.Index-peaks[i-1].Index <= minDistance {
			c.Events[i].Tag = TagFractionated
			c.FractionatedCount++
		}
	}

	return c
}
