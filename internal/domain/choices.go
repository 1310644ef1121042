package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Mood is the overall feeling the user wants the scent to convey
type Mood string

const (
	MoodRomantic   Mood = "Romantic"
	MoodBold       Mood = "Bold"
	MoodFresh      Mood = "Fresh"
	MoodMysterious Mood = "Mysterious"
	MoodCozy       Mood = "Cozy"
	MoodEnergetic  Mood = "Energetic"
)

// Occasion is where the scent will be worn
type Occasion string

const (
	OccasionEveryday  Occasion = "Everyday Wear"
	OccasionDateNight Occasion = "Date Night"
	OccasionWork      Occasion = "Work"
	OccasionParty     Occasion = "Party"
)

// Note is a scent note the user is drawn to
type Note string

const (
	NoteVanilla Note = "Vanilla"
	NoteOud     Note = "Oud"
	NoteCitrus  Note = "Citrus"
	NoteFloral  Note = "Floral"
	NoteSpicy   Note = "Spicy"
	NoteWoody   Note = "Woody"
	NoteSweet   Note = "Sweet"
	NoteMusky   Note = "Musky"
)

var (
	moods     = []Mood{MoodRomantic, MoodBold, MoodFresh, MoodMysterious, MoodCozy, MoodEnergetic}
	occasions = []Occasion{OccasionEveryday, OccasionDateNight, OccasionWork, OccasionParty}
	notes     = []Note{NoteVanilla, NoteOud, NoteCitrus, NoteFloral, NoteSpicy, NoteWoody, NoteSweet, NoteMusky}
)

// Moods returns every mood in canonical order
func Moods() []Mood { return slices.Clone(moods) }

// Occasions returns every occasion in canonical order
func Occasions() []Occasion { return slices.Clone(occasions) }

// Notes returns every note in canonical order
func Notes() []Note { return slices.Clone(notes) }

// ParseMood resolves a mood by name, ignoring case and surrounding whitespace
func ParseMood(s string) (Mood, error) { return parseChoice("mood", s, moods) }

// ParseOccasion resolves an occasion by name, ignoring case and surrounding whitespace
func ParseOccasion(s string) (Occasion, error) { return parseChoice("occasion", s, occasions) }

// ParseNote resolves a note by name, ignoring case and surrounding whitespace
func ParseNote(s string) (Note, error) { return parseChoice("note", s, notes) }

// ParseNotes resolves every name in order, failing on the first unknown one
func ParseNotes(names []string) ([]Note, error) {
	out := make([]Note, 0, len(names))
	for _, name := range names {
		n, err := ParseNote(name)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (m Mood) Valid() bool     { return slices.Contains(moods, m) }
func (o Occasion) Valid() bool { return slices.Contains(occasions, o) }
func (n Note) Valid() bool     { return slices.Contains(notes, n) }

func (m Mood) String() string     { return string(m) }
func (o Occasion) String() string { return string(o) }
func (n Note) String() string     { return string(n) }

// noteOrder returns the canonical position of a note, or -1
func noteOrder(n Note) int {
	return slices.Index(notes, n)
}

func parseChoice[T ~string](kind, s string, all []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range all {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: unknown %s %q", ErrInvalidChoice, kind, s)
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
