package domain

import "fmt"

// Step is a state of the quiz wizard
type Step int

const (
	StepMood Step = iota
	StepOccasion
	StepNotes
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepMood:
		return "mood"
	case StepOccasion:
		return "occasion"
	case StepNotes:
		return "notes"
	case StepResults:
		return "results"
	default:
		return "unknown"
	}
}

// Prompt returns the question asked at this step
func (s Step) Prompt() string {
	switch s {
	case StepMood:
		return "What mood are you in?"
	case StepOccasion:
		return "What's the occasion?"
	case StepNotes:
		return "Which scent notes do you like?"
	case StepResults:
		return "Your recommendations"
	default:
		return ""
	}
}

// MultiSelect reports whether the step accepts several choices
func (s Step) MultiSelect() bool {
	return s == StepNotes
}

// Wizard is the linear quiz: Mood -> Occasion -> Notes -> Results -> (restart) Mood.
// It holds the partially built query. A Wizard is not safe for concurrent use.
type Wizard struct {
	step     Step
	mood     Mood
	occasion Occasion
	notes    []Note
}

// NewWizard returns a wizard at the Mood step
func NewWizard() *Wizard {
	return &Wizard{step: StepMood}
}

// Step returns the current step
func (w *Wizard) Step() Step {
	return w.step
}

// Options returns the selectable values for the current step (none on Results)
func (w *Wizard) Options() []string {
	return StepOptions(w.step)
}

// StepOptions returns the selectable values for a step
func StepOptions(s Step) []string {
	switch s {
	case StepMood:
		return toStrings(moods)
	case StepOccasion:
		return toStrings(occasions)
	case StepNotes:
		return toStrings(notes)
	default:
		return nil
	}
}

// SelectMood answers the Mood step and advances to Occasion
func (w *Wizard) SelectMood(m Mood) error {
	if err := w.expect(StepMood, "select a mood"); err != nil {
		return err
	}
	if !m.Valid() {
		return fmt.Errorf("%w: unknown mood %q", ErrInvalidChoice, m)
	}
	w.mood = m
	w.step = StepOccasion
	return nil
}

// SelectOccasion answers the Occasion step and advances to Notes
func (w *Wizard) SelectOccasion(o Occasion) error {
	if err := w.expect(StepOccasion, "select an occasion"); err != nil {
		return err
	}
	if !o.Valid() {
		return fmt.Errorf("%w: unknown occasion %q", ErrInvalidChoice, o)
	}
	w.occasion = o
	w.step = StepNotes
	return nil
}

// SelectNotes answers the Notes step, advances to Results and returns the completed query.
// An empty selection is allowed.
func (w *Wizard) SelectNotes(selected []Note) (PreferenceQuery, error) {
	if err := w.expect(StepNotes, "select notes"); err != nil {
		return PreferenceQuery{}, err
	}
	for _, n := range selected {
		if !n.Valid() {
			return PreferenceQuery{}, fmt.Errorf("%w: unknown note %q", ErrInvalidChoice, n)
		}
	}
	w.notes = CanonicalNotes(selected)
	w.step = StepResults
	return w.completed(), nil
}

// Restart clears the query and returns to Mood. Only valid from Results.
func (w *Wizard) Restart() error {
	if err := w.expect(StepResults, "restart"); err != nil {
		return err
	}
	*w = Wizard{step: StepMood}
	return nil
}

// Query returns the completed query; ok is false until Results is reached
func (w *Wizard) Query() (q PreferenceQuery, ok bool) {
	if w.step != StepResults {
		return PreferenceQuery{}, false
	}
	return w.completed(), true
}

// Partial returns the answers given so far; unanswered fields are zero
func (w *Wizard) Partial() PreferenceQuery {
	return PreferenceQuery{Mood: w.mood, Occasion: w.occasion, Notes: CanonicalNotes(w.notes)}
}

func (w *Wizard) completed() PreferenceQuery {
	return NewPreferenceQuery(w.mood, w.occasion, w.notes...)
}

func (w *Wizard) expect(s Step, action string) error {
	if w.step != s {
		return fmt.Errorf("%w: cannot %s at step %s", ErrInvalidTransition, action, w.step)
	}
	return nil
}
