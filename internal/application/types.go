package application

import "scentquiz/internal/domain"

// Re-export domain types for use by adapters
type (
	Step            = domain.Step
	Mood            = domain.Mood
	Occasion        = domain.Occasion
	Note            = domain.Note
	CatalogItem     = domain.CatalogItem
	ItemRef         = domain.ItemRef
	PreferenceQuery = domain.PreferenceQuery
	RankedResult    = domain.RankedResult
	HistoryEntry    = domain.HistoryEntry
)

const (
	StepMood     = domain.StepMood
	StepOccasion = domain.StepOccasion
	StepNotes    = domain.StepNotes
	StepResults  = domain.StepResults
)

// Options lists the selectable values of every quiz step, keyed by step name
func Options() map[string][]string {
	return map[string][]string{
		domain.StepMood.String():     domain.StepOptions(domain.StepMood),
		domain.StepOccasion.String(): domain.StepOptions(domain.StepOccasion),
		domain.StepNotes.String():    domain.StepOptions(domain.StepNotes),
	}
}

// ParseQuery builds a preference query from raw names, as typed by a user or sent by a client
func ParseQuery(mood, occasion string, notes []string) (domain.PreferenceQuery, error) {
	if err := ValidateRequired("mood", mood); err != nil {
		return domain.PreferenceQuery{}, err
	}
	if err := ValidateRequired("occasion", occasion); err != nil {
		return domain.PreferenceQuery{}, err
	}
	m, err := domain.ParseMood(mood)
	if err != nil {
		return domain.PreferenceQuery{}, err
	}
	o, err := domain.ParseOccasion(occasion)
	if err != nil {
		return domain.PreferenceQuery{}, err
	}
	ns, err := domain.ParseNotes(notes)
	if err != nil {
		return domain.PreferenceQuery{}, err
	}
	return domain.NewPreferenceQuery(m, o, ns...), nil
}
