// Package study resolves per-study log odds ratio inputs into a validated,
// aligned StudySet.
//
// Inputs are passed explicitly: each argument either carries literal values
// or names a column of an explicitly supplied Table.
//
//	tbl := study.NewTable().
//		SetFloats("lnOR", []float64{0.91, 0.35}).
//		SetFloats("se", []float64{0.26, 0.31})
//	set, err := study.Resolve(study.Args{
//		Data:          tbl,
//		LogORColumn:   "lnOR",
//		SELogORColumn: "se",
//	})
package study

import "strconv"

// StudySet is the validated, aligned per-study input. Every slice has
// length K().
type StudySet struct {
	// LogOR holds the log odds ratio of each study
	LogOR []float64
	// SELogOR holds the standard error of each log odds ratio
	SELogOR []float64
	// Labels holds the study labels ("1".."k" when none were supplied)
	Labels []string
	// Subset restricts the studies passed on for pooling (zero value: all)
	Subset Selector
	// Exclude marks studies kept in the output but left out of pooling
	Exclude Selector
}

// K returns the number of studies.
func (s *StudySet) K() int {
	return len(s.LogOR)
}

// Study is a single row of a StudySet.
type Study struct {
	Label    string
	LogOR    float64
	SELogOR  float64
	Selected bool
	Excluded bool
}

// Studies returns the set as rows. Selected is true for every study when no
// subset was given.
func (s *StudySet) Studies() []Study {
	k := s.K()
	subset := s.Subset.Bools(k)
	exclude := s.Exclude.Bools(k)
	rows := make([]Study, k)
	for i := range rows {
		rows[i] = Study{
			Label:    s.Labels[i],
			LogOR:    s.LogOR[i],
			SELogOR:  s.SELogOR[i],
			Selected: subset == nil || subset[i],
			Excluded: exclude != nil && exclude[i],
		}
	}
	return rows
}

// SequentialLabels returns the labels "1".."k".
func SequentialLabels(k int) []string {
	labels := make([]string, k)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}
