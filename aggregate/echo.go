package aggregate

import "slices"

// EchoAggregator returns a Result that mirrors its Payload without pooling
// anything. It is useful for dry runs and for inspecting what the converter
// sends to an engine.
type EchoAggregator struct{}

// Aggregate implements Aggregator.
func (EchoAggregator) Aggregate(p *Payload) (*Result, error) {
	settings, err := payloadSettings(p)
	if err != nil {
		return nil, err
	}
	return &Result{
		SummaryMeasure: p.SummaryMeasure,
		Transform:      p.Transform,
		K:              p.K(),
		TE:             slices.Clone(p.TE),
		SETE:           slices.Clone(p.SETE),
		StudyLabels:    slices.Clone(p.StudyLabels),
		Subset:         slices.Clone(p.Subset),
		Exclude:        slices.Clone(p.Exclude),
		NullEffect:     p.NullEffect,
		Settings:       settings,
		Data:           p.Data,
		Options:        p.Options,
	}, nil
}

var _ Aggregator = EchoAggregator{}

// payloadSettings returns the payload's settings, or settings derived from
// its pass-through options when none were given.
func payloadSettings(p *Payload) (Settings, error) {
	if p.Settings != nil {
		return p.Settings.Clone(), nil
	}
	return SettingsFromOptions(p.Options)
}
