package dataset

import "maps"

// Option keys understood by aggregate.SettingsFromOptions.
const (
	OptionCommon     = "common"
	OptionRandom     = "random"
	OptionPrediction = "prediction"
	OptionMethodTau  = "method.tau"
	OptionLevelMA    = "level.ma"
)

// Overrides adjusts the aggregation settings of a dataset. Nil and zero
// fields leave the dataset unchanged.
type Overrides struct {
	Common     *bool
	Random     *bool
	Prediction *bool
	MethodTau  string
	LevelMA    float64
}

func (o Overrides) options() map[string]any {
	opts := make(map[string]any)
	if o.Common != nil {
		opts[OptionCommon] = *o.Common
	}
	if o.Random != nil {
		opts[OptionRandom] = *o.Random
	}
	if o.Prediction != nil {
		opts[OptionPrediction] = *o.Prediction
	}
	if o.MethodTau != "" {
		opts[OptionMethodTau] = o.MethodTau
	}
	if o.LevelMA != 0 {
		opts[OptionLevelMA] = o.LevelMA
	}
	return opts
}

// Apply overrides the dataset's settings. In vector mode the overrides
// become pass-through options; in object mode they replace the prior's
// settings.
func (d *Dataset) Apply(o Overrides) {
	d.merge(o, true)
}

// ApplyDefaults is like Apply but only fills options the dataset does not
// set itself. A prior analysis already carries complete settings and is left
// alone.
func (d *Dataset) ApplyDefaults(o Overrides) {
	if d.Prior != nil {
		return
	}
	d.merge(o, false)
}

func (d *Dataset) merge(o Overrides, replace bool) {
	if d.Prior != nil {
		s := &d.Prior.Settings
		if o.Common != nil {
			s.Common = *o.Common
		}
		if o.Random != nil {
			s.Random = *o.Random
		}
		if o.Prediction != nil {
			s.Prediction = *o.Prediction
		}
		if o.MethodTau != "" {
			s.MethodTau = o.MethodTau
		}
		if o.LevelMA != 0 {
			s.LevelMA = o.LevelMA
		}
		return
	}

	opts := o.options()
	if len(opts) == 0 {
		return
	}
	merged := maps.Clone(d.Options)
	if merged == nil {
		merged = make(map[string]any, len(opts))
	}
	for k, v := range opts {
		if _, ok := merged[k]; ok && !replace {
			continue
		}
		merged[k] = v
	}
	d.Options = merged
}
