package aggregate

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/smdconv/smderrors"
)

// Settings is the configuration bundle of an aggregation.
type Settings struct {
	Level        float64 `json:"level"         yaml:"level"`
	LevelMA      float64 `json:"level_ma"      yaml:"level_ma"`
	Common       bool    `json:"common"        yaml:"common"`
	Random       bool    `json:"random"        yaml:"random"`
	MethodTau    string  `json:"method_tau"    yaml:"method_tau"`
	TauCommon    bool    `json:"tau_common"    yaml:"tau_common"`
	Prediction   bool    `json:"prediction"    yaml:"prediction"`
	LevelPredict float64 `json:"level_predict" yaml:"level_predict"`
	MethodBias   string  `json:"method_bias"   yaml:"method_bias"`

	Title      string `json:"title,omitempty"       yaml:"title,omitempty"`
	Complab    string `json:"complab,omitempty"     yaml:"complab,omitempty"`
	Outclab    string `json:"outclab,omitempty"     yaml:"outclab,omitempty"`
	LabelE     string `json:"label_e,omitempty"     yaml:"label_e,omitempty"`
	LabelC     string `json:"label_c,omitempty"     yaml:"label_c,omitempty"`
	LabelLeft  string `json:"label_left,omitempty"  yaml:"label_left,omitempty"`
	LabelRight string `json:"label_right,omitempty" yaml:"label_right,omitempty"`

	// Subgroup is nil when the analysis has no subgroup variable
	Subgroup *SubgroupSettings `json:"subgroup,omitempty" yaml:"subgroup,omitempty"`

	// Control holds engine-specific control parameters
	Control map[string]any `json:"control,omitempty" yaml:"control,omitempty"`
}

// SubgroupSettings configures subgroup pooling.
type SubgroupSettings struct {
	// Values holds the subgroup of each study
	Values     []string `json:"values"                yaml:"values"`
	Name       string   `json:"name,omitempty"        yaml:"name,omitempty"`
	PrintName  bool     `json:"print_name"            yaml:"print_name"`
	Sep        string   `json:"sep,omitempty"         yaml:"sep,omitempty"`
	Test       bool     `json:"test"                  yaml:"test"`
	Prediction bool     `json:"prediction"            yaml:"prediction"`
}

// DefaultSettings returns the settings used when nothing else is given.
func DefaultSettings() Settings {
	return Settings{
		Level:        0.95,
		LevelMA:      0.95,
		Common:       true,
		Random:       true,
		MethodTau:    "DL",
		LevelPredict: 0.95,
		MethodBias:   "Egger",
	}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := s
	if s.Subgroup != nil {
		sg := *s.Subgroup
		sg.Values = slices.Clone(s.Subgroup.Values)
		out.Subgroup = &sg
	}
	out.Control = maps.Clone(s.Control)
	return out
}

// WithDefaultLevels returns s with every unset (zero) confidence level
// replaced by its DefaultSettings value. Other fields are left as they are.
func (s Settings) WithDefaultLevels() Settings {
	d := DefaultSettings()
	if s.Level == 0 {
		s.Level = d.Level
	}
	if s.LevelMA == 0 {
		s.LevelMA = d.LevelMA
	}
	if s.LevelPredict == 0 {
		s.LevelPredict = d.LevelPredict
	}
	return s
}

// Validate checks that every confidence level lies strictly between 0 and 1.
func (s Settings) Validate() error {
	levels := []struct {
		name  string
		value float64
	}{
		{"level", s.Level},
		{"level.ma", s.LevelMA},
		{"level.predict", s.LevelPredict},
	}
	for _, l := range levels {
		if l.value <= 0 || l.value >= 1 {
			return &smderrors.ConfigurationError{
				Option:  l.name,
				Value:   l.value,
				Message: "must be between 0 and 1",
			}
		}
	}
	return nil
}

// SettingsFromOptions starts from DefaultSettings and applies the recognised
// keys of opts. Unrecognised keys are left for other engines.
//
// Recognised keys: level, level.ma, level.predict (numbers); common, random,
// tau.common, prediction (booleans); method.tau, method.bias, title, complab,
// outclab, label.e, label.c, label.left, label.right (strings).
func SettingsFromOptions(opts map[string]any) (Settings, error) {
	s := DefaultSettings()

	floats := map[string]*float64{
		"level":         &s.Level,
		"level.ma":      &s.LevelMA,
		"level.predict": &s.LevelPredict,
	}
	bools := map[string]*bool{
		"common":     &s.Common,
		"random":     &s.Random,
		"tau.common": &s.TauCommon,
		"prediction": &s.Prediction,
	}
	strs := map[string]*string{
		"method.tau":  &s.MethodTau,
		"method.bias": &s.MethodBias,
		"title":       &s.Title,
		"complab":     &s.Complab,
		"outclab":     &s.Outclab,
		"label.e":     &s.LabelE,
		"label.c":     &s.LabelC,
		"label.left":  &s.LabelLeft,
		"label.right": &s.LabelRight,
	}

	for key, v := range opts {
		if dst, ok := floats[key]; ok {
			f, ok := toFloat(v)
			if !ok {
				return Settings{}, optionTypeError(key, v, "number")
			}
			*dst = f
			continue
		}
		if dst, ok := bools[key]; ok {
			b, ok := v.(bool)
			if !ok {
				return Settings{}, optionTypeError(key, v, "boolean")
			}
			*dst = b
			continue
		}
		if dst, ok := strs[key]; ok {
			str, ok := v.(string)
			if !ok {
				return Settings{}, optionTypeError(key, v, "string")
			}
			*dst = str
		}
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func optionTypeError(key string, v any, want string) error {
	return &smderrors.ConfigurationError{
		Option:  key,
		Value:   v,
		Message: fmt.Sprintf("must be a %s", want),
	}
}
