package aggregate

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"
)

// InverseVariance is a reference engine: inverse-variance common effect,
// DerSimonian-Laird random effects, Cochran's Q with I² and H, Wald
// confidence intervals, a t-based prediction interval and optional subgroup
// pooling.
//
// Studies outside Payload.Subset are dropped from the result. Excluded
// studies, and studies without a finite estimate and a positive finite
// standard error, stay in the result but do not contribute to pooling.
// Unset (zero) confidence levels default to 0.95.
type InverseVariance struct {
	// NewID generates run identifiers. Defaults to uuid.NewString.
	NewID func() string
}

var _ Aggregator = InverseVariance{}

// Aggregate implements Aggregator.
func (e InverseVariance) Aggregate(p *Payload) (*Result, error) {
	settings, err := payloadSettings(p)
	if err != nil {
		return nil, err
	}
	settings = settings.WithDefaultLevels()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if m := settings.MethodTau; m != "" && m != "DL" {
		return nil, fmt.Errorf("aggregate: method.tau %q is not supported by the inverse-variance engine (use DL)", m)
	}
	if err := checkPayloadLengths(p, settings); err != nil {
		return nil, err
	}

	keep := make([]int, 0, p.K())
	for i := range p.K() {
		if p.Subset == nil || p.Subset[i] {
			keep = append(keep, i)
		}
	}

	res := &Result{
		ID:             e.newID(),
		SummaryMeasure: p.SummaryMeasure,
		Transform:      p.Transform,
		K:              len(keep),
		TE:             pick(p.TE, keep),
		SETE:           pick(p.SETE, keep),
		StudyLabels:    pick(p.StudyLabels, keep),
		NullEffect:     p.NullEffect,
		Settings:       settings,
		Data:           p.Data,
		Options:        p.Options,
	}
	if p.Exclude != nil {
		res.Exclude = pick(p.Exclude, keep)
	}
	if settings.Subgroup != nil {
		res.Settings.Subgroup.Values = pick(settings.Subgroup.Values, keep)
	}

	z := normalQuantile(settings.Level)
	res.StudyLower = make([]float64, res.K)
	res.StudyUpper = make([]float64, res.K)
	for i := range res.K {
		res.StudyLower[i] = res.TE[i] - z*res.SETE[i]
		res.StudyUpper[i] = res.TE[i] + z*res.SETE[i]
	}

	pooled := make([]int, 0, res.K)
	for i := range res.K {
		if res.Exclude != nil && res.Exclude[i] {
			continue
		}
		if !usable(res.TE[i], res.SETE[i]) {
			continue
		}
		pooled = append(pooled, i)
	}
	res.KPooled = len(pooled)
	if len(pooled) == 0 {
		return res, nil
	}

	overall := pool(pick(res.TE, pooled), pick(res.SETE, pooled), -1, p.NullEffect, settings.LevelMA)
	if settings.Common {
		res.Common = &overall.common
	}
	if settings.Random {
		res.Random = &overall.random
	}
	res.Heterogeneity = overall.het

	if settings.Prediction && len(pooled) >= 3 {
		res.PredictionInterval = predictionInterval(overall, settings.LevelPredict)
	}

	if sg := res.Settings.Subgroup; sg != nil {
		tau2 := -1.0
		if settings.TauCommon && overall.het != nil {
			tau2 = overall.het.Tau2
		}
		res.Subgroups = poolSubgroups(res, sg.Values, pooled, tau2, settings)
	}

	return res, nil
}

func (e InverseVariance) newID() string {
	if e.NewID != nil {
		return e.NewID()
	}
	return uuid.NewString()
}

func checkPayloadLengths(p *Payload, settings Settings) error {
	k := p.K()
	check := func(name string, n int, optional bool) error {
		if optional && n == 0 {
			return nil
		}
		if n != k {
			return fmt.Errorf("aggregate: %s has %d entries, expected %d", name, n, k)
		}
		return nil
	}
	if err := check("SETE", len(p.SETE), false); err != nil {
		return err
	}
	if err := check("study labels", len(p.StudyLabels), false); err != nil {
		return err
	}
	if err := check("subset", len(p.Subset), true); err != nil {
		return err
	}
	if err := check("exclude", len(p.Exclude), true); err != nil {
		return err
	}
	if settings.Subgroup != nil {
		return check("subgroup", len(settings.Subgroup.Values), false)
	}
	return nil
}

type fit struct {
	k      int
	common Estimate
	random Estimate
	het    *Heterogeneity
	tau2   float64
}

// pool fits common and random effects models. A negative tau2 asks for the
// DerSimonian-Laird estimate; otherwise tau2 is used as given.
func pool(y, se []float64, tau2, null, level float64) fit {
	k := len(y)
	var sw, sw2, swy float64
	for i := range y {
		w := 1 / (se[i] * se[i])
		sw += w
		sw2 += w * w
		swy += w * y[i]
	}
	teCommon := swy / sw

	var q float64
	for i := range y {
		d := y[i] - teCommon
		q += d * d / (se[i] * se[i])
	}
	df := k - 1

	if tau2 < 0 {
		tau2 = 0
		if c := sw - sw2/sw; df > 0 && c > 0 {
			tau2 = math.Max(0, (q-float64(df))/c)
		}
	}

	var swr, swry float64
	for i := range y {
		w := 1 / (se[i]*se[i] + tau2)
		swr += w
		swry += w * y[i]
	}

	f := fit{
		k:      k,
		common: estimate(teCommon, math.Sqrt(1/sw), null, level),
		random: estimate(swry/swr, math.Sqrt(1/swr), null, level),
		tau2:   tau2,
	}
	if df > 0 {
		h := &Heterogeneity{
			Q:      q,
			DF:     df,
			PValue: distuv.ChiSquared{K: float64(df)}.Survival(q),
			Tau2:   tau2,
			Tau:    math.Sqrt(tau2),
			H:      math.Max(1, math.Sqrt(q/float64(df))),
		}
		if q > float64(df) {
			h.I2 = (q - float64(df)) / q
		}
		f.het = h
	}
	return f
}

func estimate(te, se, null, level float64) Estimate {
	z := normalQuantile(level)
	stat := (te - null) / se
	return Estimate{
		TE:        te,
		SETE:      se,
		Lower:     te - z*se,
		Upper:     te + z*se,
		Statistic: stat,
		PValue:    2 * distuv.UnitNormal.Survival(math.Abs(stat)),
	}
}

func predictionInterval(f fit, level float64) *Interval {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(f.k - 2)}.Quantile(1 - (1-level)/2)
	half := t * math.Sqrt(f.tau2+f.random.SETE*f.random.SETE)
	return &Interval{Lower: f.random.TE - half, Upper: f.random.TE + half}
}

func poolSubgroups(res *Result, values []string, pooled []int, tau2 float64, settings Settings) []SubgroupResult {
	var names []string
	members := make(map[string][]int)
	counts := make(map[string]int)
	for i, v := range values {
		if counts[v] == 0 {
			names = append(names, v)
		}
		counts[v]++
		if slices.Contains(pooled, i) {
			members[v] = append(members[v], i)
		}
	}

	out := make([]SubgroupResult, 0, len(names))
	for _, name := range names {
		sr := SubgroupResult{Name: name, K: counts[name]}
		if idx := members[name]; len(idx) > 0 {
			f := pool(pick(res.TE, idx), pick(res.SETE, idx), tau2, res.NullEffect, settings.LevelMA)
			if settings.Common {
				sr.Common = &f.common
			}
			if settings.Random {
				sr.Random = &f.random
			}
			sr.Heterogeneity = f.het
		}
		out = append(out, sr)
	}
	return out
}

func usable(te, se float64) bool {
	return !math.IsNaN(te) && !math.IsInf(te, 0) &&
		!math.IsNaN(se) && !math.IsInf(se, 0) && se > 0
}

func normalQuantile(level float64) float64 {
	return distuv.UnitNormal.Quantile(1 - (1-level)/2)
}

func pick[T any](s []T, idx []int) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(idx))
	for j, i := range idx {
		out[j] = s[i]
	}
	return out
}
