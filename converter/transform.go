package converter

import (
	"math"

	"github.com/erraggy/smdconv/smderrors"
	"github.com/erraggy/smdconv/study"
)

// coxSnellDivisor is the logit-to-probit scaling factor of the Cox method.
const coxSnellDivisor = 1.65

// HasselbladHedges converts a log odds ratio and its standard error to an
// SMD under the logistic-distribution assumption:
//
//	smd = lnOR·√3/π,  se = √(se²·3/π²)
func HasselbladHedges(lnOR, seLnOR float64) (smd, seSMD float64) {
	return lnOR * math.Sqrt(3) / math.Pi,
		math.Sqrt(seLnOR * seLnOR * 3 / (math.Pi * math.Pi))
}

// CoxSnell converts a log odds ratio and its standard error to an SMD under
// the normal-distribution assumption:
//
//	smd = lnOR/1.65,  se = √(se²/1.65)
func CoxSnell(lnOR, seLnOR float64) (smd, seSMD float64) {
	return lnOR / coxSnellDivisor,
		math.Sqrt(seLnOR * seLnOR / coxSnellDivisor)
}

// ConvertedSet holds the per-study SMDs derived from a StudySet.
type ConvertedSet struct {
	// Method is the conversion that produced SMD and SESMD
	Method Method
	// SMD holds the standardised mean difference of each study
	SMD []float64
	// SESMD holds the standard error of each SMD
	SESMD []float64
	// OR holds the odds ratio (exp(lnOR)) of each study
	OR []float64
}

// Transform applies m to every study of set. Non-finite inputs yield
// non-finite outputs; they are not rejected.
func Transform(set *study.StudySet, m Method) (*ConvertedSet, error) {
	var fn func(float64, float64) (float64, float64)
	switch m {
	case MethodHasselbladHedges:
		fn = HasselbladHedges
	case MethodCoxSnell:
		fn = CoxSnell
	default:
		return nil, &smderrors.InvalidChoiceError{Argument: "method", Value: string(m), Choices: methodCodes()}
	}

	k := set.K()
	out := &ConvertedSet{
		Method: m,
		SMD:    make([]float64, k),
		SESMD:  make([]float64, k),
		OR:     make([]float64, k),
	}
	for i := range k {
		out.SMD[i], out.SESMD[i] = fn(set.LogOR[i], set.SELogOR[i])
		out.OR[i] = math.Exp(set.LogOR[i])
	}
	return out, nil
}
