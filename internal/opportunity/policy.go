package opportunity

import (
	"fmt"

	"p2parb/internal/domain"
)

type Mode string

const (
	ModeAllPairs Mode = "all_pairs"
	ModeCorridor Mode = "corridor"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAllPairs, ModeCorridor:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrModeUnsupported, s)
}

const (
	DefaultCapital             = 10000.0
	DefaultExecutableThreshold = 2.5
	DefaultWatchThreshold      = 1.0
)

// Thresholds is the three-tier significance policy, in percent. Both bounds are inclusive.
type Thresholds struct {
	Executable float64
	Watch      float64
}

func (t Thresholds) Classify(pct float64) domain.Status {
	switch {
	case pct >= t.Executable:
		return domain.StatusExecutable
	case pct >= t.Watch:
		return domain.StatusWatch
	default:
		return domain.StatusSkip
	}
}

type Policy struct {
	Mode       Mode
	Capital    float64
	TopK       int
	Thresholds Thresholds
	Bounds     Bounds
}

// Params are per-query overrides; zero values fall back to the Policy.
type Params struct {
	Mode    Mode
	Capital float64
	TopK    *int
}

func (p Policy) with(params Params) Policy {
	out := p
	if params.Mode != "" {
		out.Mode = params.Mode
	}
	if params.Capital > 0 {
		out.Capital = params.Capital
	}
	if params.TopK != nil {
		out.TopK = *params.TopK
	}
	if out.Mode == "" {
		out.Mode = ModeAllPairs
	}
	if out.Capital <= 0 {
		out.Capital = DefaultCapital
	}
	return out
}
