package opportunity

import (
	"errors"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrCodeRequired    = errors.New("currency code is required")
	ErrCodeUnsupported = errors.New("currency not supported")
	ErrModeUnsupported = errors.New("mode must be all_pairs or corridor")
	ErrCapitalInvalid  = errors.New("capital must be a positive number")
	ErrTopKInvalid     = errors.New("top_k must be a non-negative integer")
)

type Validator struct {
	supportedCodesSet map[string]struct{} // read only copy
	supportedCodesLst []string            // read only copy
}

func NewValidator(supportedCurrencies map[string]struct{}) *Validator {
	codesSet := maps.Clone(supportedCurrencies)
	codesLst := slices.Collect(maps.Keys(codesSet))
	slices.Sort(codesLst)

	return &Validator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}

func (v *Validator) ValidateCode(code string) error {
	if code == "" {
		return ErrCodeRequired
	}
	if _, ok := v.supportedCodesSet[code]; !ok {
		return ErrCodeUnsupported
	}
	return nil
}

func (v *Validator) SupportedCodes() []string {
	return slices.Clone(v.supportedCodesLst)
}

// ParseParams reads the optional mode, capital and top_k query values.
// Empty strings leave the policy default in place.
func (v *Validator) ParseParams(mode, capital, topK string) (Params, error) {
	var p Params

	if mode = strings.ToLower(strings.TrimSpace(mode)); mode != "" {
		m, err := ParseMode(mode)
		if err != nil {
			return Params{}, ErrModeUnsupported
		}
		p.Mode = m
	}

	if capital = strings.TrimSpace(capital); capital != "" {
		c, err := strconv.ParseFloat(capital, 64)
		if err != nil || math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
			return Params{}, ErrCapitalInvalid
		}
		p.Capital = c
	}

	if topK = strings.TrimSpace(topK); topK != "" {
		k, err := strconv.Atoi(topK)
		if err != nil || k < 0 {
			return Params{}, ErrTopKInvalid
		}
		p.TopK = &k
	}

	return p, nil
}
