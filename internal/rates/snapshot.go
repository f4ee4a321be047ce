// Package rates holds the daily currency conversion snapshot and the jobs that
// refresh it.
package rates

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	ErrUnsupportedPair = errors.New("unsupported currency pair")
	ErrInvalidSnapshot = errors.New("invalid rate snapshot")
	ErrNoSnapshot      = errors.New("no rate snapshot loaded")
)

// reciprocalTolerance bounds |r(a,b)*r(b,a) - 1| for a valid matrix
const reciprocalTolerance = 1e-6

// RateTable is a read-only pairwise conversion matrix.
type RateTable interface {
	Rate(from, to string) (float64, error)
	Date() string
	Currencies() []string
}

// Snapshot is one dated, fully pairwise rate matrix. Rates[from][to] converts
// one unit of from into to.
type Snapshot struct {
	SnapshotDate string                        `json:"date"`
	Base         string                        `json:"base,omitempty"`
	Rates        map[string]map[string]float64 `json:"rates"`
}

func (s *Snapshot) Date() string {
	return s.SnapshotDate
}

// Rate returns 1 for identical currencies, otherwise the stored pairwise rate.
func (s *Snapshot) Rate(from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return 1, nil
	}
	if row, ok := s.Rates[from]; ok {
		if rate, ok := row[to]; ok {
			return rate, nil
		}
	}
	return 0, fmt.Errorf("%w: %s->%s", ErrUnsupportedPair, from, to)
}

// Currencies lists every currency the matrix mentions, sorted.
func (s *Snapshot) Currencies() []string {
	set := make(map[string]struct{})
	for from, row := range s.Rates {
		set[from] = struct{}{}
		for to := range row {
			set[to] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Validate checks the matrix is complete, positive and reciprocal. When
// required is non-empty every listed currency must be present.
func (s *Snapshot) Validate(required ...string) error {
	if s.SnapshotDate == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidSnapshot)
	}

	currencies := s.Currencies()
	present := make(map[string]struct{}, len(currencies))
	for _, c := range currencies {
		present[c] = struct{}{}
	}
	for _, c := range required {
		if _, ok := present[strings.ToUpper(c)]; !ok {
			return fmt.Errorf("%w: missing currency %s", ErrInvalidSnapshot, c)
		}
	}
	if len(currencies) < 2 {
		return fmt.Errorf("%w: need at least two currencies", ErrInvalidSnapshot)
	}

	for _, from := range currencies {
		for _, to := range currencies {
			if from == to {
				continue
			}
			rate, ok := s.Rates[from][to]
			if !ok {
				return fmt.Errorf("%w: missing pair %s->%s", ErrInvalidSnapshot, from, to)
			}
			if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
				return fmt.Errorf("%w: non-positive rate %s->%s", ErrInvalidSnapshot, from, to)
			}
			back := s.Rates[to][from]
			if math.Abs(rate*back-1) > reciprocalTolerance {
				return fmt.Errorf("%w: %s->%s and %s->%s are not reciprocal", ErrInvalidSnapshot, from, to, to, from)
			}
		}
	}
	return nil
}

// BuildFromBase derives the full matrix from base->currency quotes. Reciprocals
// and cross rates are computed here so lookups never derive them lazily.
func BuildFromBase(date, base string, quotes map[string]float64) (*Snapshot, error) {
	base = strings.ToUpper(base)
	units := map[string]float64{base: 1}
	for currency, quote := range quotes {
		currency = strings.ToUpper(currency)
		if currency == base {
			continue
		}
		if quote <= 0 || math.IsNaN(quote) || math.IsInf(quote, 0) {
			return nil, fmt.Errorf("%w: quote %s->%s is %v", ErrInvalidSnapshot, base, currency, quote)
		}
		units[currency] = quote
	}

	matrix := make(map[string]map[string]float64, len(units))
	for from, fromUnits := range units {
		row := make(map[string]float64, len(units)-1)
		for to, toUnits := range units {
			if from == to {
				continue
			}
			row[to] = toUnits / fromUnits
		}
		matrix[from] = row
	}

	snapshot := &Snapshot{SnapshotDate: date, Base: base, Rates: matrix}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}
