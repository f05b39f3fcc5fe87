// Package facility turns head counts into the congestion levels shown on the
// facility status screen.
package facility

import "sigma_app/internal/catalog"

// Level is a congestion bucket.
type Level int

const (
	Unknown Level = iota
	Relaxed
	Moderate
	Crowded
)

const (
	relaxedBelow  = 0.3
	moderateBelow = 0.8
)

// Label returns the Korean label used on screen.
func (l Level) Label() string {
	switch l {
	case Relaxed:
		return "여유"
	case Moderate:
		return "보통"
	case Crowded:
		return "혼잡"
	default:
		return "정보 없음"
	}
}

func (l Level) String() string {
	switch l {
	case Relaxed:
		return "relaxed"
	case Moderate:
		return "moderate"
	case Crowded:
		return "crowded"
	default:
		return "unknown"
	}
}

// Status is a facility with its occupancy rate and level.
type Status struct {
	Facility catalog.Facility
	// Rate is current/total clamped to [0, 1].
	Rate  float64
	Level Level
}

// Percent returns Rate as a whole percentage.
func (s Status) Percent() int {
	return int(s.Rate*100 + 0.5)
}

// Occupancy returns current/total clamped to [0, 1], and false when total is
// not positive.
func Occupancy(current, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	rate := float64(current) / float64(total)
	switch {
	case rate < 0:
		rate = 0
	case rate > 1:
		rate = 1
	}
	return rate, true
}

// Classify buckets an occupancy: below 30% relaxed, below 80% moderate,
// otherwise crowded.
func Classify(current, total int) Level {
	rate, ok := Occupancy(current, total)
	if !ok {
		return Unknown
	}
	switch {
	case rate < relaxedBelow:
		return Relaxed
	case rate < moderateBelow:
		return Moderate
	default:
		return Crowded
	}
}

// Statuses classifies every facility, keeping input order.
func Statuses(facilities []catalog.Facility) []Status {
	out := make([]Status, 0, len(facilities))
	for _, f := range facilities {
		rate, _ := Occupancy(f.Current, f.Total)
		out = append(out, Status{
			Facility: f,
			Rate:     rate,
			Level:    Classify(f.Current, f.Total),
		})
	}
	return out
}
