package check

type Direction string

const (
	// DirectionAbove flags values that climb past the thresholds, the
	// usual shape for usage percentages.
	DirectionAbove Direction = "above"
	// DirectionBelow flags values that fall under the thresholds, for
	// free-space style metrics.
	DirectionBelow Direction = "below"
)

// Threshold is one classification rule, built once from configuration
// and passed to checkers by value. Comparisons are strict, so a value
// exactly on a boundary takes the lower severity.
type Threshold struct {
	Metric    string
	Warning   float64
	Critical  float64
	Direction Direction
}

// Classify compares critical-first, then warning, else OK.
func (t Threshold) Classify(v float64) Status {
	if t.Direction == DirectionBelow {
		switch {
		case v < t.Critical:
			return StatusCritical
		case v < t.Warning:
			return StatusWarning
		}
		return StatusOK
	}
	switch {
	case v > t.Critical:
		return StatusCritical
	case v > t.Warning:
		return StatusWarning
	}
	return StatusOK
}
