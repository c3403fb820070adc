package game

// Smooth applies one step of exponential smoothing:
// alpha*raw + (1-alpha)*previous. Alpha must be in (0, 1]; smaller values
// smooth more and lag more.
func Smooth(raw, previous, alpha float64) float64 {
	return alpha*raw + (1-alpha)*previous
}

// Filter carries the smoothed value across frames.
type Filter struct {
	alpha float64
	value float64
}

// NewFilter creates a filter seeded with an initial value.
func NewFilter(alpha, initial float64) Filter {
	return Filter{alpha: alpha, value: initial}
}

// Update feeds one raw sample and returns the new smoothed value.
func (f *Filter) Update(raw float64) float64 {
	f.value = Smooth(raw, f.value, f.alpha)
	return f.value
}

// Reset discards history and restarts from v.
func (f *Filter) Reset(v float64) {
	f.value = v
}

// Value returns the last smoothed value.
func (f Filter) Value() float64 {
	return f.value
}
