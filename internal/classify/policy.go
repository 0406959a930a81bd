package classify

// Policy centralizes the classification thresholds and weights.
type Policy struct {
	ParallelBLEU      float64
	NumberOverlapMin  float64
	SparseNumberLimit int
	NeutralRatio      float64
	LengthWeight      float64
	NumberWeight      float64
	CompositeMin      float64
	ComparableMin     float64
}

// DefaultPolicy returns the thresholds tuned on the federal gazette corpus.
func DefaultPolicy() Policy {
	return Policy{
		ParallelBLEU:      0.1,
		NumberOverlapMin:  0.4,
		SparseNumberLimit: 3,
		NeutralRatio:      0.4,
		LengthWeight:      0.2,
		NumberWeight:      0.8,
		CompositeMin:      0.55,
		ComparableMin:     0.5,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()

	if p.ParallelBLEU <= 0 || p.ParallelBLEU >= 1 {
		p.ParallelBLEU = d.ParallelBLEU
	}
	if p.NumberOverlapMin <= 0 || p.NumberOverlapMin > 1 {
		p.NumberOverlapMin = d.NumberOverlapMin
	}
	if p.SparseNumberLimit < 0 {
		p.SparseNumberLimit = d.SparseNumberLimit
	}
	if p.NeutralRatio <= 0 || p.NeutralRatio > 1 {
		p.NeutralRatio = d.NeutralRatio
	}
	if p.LengthWeight < 0 || p.NumberWeight < 0 || p.LengthWeight+p.NumberWeight == 0 {
		p.LengthWeight = d.LengthWeight
		p.NumberWeight = d.NumberWeight
	}
	if p.CompositeMin <= 0 || p.CompositeMin >= 1 {
		p.CompositeMin = d.CompositeMin
	}
	if p.ComparableMin <= 0 || p.ComparableMin >= 1 {
		p.ComparableMin = d.ComparableMin
	}
	return p
}

// Normalized returns p with out-of-range values replaced by defaults.
func (p Policy) Normalized() Policy {
	return p.normalized()
}
