package filter

// Range is an inclusive price range. A nil bound is open on that side.
type Range struct {
	min *float64
	max *float64
}

// NewRange creates a Range. ok is false when both bounds are nil, which means
// the facet is absent. min > max is kept as-is and matches nothing.
func NewRange(minPrice, maxPrice *float64) (r Range, ok bool) {
	if minPrice == nil && maxPrice == nil {
		return Range{}, false
	}
	if minPrice != nil {
		v := *minPrice
		r.min = &v
	}
	if maxPrice != nil {
		v := *maxPrice
		r.max = &v
	}
	return r, true
}

// Min returns the inclusive lower bound, or nil.
func (r Range) Min() *float64 { return r.min }

// Max returns the inclusive upper bound, or nil.
func (r Range) Max() *float64 { return r.max }

// Contains reports whether price lies within the range.
func (r Range) Contains(price float64) bool {
	if r.min != nil && price < *r.min {
		return false
	}
	if r.max != nil && price > *r.max {
		return false
	}
	return true
}

// QuickRange is a preset price range offered by the sidebar.
type QuickRange struct {
	Min *float64
	Max *float64
}

func bound(v float64) *float64 { return &v }

// QuickRanges are the sidebar presets: under 25, 25-50, 50-100, over 100.
var QuickRanges = []QuickRange{
	{Max: bound(25)},
	{Min: bound(25), Max: bound(50)},
	{Min: bound(50), Max: bound(100)},
	{Min: bound(100)},
}
