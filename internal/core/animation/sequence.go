package animation

// Segment is one weighted leg of a Sequence.
type Segment struct {
	Weight float64
	Begin  float64
	End    float64
}

// Sequence is a curve made of weighted linear segments. Each segment spans
// a share of [0,1] proportional to its weight. A zero-weight segment only
// defines the value at its instant.
type Sequence []Segment

// Transform implements Curve.
func (sequence Sequence) Transform(t float64) float64 {
	if len(sequence) == 0 {
		return t
	}
	t = clamp01(t)

	var total float64
	last := -1
	for index, segment := range sequence {
		if segment.Weight > 0 {
			total += segment.Weight
			last = index
		}
	}
	if total <= 0 {
		return sequence[len(sequence)-1].End
	}
	if t == 0 {
		return sequence[0].Begin
	}

	start := 0.0
	for index, segment := range sequence {
		if segment.Weight <= 0 {
			continue
		}
		share := segment.Weight / total
		end := start + share
		if t <= end || index == last {
			local := clamp01((t - start) / share)
			return segment.Begin + (segment.End-segment.Begin)*local
		}
		start = end
	}
	return sequence[len(sequence)-1].End
}
