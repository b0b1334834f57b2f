package history

// DefaultCapacity is the number of samples retained per series.
const DefaultCapacity = 500

// Series is a fixed-capacity FIFO of samples backed by a ring buffer.
// Pushing past capacity drops the oldest sample.
type Series struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewSeries creates an empty series. A non-positive size uses DefaultCapacity.
func NewSeries(size int) *Series {
	if size <= 0 {
		size = DefaultCapacity
	}
	return &Series{
		data: make([]float64, size),
		size: size,
	}
}

// Push appends a sample.
func (r *Series) Push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// Len returns the number of stored samples.
func (r *Series) Len() int {
	return r.count
}

// Cap returns the series capacity.
func (r *Series) Cap() int {
	return r.size
}

// Latest returns the most recent sample.
func (r *Series) Latest() (float64, bool) {
	if r.count == 0 {
		return 0, false
	}
	return r.data[(r.head-1+r.size)%r.size], true
}

// Last returns the last count samples in chronological order (oldest first).
// Returns fewer values if not enough history is available.
func (r *Series) Last(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head is the next write position, so the newest value is at head-1.
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}

// Values returns every stored sample, oldest first.
func (r *Series) Values() []float64 {
	return r.Last(r.count)
}

// Max returns the largest of the last count samples, or 0 when empty.
func (r *Series) Max(count int) float64 {
	var m float64
	for i, v := range r.Last(count) {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
