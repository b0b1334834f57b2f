package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries(t *testing.T) {
	t.Run("basic operations", func(t *testing.T) {
		s := NewSeries(5)
		assert.Equal(t, 0, s.Len())

		s.Push(1.0)
		s.Push(2.0)
		s.Push(3.0)

		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []float64{1.0, 2.0, 3.0}, s.Values())
	})

	t.Run("overflow drops oldest", func(t *testing.T) {
		s := NewSeries(3)
		for i := 1; i <= 5; i++ {
			s.Push(float64(i))
		}

		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []float64{3.0, 4.0, 5.0}, s.Values())
	})

	t.Run("last partial", func(t *testing.T) {
		s := NewSeries(10)
		for i := 1; i <= 7; i++ {
			s.Push(float64(i))
		}

		assert.Equal(t, []float64{5.0, 6.0, 7.0}, s.Last(3))
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7}, s.Last(100))
	})

	t.Run("last zero or negative", func(t *testing.T) {
		s := NewSeries(5)
		s.Push(1.0)

		assert.Nil(t, s.Last(0))
		assert.Nil(t, s.Last(-1))
	})

	t.Run("empty", func(t *testing.T) {
		s := NewSeries(5)
		assert.Nil(t, s.Values())
		_, ok := s.Latest()
		assert.False(t, ok)
		assert.Equal(t, 0.0, s.Max(10))
	})

	t.Run("latest and max", func(t *testing.T) {
		s := NewSeries(3)
		s.Push(4)
		s.Push(9)
		s.Push(2)
		s.Push(1)

		v, ok := s.Latest()
		require.True(t, ok)
		assert.Equal(t, 1.0, v)
		assert.Equal(t, 9.0, s.Max(3))
		assert.Equal(t, 2.0, s.Max(2))
	})

	t.Run("default capacity", func(t *testing.T) {
		assert.Equal(t, DefaultCapacity, NewSeries(0).Cap())
		assert.Equal(t, 500, DefaultCapacity)
	})
}

func TestSeries_CapIsExactlyLastPushed(t *testing.T) {
	for _, n := range []int{501, 750, 1000, 1337} {
		s := NewSeries(DefaultCapacity)
		for i := 0; i < n; i++ {
			s.Push(float64(i))
		}

		values := s.Values()
		require.Len(t, values, DefaultCapacity, "n=%d", n)
		for i, v := range values {
			assert.Equal(t, float64(n-DefaultCapacity+i), v)
		}
	}
}
