package phtree

import (
	"fmt"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntKeyRoundTrip(t *testing.T) {
	t.Parallel()

	for _, width := range []int{Width8, Width16, Width32, Width64} {
		var (
			width = width
			max   = int64(1)<<(width-1) - 1
			min   = -int64(1) << (width - 1)
		)

		t.Run(fmt.Sprintf("width:%d", width), func(t *testing.T) {
			t.Parallel()

			for _, value := range []int64{0, 1, -1, 2, -2, max, min, max - 1, min + 1} {
				key := IntToKey(value, width)

				assert.Zero(t, key&^keyMask(width), "key %064b exceeds width %d", key, width)
				assert.Equal(t, value, KeyToInt(key, width), "value %d", value)
			}
		})
	}
}

func TestIntKeyOrder(t *testing.T) {
	t.Parallel()

	// exhaustive at 8 bits: unsigned key order must equal signed value order
	prev := IntToKey(-128, Width8)

	for value := int64(-127); value <= 127; value++ {
		key := IntToKey(value, Width8)

		require.Greater(t, key, prev, "key order broken at %d", value)
		prev = key
	}

	// spot checks at 64 bits
	faker := gofakeit.New(7)

	for i := 0; i < 1000; i++ {
		var (
			a = faker.Int64()
			b = faker.Int64()
		)

		assert.Equal(t, a < b, IntToKey(a, Width64) < IntToKey(b, Width64),
			"a=%d b=%d", a, b)
	}
}

func TestFloat32KeyRoundTrip(t *testing.T) {
	t.Parallel()

	values := []float32{
		0,
		1.5,
		-1.5,
		math.MaxFloat32,
		-math.MaxFloat32,
		math.SmallestNonzeroFloat32,
		-math.SmallestNonzeroFloat32,
		float32(math.Inf(1)),
		float32(math.Inf(-1)),
	}

	for _, value := range values {
		assert.Equal(t, value, KeyToFloat32(Float32ToKey(value)), "value %v", value)
	}

	// negative zero collapses to positive zero
	negZero := float32(math.Copysign(0, -1))
	back := KeyToFloat32(Float32ToKey(negZero))

	assert.Equal(t, float32(0), back)
	assert.False(t, math.Signbit(float64(back)))

	// NaN survives, though not bit-exactly specified
	assert.True(t, math.IsNaN(float64(KeyToFloat32(Float32ToKey(float32(math.NaN()))))))
}

func TestFloat32KeyOrder(t *testing.T) {
	t.Parallel()

	// strictly ascending, infinities included
	ordered := []float32{
		float32(math.Inf(-1)),
		-math.MaxFloat32,
		-1,
		-math.SmallestNonzeroFloat32,
		0,
		math.SmallestNonzeroFloat32,
		1,
		math.MaxFloat32,
		float32(math.Inf(1)),
	}

	for i := 1; i < len(ordered); i++ {
		assert.Less(t, Float32ToKey(ordered[i-1]), Float32ToKey(ordered[i]),
			"%v should order below %v", ordered[i-1], ordered[i])
	}

	faker := gofakeit.New(11)

	for i := 0; i < 1000; i++ {
		var (
			a = faker.Float32Range(-1e6, 1e6)
			b = faker.Float32Range(-1e6, 1e6)
		)

		assert.Equal(t, a < b, Float32ToKey(a) < Float32ToKey(b), "a=%v b=%v", a, b)
	}
}

func TestFloat64KeyRoundTrip(t *testing.T) {
	t.Parallel()

	values := []float64{
		0,
		1.5,
		-1.5,
		math.MaxFloat64,
		-math.MaxFloat64,
		math.SmallestNonzeroFloat64,
		-math.SmallestNonzeroFloat64,
		math.Inf(1),
		math.Inf(-1),
	}

	for _, value := range values {
		assert.Equal(t, value, KeyToFloat64(Float64ToKey(value)), "value %v", value)
	}

	back := KeyToFloat64(Float64ToKey(math.Copysign(0, -1)))

	assert.Equal(t, float64(0), back)
	assert.False(t, math.Signbit(back))
}

func TestFloat64KeyOrder(t *testing.T) {
	t.Parallel()

	faker := gofakeit.New(13)

	for i := 0; i < 1000; i++ {
		var (
			a = faker.Float64Range(-1e9, 1e9)
			b = faker.Float64Range(-1e9, 1e9)
		)

		assert.Equal(t, a < b, Float64ToKey(a) < Float64ToKey(b), "a=%v b=%v", a, b)
	}
}
