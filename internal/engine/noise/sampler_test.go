package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(kind Kind, octaves int, seed int64) Config {
	return Config{Kind: kind, Octaves: octaves, Persistence: 0.5, Seed: &seed}
}

func TestSamplerRange(t *testing.T) {
	for _, kind := range []Kind{KindSimplex, KindPerlin} {
		for _, octaves := range []int{1, 4} {
			s, err := New(seeded(kind, octaves, 7))
			require.NoError(t, err)

			for i := 0; i < 2000; i++ {
				f := float64(i)
				v := s.Sample(f*0.37-300, f*0.11, -f*0.53)
				assert.GreaterOrEqual(t, v, -1.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestSamplerExtremeInputs(t *testing.T) {
	points := [][3]float64{
		{1e10, 0.5, 0.5},
		{-1e10, 0.5, 0.5},
		{1e20, 0.5, 0.5},
		{-1e38, 0.5, 0.5},
		{1e38, 0.5, 0.5},
		{-1e300, -3.3e299, 1e300},
		{math.MaxFloat64, math.MaxFloat64, -math.MaxFloat64},
		{math.SmallestNonzeroFloat64, 0, -math.SmallestNonzeroFloat64},
	}

	for _, kind := range []Kind{KindSimplex, KindPerlin} {
		for _, octaves := range []int{1, 3} {
			s, err := New(seeded(kind, octaves, 7))
			require.NoError(t, err)

			for _, p := range points {
				v := s.Sample(p[0], p[1], p[2])
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0),
					"%s/%d at %v: got %v", kind, octaves, p, v)
				assert.Less(t, math.Abs(v), 1.0,
					"%s/%d at %v saturated", kind, octaves, p)
			}
		}
	}
}

func TestPerlinRepeatsWithLatticePeriod(t *testing.T) {
	s, err := New(seeded(KindPerlin, 3, 11))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		x, y, z := float64(i)*0.23+0.1, float64(i)*-0.17, 0.4
		want := s.Sample(x, y, z)
		assert.InDelta(t, want, s.Sample(x+4*perlinPeriod, y, z), 1e-9)
		assert.InDelta(t, want, s.Sample(x, y-perlinPeriod, z+2*perlinPeriod), 1e-9)
	}
}

func TestSamplerDeterministic(t *testing.T) {
	a, err := New(seeded(KindSimplex, 3, 42))
	require.NoError(t, err)
	b, err := New(seeded(KindSimplex, 3, 42))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		x, y, z := float64(i)*0.1, float64(i)*0.2, float64(i)*-0.3
		assert.Equal(t, a.Sample(x, y, z), b.Sample(x, y, z))
		assert.Equal(t, a.Sample(x, y, z), a.Sample(x, y, z))
	}
}

func TestSamplerSeedsDiffer(t *testing.T) {
	a, err := New(seeded(KindSimplex, 1, 1))
	require.NoError(t, err)
	b, err := New(seeded(KindSimplex, 1, 2))
	require.NoError(t, err)

	differs := false
	for i := 0; i < 50 && !differs; i++ {
		x := float64(i) * 0.31
		differs = a.Sample(x, 0.5, -x) != b.Sample(x, 0.5, -x)
	}
	assert.True(t, differs, "different seeds should produce different fields")
}

func TestSamplerReportsSeed(t *testing.T) {
	s, err := New(seeded(KindPerlin, 1, 99))
	require.NoError(t, err)
	assert.Equal(t, int64(99), s.Seed())
	assert.Equal(t, KindPerlin, s.Kind())

	cfg := DefaultConfig()
	random, err := New(cfg)
	require.NoError(t, err)

	again := cfg
	seed := random.Seed()
	again.Seed = &seed
	replay, err := New(again)
	require.NoError(t, err)
	assert.Equal(t, random.Sample(0.3, 0.6, 0.9), replay.Sample(0.3, 0.6, 0.9))
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown kind", Config{Kind: "worley", Octaves: 1}},
		{"zero octaves", Config{Kind: KindSimplex, Octaves: 0}},
		{"zero persistence", Config{Kind: KindSimplex, Octaves: 2, Persistence: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindSimplex, k)

	k, err = ParseKind(" Perlin ")
	require.NoError(t, err)
	assert.Equal(t, KindPerlin, k)

	_, err = ParseKind("value")
	assert.Error(t, err)
}

func TestFactoryUsesSeed(t *testing.T) {
	factory := DefaultConfig().Factory()
	a, err := factory(5)
	require.NoError(t, err)
	b, err := factory(5)
	require.NoError(t, err)

	assert.Equal(t, a.Sample(1.5, 2.5, 3.5), b.Sample(1.5, 2.5, 3.5))
	assert.Equal(t, int64(5), a.(*Sampler).Seed())
}

func TestConstantAndClamp(t *testing.T) {
	assert.Equal(t, 0.25, Constant(0.25).Sample(10, 20, 30))
	assert.Equal(t, 1.0, clamp(3))
	assert.Equal(t, -1.0, clamp(-3))

	f := FieldFunc(func(x, y, z float64) float64 { return x + y + z })
	assert.Equal(t, 6.0, f.Sample(1, 2, 3))
}
