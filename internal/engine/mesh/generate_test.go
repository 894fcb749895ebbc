package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/strangefruit/internal/engine/noise"
)

func TestGenerate(t *testing.T) {
	params := DefaultParams()
	params.Segments = 16

	m, err := Generate(params, noise.Constant(0), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	assert.Equal(t, 17*17, len(m.Vertices))
	assert.Equal(t, float32(1), m.Radius)
}

func TestGenerateIndexBufferIgnoresNoise(t *testing.T) {
	params := DefaultParams()
	params.Segments = 10

	a, err := Generate(params, noise.Constant(0.3))
	require.NoError(t, err)

	params.NoiseScale = 4
	params.DisplacementStrength = 0.5
	b, err := Generate(params, seededField(t, 8))
	require.NoError(t, err)

	assert.Equal(t, a.Indices, b.Indices)
}

func TestParamsValidateCollectsAllErrors(t *testing.T) {
	p := Params{Radius: -1, Segments: 2, NoiseScale: 0, DisplacementStrength: -1, Workers: -2}

	err := p.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = Generate(p, noise.Constant(0))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr bool
	}{
		{"defaults", func(*Params) {}, false},
		{"three segments", func(p *Params) { p.Segments = 3 }, false},
		{"two segments", func(p *Params) { p.Segments = 2 }, true},
		{"max segments", func(p *Params) { p.Segments = MaxSegments }, false},
		{"above max segments", func(p *Params) { p.Segments = MaxSegments + 1 }, true},
		{"index overflow segments", func(p *Params) { p.Segments = 65535 }, true},
		{"zero radius", func(p *Params) { p.Radius = 0 }, true},
		{"negative radius", func(p *Params) { p.Radius = -1 }, true},
		{"zero strength", func(p *Params) { p.DisplacementStrength = 0 }, false},
		{"negative noise scale", func(p *Params) { p.NoiseScale = -0.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParameter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateWrapsSamplerError(t *testing.T) {
	params := DefaultParams()
	params.Segments = 4

	field := noise.FieldFunc(func(x, y, z float64) float64 {
		if y > 0.4 {
			return 2 / (y - y)
		}
		return 0
	})

	m, err := Generate(params, field)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrNonFiniteSample)
}
