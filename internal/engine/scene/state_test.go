package scene

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/strangefruit/internal/engine/mesh"
	"github.com/Faultbox/strangefruit/internal/engine/noise"
)

func smallParams() mesh.Params {
	p := mesh.DefaultParams()
	p.Segments = 12
	return p
}

func TestNewDefaults(t *testing.T) {
	s := New(Options{RotationSpeed: DefaultRotationSpeed, Wireframe: true})

	assert.Equal(t, float32(DefaultRotationSpeed), s.RotationSpeed())
	assert.True(t, s.Wireframe())
	assert.Nil(t, s.Mesh())
	assert.Equal(t, uint64(0), s.Generation())
}

func TestRotationSpeed(t *testing.T) {
	s := New(Options{})

	s.SetRotationSpeed(0.25)
	assert.Equal(t, float32(0.25), s.RotationSpeed())

	s.SetRotationSpeed(0.1)
	assert.InDelta(t, 0.11, s.StepRotationSpeed(RotationStep), 1e-6)
	assert.InDelta(t, 0.10, s.StepRotationSpeed(-RotationStep), 1e-6)

	for i := 0; i < 100; i++ {
		s.StepRotationSpeed(RotationStep)
	}
	assert.InDelta(t, 1.10, s.RotationSpeed(), 1e-6)
}

func TestToggleWireframe(t *testing.T) {
	s := New(Options{})

	assert.True(t, s.ToggleWireframe())
	assert.True(t, s.Wireframe())
	assert.False(t, s.ToggleWireframe())

	s.SetWireframe(true)
	assert.True(t, s.Snapshot().Wireframe)
}

func TestRotationAngle(t *testing.T) {
	s := New(Options{RotationSpeed: 0.5})

	assert.InDelta(t, 1.0, s.RotationAngle(2*time.Second), 1e-6)
	assert.InDelta(t, 0, s.RotationAngle(0), 1e-9)

	m := s.ModelMatrix(0)
	assert.Equal(t, float32(1), m[0])
	assert.Equal(t, float32(1), m[5])
}

func TestRegeneratePublishes(t *testing.T) {
	s := New(Options{Logger: zaptest.NewLogger(t)})

	m, err := s.RegenerateSeeded(smallParams(), 42)
	require.NoError(t, err)

	assert.Same(t, m, s.Mesh())
	assert.Equal(t, uint64(1), s.Generation())
	assert.Equal(t, int64(42), s.Seed())

	snap := s.Snapshot()
	assert.Same(t, m, snap.Mesh)
	assert.Equal(t, uint64(1), snap.Generation)
}

func TestRegenerateSeededIsReproducible(t *testing.T) {
	a := New(Options{})
	b := New(Options{})

	ma, err := a.RegenerateSeeded(smallParams(), 7)
	require.NoError(t, err)
	mb, err := b.RegenerateSeeded(smallParams(), 7)
	require.NoError(t, err)

	assert.Equal(t, ma.Vertices, mb.Vertices)
}

func TestRegenerateUsesFreshField(t *testing.T) {
	var seeds []int64
	factory := func(seed int64) (noise.Field, error) {
		seeds = append(seeds, seed)
		return noise.DefaultConfig().Factory()(seed)
	}
	s := New(Options{Factory: factory})

	first, err := s.Regenerate(smallParams())
	require.NoError(t, err)
	second, err := s.Regenerate(smallParams())
	require.NoError(t, err)

	require.Len(t, seeds, 2)
	assert.NotEqual(t, seeds[0], seeds[1])
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Indices, second.Indices)
	assert.NotEqual(t, first.Vertices, second.Vertices)
	assert.Equal(t, uint64(2), s.Generation())
}

func TestRegenerateLeavesCapturedMeshUntouched(t *testing.T) {
	s := New(Options{})

	captured, err := s.RegenerateSeeded(smallParams(), 1)
	require.NoError(t, err)

	positions := make([]mesh.Vertex, len(captured.Vertices))
	copy(positions, captured.Vertices)
	indices := append([]uint32(nil), captured.Indices...)

	_, err = s.RegenerateSeeded(smallParams(), 2)
	require.NoError(t, err)

	assert.NotSame(t, captured, s.Mesh())
	assert.Equal(t, positions, captured.Vertices)
	assert.Equal(t, indices, captured.Indices)
}

func TestRegenerateErrorKeepsPreviousMesh(t *testing.T) {
	s := New(Options{})

	prev, err := s.RegenerateSeeded(smallParams(), 3)
	require.NoError(t, err)

	bad := smallParams()
	bad.Segments = 2
	m, err := s.Regenerate(bad)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)

	assert.Same(t, prev, s.Mesh())
	assert.Equal(t, uint64(1), s.Generation())
	assert.Equal(t, int64(3), s.Seed())
}

func TestRegenerateFactoryError(t *testing.T) {
	boom := errors.New("no entropy")
	s := New(Options{Factory: func(int64) (noise.Field, error) { return nil, boom }})

	_, err := s.Regenerate(smallParams())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, s.Mesh())
}

func TestConcurrentRegenerateAndRead(t *testing.T) {
	s := New(Options{RotationSpeed: DefaultRotationSpeed})
	params := smallParams()
	params.Segments = 6

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			_, err := s.RegenerateSeeded(params, seed)
			assert.NoError(t, err)
		}(int64(i))
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		var last uint64
		for i := 0; i < 1000; i++ {
			snap := s.Snapshot()
			assert.GreaterOrEqual(t, snap.Generation, last)
			last = snap.Generation
			if snap.Mesh != nil {
				assert.Len(t, snap.Mesh.Vertices, 49)
			}
			s.StepRotationSpeed(RotationStep)
			s.ToggleWireframe()
		}
	}()

	wg.Wait()
	assert.Equal(t, uint64(8), s.Generation())
}

func TestSetFactory(t *testing.T) {
	s := New(Options{})

	calls := 0
	s.SetFactory(func(int64) (noise.Field, error) {
		calls++
		return noise.Constant(1), nil
	})

	m, err := s.RegenerateSeeded(smallParams(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	lo, hi := m.RadiusRange()
	assert.InDelta(t, 1.2, lo, 1e-5)
	assert.InDelta(t, 1.2, hi, 1e-5)
}

func TestSnapRotationSpeed(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.1, 0.1},
		{0.123, 0.12},
		{0.126, 0.13},
		{-0.004, 0},
		{-0.051, -0.05},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, SnapRotationSpeed(tt.in), 1e-6, "snap(%v)", tt.in)
	}
}
