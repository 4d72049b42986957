package tableau

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		l, d, n int
		wantErr bool
	}{
		{"minimal", 1, 0, 1, false},
		{"maximal", 999, 10, 10, false},
		{"zero length", 0, 0, 1, true},
		{"negative length", -3, 0, 1, true},
		{"length 1000", 1000, 0, 1, true},
		{"negative defects", 5, -1, 1, true},
		{"too many defects", 5, 11, 1, true},
		{"zero periods", 5, 0, 0, true},
		{"too many periods", 5, 0, 11, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.l, tt.d, tt.n)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.l, s.Len())
			assert.Equal(t, tt.d, s.DefectChains())
			assert.Equal(t, tt.n, s.Periods())
			assert.Equal(t, 1, s.Rows())
			assert.Equal(t, 2*tt.l+1, s.NumColumns())
		})
	}
}

func TestNew_IdentityWithPhaseSet(t *testing.T) {
	s, err := New(7, 0, 1)
	require.NoError(t, err)

	for i := 0; i < s.Len(); i++ {
		z, x, err := s.Site(0, i)
		require.NoError(t, err)
		assert.Equal(t, uint8(0), z, "z bit of site %d", i)
		assert.Equal(t, uint8(0), x, "x bit of site %d", i)
	}
	r, err := s.PhaseBit(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), r)
}

func TestNewBatch_RowsAcrossWords(t *testing.T) {
	s, err := NewBatch(3, 0, 1, 130)
	require.NoError(t, err)
	assert.Equal(t, 130, s.Rows())
	assert.Len(t, s.Phase(), 3)
	assert.Equal(t, 130, s.Phase().OnesCount(), "padding bits must stay clear")

	_, err = NewBatch(3, 0, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestWeights_PresentAndUnmutated(t *testing.T) {
	s, err := NewBatch(4, 0, 1, 3)
	require.NoError(t, err)

	w := s.Weights()
	require.Len(t, w, 3)
	w[0] = 42
	assert.Equal(t, []float64{1, 1, 1}, s.Weights())
}

func TestSetSite(t *testing.T) {
	s, err := New(5, 0, 1)
	require.NoError(t, err)

	require.NoError(t, s.SetSite(0, 0, 0, 1))
	require.NoError(t, s.SetSite(0, 4, 1, 1))

	z, x, err := s.Site(0, 0)
	require.NoError(t, err)
	assert.Equal(t, [2]uint8{0, 1}, [2]uint8{z, x})

	z, x, err = s.Site(0, 4)
	require.NoError(t, err)
	assert.Equal(t, [2]uint8{1, 1}, [2]uint8{z, x})

	// Only the low bit of each argument is used.
	require.NoError(t, s.SetSite(0, 2, 2, 3))
	z, x, _ = s.Site(0, 2)
	assert.Equal(t, [2]uint8{0, 1}, [2]uint8{z, x})
}

func TestSetSite_OutOfBounds(t *testing.T) {
	s, err := New(5, 0, 1)
	require.NoError(t, err)
	before := s.Clone()

	for _, tc := range []struct {
		name      string
		row, site int
	}{
		{"site -1", 0, -1},
		{"site L", 0, 5},
		{"row 1", 1, 0},
		{"row -1", -1, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := s.SetSite(tc.row, tc.site, 1, 1)
			assert.ErrorIs(t, err, ErrIndexOutOfBounds)
			assert.True(t, s.Equal(before), "state mutated on failed SetSite")
		})
	}
}

func TestColumn_Accessors(t *testing.T) {
	s, err := New(3, 0, 1)
	require.NoError(t, err)
	require.NoError(t, s.SetSite(0, 1, 1, 0))

	col, err := s.Column(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), col.Bit(0), "column 1 is z of site 1")

	col, err = s.Column(3 + 1)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), col.Bit(0), "column L+1 is x of site 1")

	_, err = s.Column(7)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	require.NoError(t, s.SetColumn(3+2, Column{1}))
	_, x, _ := s.Site(0, 2)
	assert.Equal(t, uint8(1), x)

	assert.ErrorIs(t, s.SetColumn(0, Column{1, 0}), ErrIndexOutOfBounds)
}

func TestClone_Independent(t *testing.T) {
	s, err := New(4, 2, 3)
	require.NoError(t, err)
	require.NoError(t, s.SetSite(0, 3, 1, 0))

	c := s.Clone()
	require.True(t, c.Equal(s))
	assert.Equal(t, 2, c.DefectChains())
	assert.Equal(t, 3, c.Periods())

	require.NoError(t, c.SetSite(0, 0, 1, 1))
	assert.False(t, c.Equal(s))
}
