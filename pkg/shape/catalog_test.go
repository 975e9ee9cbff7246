package shape

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIndexes(t *testing.T) {
	c := Catalog()
	require.NotZero(t, c.Len())

	for i, s := range c.All() {
		assert.Equal(t, i, s.ID, "shape %s", s.Name)

		byID, ok := c.ByID(i)
		require.True(t, ok)
		assert.Same(t, s, byID)

		byName, ok := c.ByName(s.Name)
		require.True(t, ok)
		assert.Same(t, s, byName)
	}

	_, ok := c.ByID(-1)
	assert.False(t, ok)
	_, ok = c.ByID(c.Len())
	assert.False(t, ok)
}

func TestCatalogIsBuiltOnce(t *testing.T) {
	assert.Same(t, Catalog(), Catalog())
}

func TestLookupUnknownShape(t *testing.T) {
	_, err := Catalog().Lookup("gazebo")
	require.ErrorIs(t, err, ErrUnknownShape)
	assert.Contains(t, err.Error(), "gazebo")

	assert.Panics(t, func() { Catalog().MustLookup("gazebo") })
	assert.NotPanics(t, func() { Catalog().MustLookup("roof_tile") })
}

func TestNewTableValidates(t *testing.T) {
	_, err := NewTable([]*Shape{
		{ID: 0, Name: "a", Kind: NewCube()},
		{ID: 1, Name: "a", Kind: NewCube()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = NewTable([]*Shape{{ID: 3, Name: "a", Kind: NewCube()}})
	require.Error(t, err)

	_, err = NewTable([]*Shape{{ID: 0, Name: "a"}})
	require.Error(t, err)
}

func TestBuiltinKindsBuildGeometry(t *testing.T) {
	for _, s := range Catalog().All() {
		t.Run(s.Name, func(t *testing.T) {
			m, err := s.Kind.Geometry(s, nil)
			if errors.Is(err, ErrMissingMesh) {
				t.Skip("asset-backed")
			}
			require.NoError(t, err)
			require.False(t, m.IsEmpty())
			assert.True(t, cubeBounds.ContainsBox(m.Bounds()), "bounds %v", m.Bounds())
		})
	}
}

func TestNamesAreSnakeCase(t *testing.T) {
	for _, n := range Catalog().Names() {
		assert.Equal(t, strings.ToLower(n), n)
		assert.NotContains(t, n, " ")
	}
}

func TestFlagsString(t *testing.T) {
	assert.Equal(t, "none", Flags(0).String())
	assert.Equal(t, "upside-down|offset", (AllowUpsideDown | PlaceOffset).String())
}
