package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_RejectsForeignAttributes(t *testing.T) {
	r := NewRecord("length", "width")

	err := r.Set("thickness1", "6", OriginUser)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAttribute))
	assert.Equal(t, []string{"length", "width"}, r.Names())
}

func TestRecord_SetKeepsOrderAndOrigin(t *testing.T) {
	r := NewRecord("b", "a", "b")
	require.NoError(t, r.Set("a", "1.5", OriginUser))

	assert.Equal(t, []string{"b", "a"}, r.Names())
	f, ok := r.Field("a")
	require.True(t, ok)
	assert.Equal(t, "1.5", f.Value)
	assert.Equal(t, OriginUser, f.Origin)

	v, ok := r.Float("a")
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = r.Float("b")
	assert.False(t, ok, "blank is not a number")
}

func TestRecord_ClearResetsOrigin(t *testing.T) {
	r := NewRecord("def")
	require.NoError(t, r.Set("def", "", OriginUser))
	f, _ := r.Field("def")
	assert.True(t, f.Blank())
	assert.Equal(t, OriginUser, f.Origin)

	require.NoError(t, r.Clear("def"))
	f, _ = r.Field("def")
	assert.Equal(t, OriginUnset, f.Origin)
}

func TestRecord_EqualIgnoresOrigin(t *testing.T) {
	a := NewRecord("x", "y")
	b := NewRecord("x", "y")
	require.NoError(t, a.Set("x", "1", OriginDerived))
	require.NoError(t, b.Set("x", "1", OriginImported))
	assert.True(t, a.Equal(b))

	c := a.Clone()
	require.NoError(t, c.Set("y", "2", OriginUser))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "", a.Value("y"), "clone must not alias")
}
