package preview

import (
	"errors"
	"testing"

	"github.com/facadeworks/facade-workbench/internal/workbench/domain"
	"github.com/stretchr/testify/assert"
)

func TestTokens_LatestWins(t *testing.T) {
	tok := NewTokens()
	a, b := domain.EntityID("a"), domain.EntityID("b")

	first := tok.Next(a)
	second := tok.Next(a)
	other := tok.Next(b)

	assert.False(t, tok.Current(a, first))
	assert.True(t, errors.Is(tok.Check(a, first), domain.ErrStaleResponse))
	assert.NoError(t, tok.Check(a, second))
	assert.NoError(t, tok.Check(b, other), "entities are tracked independently")

	tok.Forget(a)
	assert.False(t, tok.Current(a, second))
	assert.False(t, tok.Current(b, 0))
}
