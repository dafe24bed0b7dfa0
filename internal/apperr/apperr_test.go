package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "recipe not found")))
	assert.Equal(t, Conflict, KindOf(Wrap(Conflict, "already reviewed", errors.New("dup"))))
	assert.Equal(t, Unexpected, KindOf(errors.New("plain")))
}

func TestKindOfWrappedDeeper(t *testing.T) {
	inner := New(Forbidden, "not your recipe")
	outer := fmt.Errorf("handler: %w", inner)
	assert.Equal(t, Forbidden, KindOf(outer))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(Validation, "invalid payload", errors.New("field missing"))
	assert.Contains(t, err.Error(), "invalid payload")
	assert.Contains(t, err.Error(), "field missing")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(Unexpected, "query failed", cause)
	assert.True(t, errors.Is(err, cause))
}
