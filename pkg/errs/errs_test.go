package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errInvalidColor = Invalid("INVALID_COLOR_NAME")

func TestKindOf_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("register product: %w", errInvalidColor.Withf("color=%s", "mint"))

	assert.Equal(t, KindInvalid, KindOf(err))
	assert.Equal(t, "INVALID_COLOR_NAME", CodeOf(err))
	assert.True(t, errors.Is(err, errInvalidColor))
	assert.Equal(t, "register product: INVALID_COLOR_NAME: color=mint", err.Error())
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Empty(t, CodeOf(errors.New("boom")))
}

func TestInvariantIsNotNotFound(t *testing.T) {
	err := Invariant("two open versions for product %d", 7)

	assert.Equal(t, KindInvariant, KindOf(err))
	assert.NotEqual(t, KindNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "product 7")
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := WriteFailed("close quantity").Wrap(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindWriteFailed, KindOf(err))
}
