package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFamilies checks that validation and ownership failures are reported as the same family,
// while storage failures are not.
func TestFamilies(t *testing.T) {
	validation := fmt.Errorf("%w: month is required", ErrValidation)
	ownership := fmt.Errorf("%w: contact 4 is not in account 1", ErrOwnershipMismatch)
	storage := fmt.Errorf("%w: connection reset", ErrStorage)

	assert.True(t, errors.Is(validation, ErrInvalidRequest))
	assert.True(t, errors.Is(ownership, ErrInvalidRequest))
	assert.False(t, errors.Is(validation, ErrOwnershipMismatch))
	assert.False(t, errors.Is(ownership, ErrValidation))
	assert.False(t, errors.Is(storage, ErrInvalidRequest))
	assert.True(t, errors.Is(storage, ErrStorage))
}
