package bidfilter_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/bidfilter"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := bidfilter.Errorf(bidfilter.EINVALID, "invalid date %q", "31-02-2024")

	assert.Equal(t, bidfilter.EINVALID, bidfilter.ErrorCode(err))
	assert.Equal(t, "invalid date \"31-02-2024\"", bidfilter.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading settings: %w", bidfilter.Errorf(bidfilter.ENOTFOUND, "settings not found"))

	assert.Equal(t, bidfilter.ENOTFOUND, bidfilter.ErrorCode(err))
	assert.Equal(t, "settings not found", bidfilter.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("disk on fire")

	assert.Equal(t, bidfilter.EINTERNAL, bidfilter.ErrorCode(err))
	assert.Equal(t, "Internal error.", bidfilter.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, bidfilter.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, bidfilter.ErrorMessage(nil))
}
