package lunchmenu_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/lunchmenu"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := lunchmenu.Errorf(lunchmenu.ENOTFOUND, "restaurant %q not found", "test")

	assert.Equal(t, lunchmenu.ENOTFOUND, lunchmenu.ErrorCode(err))
	assert.Equal(t, "restaurant \"test\" not found", lunchmenu.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("collect: %w", lunchmenu.Errorf(lunchmenu.ENOTEXT, "no text layer"))

	assert.Equal(t, lunchmenu.ENOTEXT, lunchmenu.ErrorCode(err))
	assert.Equal(t, "no text layer", lunchmenu.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, lunchmenu.EINTERNAL, lunchmenu.ErrorCode(err))
	assert.Equal(t, "Internal error.", lunchmenu.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lunchmenu.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lunchmenu.ErrorMessage(nil))
}
