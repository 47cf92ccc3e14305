package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enclaveworks/enclave-sdk/pkg/serrors"
)

func TestBaseError_Is(t *testing.T) {
	t.Parallel()

	sentinel := serrors.NewError("AIRLOCK_TEST", "test error")

	withData := sentinel.WithTemplateData(map[string]string{"id": "42"})
	assert.ErrorIs(t, withData, sentinel)

	wrapped := fmt.Errorf("outer: %w", withData)
	assert.ErrorIs(t, wrapped, sentinel)

	other := serrors.NewError("AIRLOCK_OTHER", "different code")
	assert.NotErrorIs(t, other, sentinel)
	assert.False(t, errors.Is(sentinel, errors.New("plain")))
}

func TestWithTemplateData_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := serrors.NewError("CODE", "message")
	derived := base.WithTemplateData(map[string]string{"k": "v"})

	require.Nil(t, base.TemplateData)
	require.Equal(t, "v", derived.TemplateData["k"])
	assert.Equal(t, "CODE: message", derived.Error())
}

func TestNewFieldRequiredError(t *testing.T) {
	t.Parallel()

	err := serrors.NewFieldRequiredError("businessJustification")
	assert.Equal(t, "VALIDATION_FIELD_REQUIRED", err.Code)
	assert.Equal(t, "businessJustification", err.TemplateData["field"])
}
