package provider

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestWrap_TranslatesGoogleAPIError(t *testing.T) {
	err := Wrap(&googleapi.Error{Code: 403, Message: "permission denied"})

	var provErr *Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, 403, provErr.Code)
	assert.Equal(t, "permission denied", provErr.Message)
	assert.Contains(t, provErr.Error(), "403")
}

func TestWrap_PassesThroughOtherErrors(t *testing.T) {
	base := errors.New("connection refused")
	assert.Equal(t, base, Wrap(base))
	assert.NoError(t, Wrap(nil))
}

func TestMalformed(t *testing.T) {
	err := Malformed("file response missing id or name")
	assert.Equal(t, CodeMalformedResponse, err.Code)
	assert.Contains(t, err.Error(), "missing id or name")
}
