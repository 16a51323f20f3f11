package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindMissingField:      400,
		KindTypeMismatch:      400,
		KindFormatViolation:   400,
		KindUnknownField:      400,
		KindInvalidCredential: 401,
		KindTokenExpired:      401,
		KindTokenInvalid:      401,
		KindTokenTypeMismatch: 401,
		KindPermissionDenied:  403,
		KindNotFound:          404,
		KindConflict:          409,
		KindInternal:          500,
	}

	for kind, status := range cases {
		assert.Equal(t, status, kind.HTTPStatus(), "kind %s", kind)
	}

	// The mapping is total: anything unmapped is a server error.
	assert.Equal(t, 500, Kind("Nonsense").HTTPStatus())
}

func TestNormalizeSentinels(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
	}{
		{ErrTokenExpired, KindTokenExpired},
		{ErrInvalidToken, KindTokenInvalid},
		{ErrTokenRevoked, KindTokenInvalid},
		{ErrTokenTypeMismatch, KindTokenTypeMismatch},
		{ErrInvalidCredential, KindInvalidCredential},
		{ErrPermissionDenied, KindPermissionDenied},
		{ErrNotFound, KindNotFound},
		{ErrConflict, KindConflict},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, Normalize(tc.err).Kind, "error %v", tc.err)
	}
}

func TestNormalizeWrappedSentinel(t *testing.T) {
	err := fmt.Errorf("loading user: %w", ErrNotFound)
	assert.Equal(t, KindNotFound, Normalize(err).Kind)
}

func TestNormalizeUnknownErrorIsOpaque(t *testing.T) {
	err := errors.New("pq: connection refused on 10.0.0.5")

	resp := Normalize(err)

	assert.Equal(t, KindInternal, resp.Kind)
	assert.Equal(t, "internal error", resp.Message)
	assert.NotContains(t, resp.Message, "10.0.0.5")
}

func TestNormalizePassesThroughCoreError(t *testing.T) {
	original := ValidationError([]FieldViolation{
		{Field: "age", Kind: KindTypeMismatch, Message: "cannot interpret string as integer"},
	})

	resp := Normalize(original)

	assert.Same(t, original, resp)
	assert.Equal(t, KindTypeMismatch, resp.Kind)
	assert.Len(t, resp.Details, 1)
}

func TestClientError(t *testing.T) {
	assert.True(t, KindMissingField.ClientError())
	assert.True(t, KindConflict.ClientError())
	assert.False(t, KindInternal.ClientError())
}
