package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetKindFollowsWrappedChain(t *testing.T) {
	base := Rejected("학번 혹은 비밀번호가 잘못되었습니다.").WithOp("auth.Login")
	wrapped := fmt.Errorf("login screen: %w", base)

	assert.Equal(t, KindRejected, GetKind(wrapped))
	assert.True(t, Is(wrapped, KindRejected))
	assert.Equal(t, "학번 혹은 비밀번호가 잘못되었습니다.", Message(wrapped))
	assert.Equal(t, KindUnknown, GetKind(errors.New("plain")))
}

func TestErrorStringIncludesOp(t *testing.T) {
	err := New(KindTimeout, "request timed out").WithOp("api.Do")
	assert.Equal(t, "api.Do: request timed out", err.Error())
	assert.Equal(t, "request timed out", Message(err))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(KindNetwork, "server unreachable", cause)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindConflict:     http.StatusConflict,
		KindUnauthorized: http.StatusUnauthorized,
		KindRateLimited:  http.StatusTooManyRequests,
		KindNotFound:     http.StatusNotFound,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, New(kind, "x").HTTPStatus(), kind.String())
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "malformed_response", KindMalformedResponse.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
