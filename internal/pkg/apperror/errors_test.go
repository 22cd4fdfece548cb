package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponse(t *testing.T) {
	status, msg := Response(ErrChatNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Chat no encontrado.", msg)

	status, msg = Response(fmt.Errorf("chat service: %w", ErrSelfChat))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrSelfChat.Message, msg)

	status, msg = Response(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, InternalMessage, msg)
}

func TestStatusByCode(t *testing.T) {
	cases := map[*AppError]int{
		ErrMissingCredential: http.StatusUnauthorized,
		ErrInvalidCredential: http.StatusUnauthorized,
		ErrNotModerator:      http.StatusForbidden,
		ErrNotParticipant:    http.StatusForbidden,
		ErrAlreadyRated:      http.StatusBadRequest,
		ErrSelfChat:          http.StatusBadRequest,
		ErrProfileNotFound:   http.StatusNotFound,
	}
	for err, want := range cases {
		assert.Equal(t, want, err.HTTPStatus, err.Message)
	}
}

func TestIs_MatchesCodeAndMessage(t *testing.T) {
	copied := ErrNotParticipant.WithStatus(http.StatusTeapot)
	assert.ErrorIs(t, copied, ErrNotParticipant)
	assert.NotErrorIs(t, ErrNotChatAuthor, ErrNotParticipant)

	wrapped := Wrap(errors.New("boom"), ErrCodeInternal, "x")
	assert.Equal(t, "boom", errors.Unwrap(wrapped).Error())
	assert.Equal(t, ErrCodeInternal, CodeOf(wrapped))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
}
