package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
)

func TestRateChat_ScoreOutOfRange(t *testing.T) {
	env := newExchangeEnv()
	_, _, chat := openChat(t, env)

	for _, score := range []int{0, 6, -1} {
		_, err := env.ratings.RateChat(context.Background(), "key-b", chat.ID, intPtr(score), nil)
		assert.True(t, apperror.IsInvalidInput(err), "score %d", score)
	}
	assert.Zero(t, env.db.countRatings())
}

func TestRateChat_ScoreMissing(t *testing.T) {
	env := newExchangeEnv()
	_, _, chat := openChat(t, env)

	_, err := env.ratings.RateChat(context.Background(), "key-b", chat.ID, nil, nil)
	assert.True(t, apperror.IsInvalidInput(err))
	assert.Zero(t, env.db.countRatings())
}

func TestRateChat_NonParticipant(t *testing.T) {
	env := newExchangeEnv()
	_, _, chat := openChat(t, env)
	env.db.addStudent("key-c")

	_, err := env.ratings.RateChat(context.Background(), "key-c", chat.ID, intPtr(3), nil)
	assert.ErrorIs(t, err, apperror.ErrNotParticipant)
}

func TestRateChat_UnknownChat(t *testing.T) {
	env := newExchangeEnv()
	env.db.addStudent("key-a")

	_, err := env.ratings.RateChat(context.Background(), "key-a", 5, intPtr(3), nil)
	assert.ErrorIs(t, err, apperror.ErrChatNotFound)
}

func TestRateChat_BothParticipantsMayRate(t *testing.T) {
	env := newExchangeEnv()
	ctx := context.Background()
	_, _, chat := openChat(t, env)

	_, err := env.ratings.RateChat(ctx, "key-a", chat.ID, intPtr(4), nil)
	require.NoError(t, err)
	_, err = env.ratings.RateChat(ctx, "key-b", chat.ID, intPtr(5), strPtr("bien"))
	require.NoError(t, err)

	assert.Equal(t, 2, env.db.countRatings())

	detail, err := env.chats.GetChat(ctx, "key-a", chat.ID)
	require.NoError(t, err)
	for _, p := range detail.Participants {
		assert.True(t, p.Rated)
	}
}

// Гонка двух оценок: проверка на существование пройдена, но вставку
// отклоняет ограничение уникальности.
func TestRateChat_UniqueViolationMapsToAlreadyRated(t *testing.T) {
	env := newExchangeEnv()
	_, _, chat := openChat(t, env)
	ratings := memRatings{env.db}
	racing := NewRatingService(env.identity, memChats{env.db}, racingRatings{memRatings: ratings}, env.notifications)

	_, err := env.ratings.RateChat(context.Background(), "key-b", chat.ID, intPtr(5), nil)
	require.NoError(t, err)

	_, err = racing.RateChat(context.Background(), "key-b", chat.ID, intPtr(2), nil)
	assert.ErrorIs(t, err, apperror.ErrAlreadyRated)
	assert.Equal(t, 1, env.db.countRatings())
}

// racingRatings не видит уже сохранённую оценку при проверке.
type racingRatings struct {
	memRatings
}

func (racingRatings) GetByChatAndEvaluator(context.Context, int64, int64) (*models.Rating, error) {
	return nil, nil
}
