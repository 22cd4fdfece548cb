package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignatzorin/skillswap-backend/internal/models"
	"github.com/ignatzorin/skillswap-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skillswap-backend/internal/repository"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating, notifications []models.Notification) error
	GetByChatAndEvaluator(ctx context.Context, chatID, evaluatorID int64) (*models.Rating, error)
}

var (
	errScoreRequired = apperror.New(apperror.ErrCodeInvalidInput, "puntaje es requerido.")
	errScoreRange    = apperror.New(apperror.ErrCodeInvalidInput,
		fmt.Sprintf("El puntaje debe estar entre %d y %d.", models.MinRatingScore, models.MaxRatingScore))
)

type RatingService struct {
	identity IdentityResolver
	chats    ChatRepository
	ratings  RatingRepository
	notifier *NotificationService
}

func NewRatingService(identity IdentityResolver, chats ChatRepository, ratings RatingRepository, notifier *NotificationService) *RatingService {
	return &RatingService{identity: identity, chats: chats, ratings: ratings, notifier: notifier}
}

// RateChat сохраняет оценку участника. score == nil означает, что оценка
// не передана. Каждый участник оценивает чат не более одного раза.
func (s *RatingService) RateChat(ctx context.Context, credential string, chatID int64, score *int, comment *string) (*models.Rating, error) {
	evaluator, err := s.identity.ResolveStudent(ctx, credential)
	if err != nil {
		return nil, err
	}

	detail, err := loadChatDetail(ctx, s.chats, chatID)
	if err != nil {
		return nil, err
	}

	if _, ok := detail.Participant(evaluator.ID); !ok {
		return nil, apperror.ErrNotParticipant
	}

	existing, err := s.ratings.GetByChatAndEvaluator(ctx, detail.ID, evaluator.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyRated
	}

	if score == nil {
		return nil, errScoreRequired
	}
	if *score < models.MinRatingScore || *score > models.MaxRatingScore {
		return nil, errScoreRange
	}

	cid := detail.ID
	notifications, err := s.notifier.Fanout(detail.Participants, evaluator.ID, models.NotificationRatingReceived,
		fmt.Sprintf("El estudiante %d calificó el chat %d.", evaluator.ID, detail.ID),
		NotificationRefs{ChatID: &cid},
	)
	if err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ChatID:      detail.ID,
		EvaluatorID: evaluator.ID,
		Score:       *score,
		Comment:     comment,
	}
	if err := s.ratings.Create(ctx, rating, notifications); err != nil {
		if errors.Is(err, repository.ErrRatingExists) {
			return nil, apperror.ErrAlreadyRated
		}
		return nil, err
	}
	s.notifier.Publish(notifications)

	return rating, nil
}
