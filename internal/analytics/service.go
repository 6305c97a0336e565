package analytics

import (
	"context"

	"go.uber.org/zap"

	"tovarka-main/internal/kafka"
)

type Service struct {
	repo   AnalyticsRepo
	logger *zap.SugaredLogger
}

func NewService(repo AnalyticsRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ProcessEvent - переводит событие активности в веса категорий.
// Поиск слабый сигнал, просмотр сильнее, отзыв и покупка - самые сильные.
func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.UserID == "" {
		return nil // Игнорируем события без пользователя
	}

	weights := make(map[int]int)
	switch event.Type {
	case kafka.EventTypeSearch:
		for _, cat := range event.Categories {
			weights[cat] += 1
		}
	case kafka.EventTypeView:
		if len(event.Categories) > 0 {
			weights[event.Categories[0]] += 2
		}
	case kafka.EventTypeRating:
		if len(event.Categories) > 0 {
			weights[event.Categories[0]] += 3
		}
	case kafka.EventTypePurchase:
		for _, cat := range event.Categories {
			weights[cat] += 3
		}
	}

	if len(weights) == 0 {
		return nil
	}

	if err := s.repo.UpdatePreferences(ctx, event.UserID, weights); err != nil {
		s.logger.Errorf("Failed to update preferences for user %s: %v", event.UserID, err)
		return err
	}

	return nil
}

func (s *Service) GetTopCategories(ctx context.Context, userID string, limit int) ([]int, error) {
	return s.repo.GetTopCategories(ctx, userID, limit)
}
