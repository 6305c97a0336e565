package kafka

import "time"

type EventType string

const (
	EventTypeSearch   EventType = "search"
	EventTypeView     EventType = "view"
	EventTypePurchase EventType = "purchase"
	EventTypeRating   EventType = "rating"
)

// Event - событие пользовательской активности, уходит в Kafka
// и обрабатывается сервисом аналитики в фоне
type Event struct {
	UserID     string    `json:"user_id"`
	Type       EventType `json:"type"`
	Categories []int     `json:"categories,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
