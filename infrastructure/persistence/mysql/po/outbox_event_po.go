package po

import (
	"encoding/json"
	"time"

	"commerce/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO is one row of the transactional outbox. Events are written
// in the same transaction as the aggregate change and relayed by the worker.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`
	Payload     string    `gorm:"type:json;not null"`
	Status      string    `gorm:"size:20;default:PENDING;not null"`
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus is the relay state of an outbox row.
type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

// FromDomainEvent converts a domain event to an outbox row.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// serializeEventToJSON flattens an event into a JSON payload. Events expose
// their facts through getters, so the serializer probes the getters shared
// across the event families instead of enumerating every concrete type.
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	eventData := map[string]interface{}{
		"event_name":   event.EventName(),
		"aggregate_id": event.GetAggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	if g, ok := event.(interface{ OrderID() string }); ok {
		eventData["order_id"] = g.OrderID()
	}
	if g, ok := event.(interface{ UserID() string }); ok {
		eventData["user_id"] = g.UserID()
	}
	if g, ok := event.(interface{ OrderNumber() string }); ok {
		eventData["order_number"] = g.OrderNumber()
	}
	if g, ok := event.(interface{ PaymentID() string }); ok {
		eventData["payment_id"] = g.PaymentID()
	}
	if g, ok := event.(interface{ ShippingID() string }); ok {
		eventData["shipping_id"] = g.ShippingID()
	}
	if g, ok := event.(interface{ TrackingNumber() string }); ok {
		eventData["tracking_number"] = g.TrackingNumber()
	}
	if g, ok := event.(interface{ TransactionID() string }); ok {
		eventData["transaction_id"] = g.TransactionID()
	}
	if g, ok := event.(interface{ Reason() string }); ok {
		eventData["reason"] = g.Reason()
	}
	if g, ok := event.(interface{ TotalAmount() shared.Money }); ok {
		money := g.TotalAmount()
		eventData["total_amount"] = money.Amount().StringFixed(2)
		eventData["currency"] = money.Currency()
	}
	if g, ok := event.(interface{ Amount() shared.Money }); ok {
		money := g.Amount()
		eventData["amount"] = money.Amount().StringFixed(2)
		eventData["currency"] = money.Currency()
	}
	if g, ok := event.(interface{ ShippedAt() time.Time }); ok {
		eventData["shipped_at"] = g.ShippedAt()
	}
	if g, ok := event.(interface{ DeliveredAt() time.Time }); ok {
		eventData["delivered_at"] = g.DeliveredAt()
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToEventData decodes the payload, used by tests and debugging.
func (p *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(p.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
