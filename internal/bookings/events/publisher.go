// Package events adapts the shared kafka producer to the booking
// service's publisher contract.
package events

import (
	"context"

	"explorebd/pkg/kafka"
	"explorebd/pkg/model"
)

const source = "explorebd"

// envelope is the wire shape of a booking event payload.
type envelope struct {
	EventType     string `json:"event_type"`
	BookingID     string `json:"booking_id"`
	PackageID     string `json:"package_id"`
	CreatedBy     string `json:"created_by"`
	GuideEmail    string `json:"guide_email,omitempty"`
	BookingStatus string `json:"booking_status"`
	PaymentStatus string `json:"payment_status"`
}

// KafkaPublisher emits booking events keyed by booking ID so all
// events for one booking land on the same partition, in order.
type KafkaPublisher struct {
	producer *kafka.Producer
}

func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	msg, err := kafka.NewEventMessage(booking.ID, eventType, source, envelope{
		EventType:     eventType,
		BookingID:     booking.ID,
		PackageID:     booking.PackageID,
		CreatedBy:     booking.CreatedBy,
		GuideEmail:    booking.GuideEmail,
		BookingStatus: booking.BookingStatus,
		PaymentStatus: booking.PaymentStatus,
	})
	if err != nil {
		return err
	}

	return p.producer.Publish(ctx, msg)
}

// NopPublisher drops all events. Used when the broker is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *model.Booking) error {
	return nil
}
