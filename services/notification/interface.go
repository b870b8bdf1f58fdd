package notification

import (
	"context"
	"fmt"

	"hotelops/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends guest-facing folio pushes.
type NotificationService interface {
	SendGuestPush(ctx context.Context, token, title, body string, data map[string]string) error
	NotifyCheckout(ctx context.Context, booking models.Booking, summary models.FolioSummary) error
	NotifyStatementReady(ctx context.Context, booking models.Booking) error
}

// Messenger is satisfied by *messaging.Client.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	messenger Messenger
	logger    *zap.Logger
}

func NewDefaultNotificationService(messenger Messenger, logger *zap.Logger) (*DefaultNotificationService, error) {
	if messenger == nil {
		return nil, fmt.Errorf("notification service initialization error: messenger is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{messenger: messenger, logger: logger}, nil
}

// SendGuestPush sends one FCM message. Guests without a device token are skipped.
func (s *DefaultNotificationService) SendGuestPush(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		s.logger.Debug("guest push skipped, no device token", zap.String("title", title))
		return nil
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "guest"
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "folio",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.messenger.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendGuestPush: failed to send FCM message: %w", err)
	}
	s.logger.Debug("guest push sent", zap.String("messageId", id), zap.String("type", data["type"]))
	return nil
}

func (s *DefaultNotificationService) NotifyCheckout(ctx context.Context, booking models.Booking, summary models.FolioSummary) error {
	title := "Thank you for staying with us"
	body := fmt.Sprintf("You have checked out. Total charges %s %s", currencyLabel(booking.Currency), summary.GrandTotal.StringFixed(2))
	if summary.Balance.IsPositive() {
		body += fmt.Sprintf(", balance due %s.", summary.Balance.StringFixed(2))
	} else {
		body += ", fully settled."
	}
	return s.SendGuestPush(ctx, booking.DeviceToken, title, body, map[string]string{
		"type":      models.NotificationCheckout,
		"bookingId": booking.ID,
		"balance":   summary.Balance.StringFixed(2),
	})
}

// NotifyStatementReady points the guest app at the statement link endpoint.
// The push never carries a download URL; links are signed on request.
func (s *DefaultNotificationService) NotifyStatementReady(ctx context.Context, booking models.Booking) error {
	return s.SendGuestPush(ctx, booking.DeviceToken, "Your folio statement is ready",
		"Tap to download the itemised statement for your stay.",
		map[string]string{
			"type":      models.NotificationStatementReady,
			"bookingId": booking.ID,
			"linkPath":  "/api/folios/" + booking.ID + "/statement/link",
		})
}

func currencyLabel(currency string) string {
	if currency == "" {
		return "USD"
	}
	return currency
}
