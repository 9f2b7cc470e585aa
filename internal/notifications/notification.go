package notifications

import (
	"context"
	"fmt"

	"github.com/classbook/classbook-backend/internal/model"
	"github.com/classbook/classbook-backend/internal/pkg/fcm"
)

type Type string

const (
	TypeClassBooking      Type = "class_booking"
	TypeClassCancellation Type = "class_cancellation"
	TypeClassReminder     Type = "class_reminder"
	TypeOrderConfirmation Type = "order_confirmation"
	TypeAbandonedCart     Type = "abandoned_cart"
	TypeIssueConfirmation Type = "issue_confirmation"
)

// Notification is the transport-independent envelope handed to a
// Notifier. Data carries extra key-value payload shown to the client.
type Notification struct {
	Type    Type
	Title   string
	Message string
	Data    map[string]string
}

// Notifier delivers notifications. Delivery is best effort; users
// without a push token or with notifications turned off are skipped
// silently. NotifyAll sends the same notification to many users in one
// batch.
type Notifier interface {
	Notify(ctx context.Context, user *model.User, n *Notification) error
	NotifyAll(ctx context.Context, users []*model.User, n *Notification) error
}

type fcmService interface {
	SendMessage(ctx context.Context, m *fcm.Message) error
	SendMessageBatch(ctx context.Context, ms []*fcm.Message) error
}

type PushNotifier struct {
	fcm fcmService
}

func NewPushNotifier(fcm fcmService) *PushNotifier {
	return &PushNotifier{fcm: fcm}
}

func (p *PushNotifier) Notify(ctx context.Context, user *model.User, n *Notification) error {
	msg := pushMessage(user, n)
	if msg == nil {
		return nil
	}

	if err := p.fcm.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send push message: %w", err)
	}

	return nil
}

func (p *PushNotifier) NotifyAll(ctx context.Context, users []*model.User, n *Notification) error {
	msgs := make([]*fcm.Message, 0, len(users))
	for _, u := range users {
		if msg := pushMessage(u, n); msg != nil {
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return nil
	}

	if err := p.fcm.SendMessageBatch(ctx, msgs); err != nil {
		return fmt.Errorf("send push batch: %w", err)
	}

	return nil
}

// pushMessage maps a notification onto one device, nil when the user is
// unreachable.
func pushMessage(user *model.User, n *Notification) *fcm.Message {
	if !user.Notify || user.PushToken == "" {
		return nil
	}

	data := map[string]string{"type": string(n.Type)}
	for k, v := range n.Data {
		data[k] = v
	}

	return &fcm.Message{
		Token: user.PushToken,
		Title: n.Title,
		Body:  n.Message,
		Data:  data,
	}
}
