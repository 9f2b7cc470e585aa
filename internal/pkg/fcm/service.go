package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"golang.org/x/sync/errgroup"
)

// Service is a thin wrapper over the Firebase Cloud Messaging client.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS.
type Service struct {
	client *messaging.Client
}

func NewService(ctx context.Context) (*Service, error) {
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtaining messaging client: %w", err)
	}

	return &Service{client: client}, nil
}

// Message is one push to one device. Title and Body render as the
// visible notification; Data is the machine-readable payload the app
// routes on.
type Message struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

func mapToFCM(m *Message) *messaging.Message {
	return &messaging.Message{
		Token: m.Token,
		Notification: &messaging.Notification{
			Title: m.Title,
			Body:  m.Body,
		},
		Data: m.Data,
	}
}

func (s *Service) SendMessage(ctx context.Context, m *Message) error {
	if _, err := s.client.Send(ctx, mapToFCM(m)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

const batchSize = 500

func (s *Service) SendMessageBatch(ctx context.Context, ms []*Message) error {
	messages := make([]*messaging.Message, len(ms))
	for i, m := range ms {
		messages[i] = mapToFCM(m)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < len(messages); i += batchSize {
		from := i
		to := i + batchSize
		if to > len(messages) {
			to = len(messages)
		}

		g.Go(func() error {
			if _, err := s.client.SendAll(ctx, messages[from:to]); err != nil {
				return fmt.Errorf("send message batch: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
