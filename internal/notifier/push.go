package notifier

import (
	fcm "github.com/appleboy/go-fcm"
	"github.com/pkg/errors"
)

// A PushSender relays a notification to a device through a push-messaging provider.
type PushSender interface {
	// Send pushes the given title/body to the device identified by token.
	Send(deviceToken, title, body string) error
}

type fcmSender struct {
	client *fcm.Client
}

// NewFCM returns a PushSender relaying through Firebase Cloud Messaging.
func NewFCM(apiKey string) (PushSender, error) {
	client, err := fcm.NewClient(apiKey)
	if err != nil {
		return nil, errors.Wrap(err, "could not create FCM client")
	}
	return &fcmSender{client: client}, nil
}

func (s *fcmSender) Send(deviceToken, title, body string) error {
	_, err := s.client.Send(&fcm.Message{
		To: deviceToken,
		Notification: &fcm.Notification{
			Title: title,
			Body:  body,
		},
	})
	return errors.Wrap(err, "could not send push")
}
