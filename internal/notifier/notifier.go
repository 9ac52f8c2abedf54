// Package notifier is the notification dispatcher: it persists in-app
// notification records and relays them through a push-messaging provider.
// Delivery is best-effort: a failure is logged and never propagated to the
// lifecycle operation that triggered it.
package notifier

import (
	"github.com/astucampus/lostandfound/internal/database"
	"github.com/astucampus/lostandfound/internal/model"
	"github.com/sirupsen/logrus"
)

// A Notifier dispatches notifications to users.
type Notifier struct {
	db   database.Client
	push PushSender // nil disables push relay
}

// New returns a Notifier persisting through db and relaying through push.
// push may be nil.
func New(db database.Client, push PushSender) *Notifier {
	return &Notifier{
		db:   db,
		push: push,
	}
}

// Notify records an in-app notification for the user and relays it to the
// user's device asynchronously. Errors are logged and swallowed.
func (n *Notifier) Notify(user *model.User, title, body, typ, relatedItemID string) {
	notification := &model.Notification{
		UserID:        user.ID,
		Title:         title,
		Body:          body,
		Type:          typ,
		RelatedItemID: relatedItemID,
	}

	if err := n.db.Save(notification); err != nil {
		logrus.WithField("user", user.ID).WithError(err).Error("could not record notification")
	}

	if n.push == nil || user.DeviceToken == "" {
		return
	}

	// Fire-and-forget, after the triggering state change has committed.
	go func(deviceToken string) {
		if err := n.push.Send(deviceToken, title, body); err != nil {
			logrus.WithField("user", user.ID).WithError(err).Error("could not push notification")
		}
	}(user.DeviceToken)
}

// NotifyAll dispatches the same notification to every given user.
func (n *Notifier) NotifyAll(users []*model.User, title, body, typ, relatedItemID string) {
	for _, user := range users {
		n.Notify(user, title, body, typ, relatedItemID)
	}
}
