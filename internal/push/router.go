package push

import (
	"context"
	"fmt"

	"foodhub/internal/logging"
	"foodhub/internal/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type LocalNotification struct {
	ID      string
	Title   string
	Body    string
	Channel Channel
	Extras  map[string]string
}

// Notifier is the OS notification tray.
type Notifier interface {
	Notify(ctx context.Context, n LocalNotification) error
}

type Router struct {
	Notifier Notifier
	log      *logrus.Entry
}

func NewRouter(notifier Notifier) *Router {
	return &Router{Notifier: notifier, log: logging.New("push")}
}

// Route posts msg on its channel. Only order messages carry the order id
// as a tap extra.
func (r *Router) Route(ctx context.Context, msg Message) (LocalNotification, error) {
	n := LocalNotification{
		ID:      uuid.NewString(),
		Title:   msg.Title,
		Body:    msg.Body,
		Channel: Classify(msg.Type),
		Extras:  map[string]string{},
	}
	if msg.Type == TypeOrder && msg.OrderID != "" {
		n.Extras[ExtraOrderID] = msg.OrderID
	}

	if err := r.Notifier.Notify(ctx, n); err != nil {
		return n, fmt.Errorf("post notification %s: %w", n.ID, err)
	}
	metrics.ObservePush(string(n.Channel))
	r.log.WithFields(logrus.Fields{"id": n.ID, "channel": n.Channel}).Debug("notification posted")
	return n, nil
}

// LogNotifier stands in for the tray on a headless client.
type LogNotifier struct {
	Log *logrus.Entry
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{Log: logging.New("tray")}
}

func (l *LogNotifier) Notify(ctx context.Context, n LocalNotification) error {
	l.Log.WithFields(logrus.Fields{
		"id":      n.ID,
		"channel": n.Channel,
		"orderId": n.Extras[ExtraOrderID],
	}).Infof("%s: %s", n.Title, n.Body)
	return nil
}
