package cmd

import (
	"storefront/application/notification"
	"storefront/config"
	"storefront/infrastructure/notify"
)

// NewNotifier builds the transport named by notification.transport. The
// returned close function releases transport resources and is never nil.
func NewNotifier(cfg *config.Config, renderer notification.ReceiptRenderer) (notification.Notifier, func() error) {
	noop := func() error { return nil }

	switch cfg.Notification.Transport {
	case config.TransportMail:
		return notify.NewMailNotifier(cfg.Notification.Mail, cfg.Notification.StoreName, renderer), noop
	case config.TransportKafka:
		n := notify.NewKafkaNotifier(cfg.Notification.Kafka)
		return n, n.Close
	default:
		return notify.NewLogNotifier(), noop
	}
}
