package worker

import (
	"context"

	"github.com/spec-kit/chatbot-service/internal/events"
	"github.com/spec-kit/chatbot-service/internal/service"
)

// StartNotificationWorker subscribes the notification service to ticket
// events and starts its queue consumer on a detached goroutine.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, dispatcher events.Dispatcher) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers(dispatcher)
	go notificationService.Run(ctx)
}
