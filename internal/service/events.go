package service

import (
	"context"

	"github.com/fluxur/backend/internal/events"
	"go.uber.org/zap"
)

// publishEvent never fails the calling operation; events are best effort.
func publishEvent(ctx context.Context, pub events.Publisher, log *zap.Logger, event string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(context.WithoutCancel(ctx), event, payload); err != nil {
		log.Warn("event publish failed", zap.String("event", event), zap.Error(err))
	}
}
