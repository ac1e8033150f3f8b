package inventory

import (
	"context"
	"fmt"

	"github.com/gestock/backend/internal/domain/inventory"
	"github.com/gestock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockAlertNotifier is the interface for delivering stock alerts.
// Implementations can support different channels (in-app, email, SMS).
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert is the payload handed to notifiers
type StockAlert struct {
	ProductID       string `json:"product_id"`
	CurrentQuantity int64  `json:"current_quantity"`
	AlertThreshold  int64  `json:"alert_threshold"`
	AlertType       string `json:"alert_type"` // "low_stock" or "out_of_stock"
}

// StockBelowThresholdHandler reacts to low-stock events raised by the
// ledger and forwards them to the configured notifier
type StockBelowThresholdHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// NewStockBelowThresholdHandler creates a new handler
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{logger: logger}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockBelowThresholdHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowThresholdHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	thresholdEvent, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowThreshold, event.EventType())
	}

	alertType := "low_stock"
	if thresholdEvent.Quantity == 0 {
		alertType = "out_of_stock"
	}

	h.logger.Warn("stock below threshold",
		zap.String("product_id", thresholdEvent.ProductID.String()),
		zap.Int64("quantity", thresholdEvent.Quantity),
		zap.Int64("alert_threshold", thresholdEvent.AlertThreshold),
		zap.String("alert_type", alertType),
	)

	if h.notifier == nil {
		return nil
	}

	alert := StockAlert{
		ProductID:       thresholdEvent.ProductID.String(),
		CurrentQuantity: thresholdEvent.Quantity,
		AlertThreshold:  thresholdEvent.AlertThreshold,
		AlertType:       alertType,
	}
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		// Notification failure must not fail the event handling
		h.logger.Error("failed to send stock alert",
			zap.String("product_id", alert.ProductID),
			zap.Error(err),
		)
	}
	return nil
}

var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)
