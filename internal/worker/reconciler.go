// Package worker holds the background loops that run alongside the HTTP
// server.
package worker

import (
	"context"
	"time"

	"loyaltypro/internal/usecase"
	"loyaltypro/pkg/logger"
)

// Reconciler periodically finishes payment intents that were charged but
// never applied to the tenant plan.
type Reconciler struct {
	paymentUseCase usecase.PaymentUseCase
	interval       time.Duration
	logger         *logger.Logger
}

func NewReconciler(paymentUseCase usecase.PaymentUseCase, interval time.Duration, log *logger.Logger) *Reconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reconciler{
		paymentUseCase: paymentUseCase,
		interval:       interval,
		logger:         log,
	}
}

// Run blocks until the context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Payment reconciler started, interval %s", r.interval)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Payment reconciler stopped")
			return
		case <-ticker.C:
			if err := r.paymentUseCase.Reconcile(); err != nil {
				r.logger.Error("Payment reconciliation sweep failed: %v", err)
			}
		}
	}
}
