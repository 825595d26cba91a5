package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// PaymentTimeoutJob cancels orders stuck in PaymentWaiting. Runs every minute,
// scans for orders last touched before now minus the timeout and fires a
// payment.failed transition for each. The transition handler re-reads every
// order under a row lock, so an order paid between the scan and the
// transition simply reports not handled.
type PaymentTimeoutJob struct {
	staleOrdersHandler queries.GetStalePaymentOrdersQueryHandler
	transitionHandler  commands.TransitionOrderCommandHandler
	timeout            time.Duration
	cron               *cron.Cron
	logger             *slog.Logger
}

// NewPaymentTimeoutJob creates a job cancelling unpaid orders after the given
// timeout.
func NewPaymentTimeoutJob(
	staleOrdersHandler queries.GetStalePaymentOrdersQueryHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *PaymentTimeoutJob {
	return &PaymentTimeoutJob{
		staleOrdersHandler: staleOrdersHandler,
		transitionHandler:  transitionHandler,
		timeout:            timeout,
		cron:               cron.New(),
		logger:             logger.With("component", "payment_timeout_job"),
	}
}

// Start begins the payment timeout job to run every minute.
func (j *PaymentTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Payment timeout job started (running every minute)", "timeout", j.timeout)
	return nil
}

// Stop stops the payment timeout job.
func (j *PaymentTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment timeout job stopped")
}

func (j *PaymentTimeoutJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetStalePaymentOrdersQuery(time.Now().Add(-j.timeout))
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment timeout scan query construction failed", "error", err)
		return
	}

	stale, err := j.staleOrdersHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment timeout scan failed", "error", err)
		return
	}

	for _, item := range stale {
		j.cancel(ctx, item.OrderNumber)
	}
}

func (j *PaymentTimeoutJob) cancel(ctx context.Context, orderNumber string) {
	event, err := order.NewTransitionEvent(order.EventPaymentFailed, orderNumber, "", map[string]string{
		order.ParamReason: "payment timeout",
	})
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment timeout event construction failed",
			"order", orderNumber, "error", err)
		return
	}

	cmd, err := commands.NewTransitionOrderCommand(event)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment timeout command construction failed",
			"order", orderNumber, "error", err)
		return
	}

	handled, err := j.transitionHandler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment timeout cancellation failed",
			"order", orderNumber, "error", err)
		return
	}

	if !handled {
		// The order left PaymentWaiting between the scan and the lock.
		return
	}

	j.logger.InfoContext(ctx, "Order cancelled after payment timeout", "order", orderNumber)
}
