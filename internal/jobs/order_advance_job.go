package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EverySecond is the default schedule, in cron's seconds-first syntax.
const EverySecond = "* * * * * *"

type pendingOrdersAdvancer interface {
	Handle(ctx context.Context, cmd commands.AdvancePendingOrdersCommand) (int, error)
}

// OrderAdvanceJob re-drives every unfinished order on a schedule. It is the
// retry loop behind every "retry later" outcome.
type OrderAdvanceJob struct {
	handler  pendingOrdersAdvancer
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewOrderAdvanceJob(handler pendingOrdersAdvancer, schedule string, logger *slog.Logger) *OrderAdvanceJob {
	return &OrderAdvanceJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "order_advance_job"),
	}
}

func (j *OrderAdvanceJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Tick(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order advance job started", "schedule", j.schedule)
	return nil
}

// Tick runs one sweep. Failures are logged; the next tick retries them.
func (j *OrderAdvanceJob) Tick(ctx context.Context) {
	progressed, err := j.handler.Handle(ctx, commands.NewAdvancePendingOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order advance sweep failed", "error", err, "progressed", progressed)
		return
	}
	if progressed > 0 {
		j.logger.DebugContext(ctx, "Order advance sweep", "progressed", progressed)
	}
}

// Stop waits for a running sweep to finish.
func (j *OrderAdvanceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order advance job stopped")
}
