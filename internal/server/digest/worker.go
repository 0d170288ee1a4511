package digest

import (
	"context"
	"time"

	"github.com/zhenzou/executors"
	"go.uber.org/fx"

	"github.com/gavelhq/gavel/internal/log"
	"github.com/gavelhq/gavel/internal/server/biz"
)

type Config struct {
	CRON string `conf:"cron" yaml:"cron" json:"cron"`
}

// Worker runs the scheduled cross-tenant invoice sweeps.
type Worker struct {
	DigestService *biz.DigestService
	Executor      executors.ScheduledExecutor
	Config        Config
	CancelFunc    context.CancelFunc
}

type Params struct {
	fx.In

	Config        Config
	DigestService *biz.DigestService
}

func NewWorker(params Params) *Worker {
	return &Worker{
		DigestService: params.DigestService,
		Executor:      executors.NewPoolScheduleExecutor(executors.WithMaxConcurrent(1)),
		Config:        params.Config,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	cancelFunc, err := w.Executor.ScheduleFuncAtCronRate(
		w.runSweep,
		executors.CRONRule{Expr: w.Config.CRON},
	)
	if err != nil {
		return err
	}

	w.CancelFunc = cancelFunc

	log.Info(ctx, "digest worker started", log.String("cron", w.Config.CRON))

	return nil
}

func (w *Worker) Stop(ctx context.Context) error {
	if w.CancelFunc != nil {
		w.CancelFunc()
	}

	return w.Executor.Shutdown(ctx)
}

func (w *Worker) runSweep(ctx context.Context) {
	asOf := time.Now().UTC()

	modified, err := w.DigestService.MarkOverdue(ctx, asOf)
	if err != nil {
		log.Error(ctx, "digest: overdue sweep failed", log.Cause(err))
		return
	}

	digests, err := w.DigestService.OverdueDigest(ctx, asOf)
	if err != nil {
		log.Error(ctx, "digest: overdue digest failed", log.Cause(err))
		return
	}

	log.Info(ctx, "digest: sweep complete",
		log.Int64("marked_overdue", modified),
		log.Int("tenants", len(digests)),
	)
}
