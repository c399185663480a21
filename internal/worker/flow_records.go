package worker

import (
	"context"
	"log/slog"

	"github.com/fnbdemo/go-fnb-integration/internal/core"
	"github.com/fnbdemo/go-fnb-integration/internal/domain"
)

// FlowRecordWorker drains finalized flow invocations into the repository
// off the request path.
type FlowRecordWorker struct {
	repo    core.FlowRepositoryInterface
	records <-chan *domain.FlowInvocation
	WORKERS int
}

func NewFlowRecordWorker(repo core.FlowRepositoryInterface, records <-chan *domain.FlowInvocation, workers int) *FlowRecordWorker {
	return &FlowRecordWorker{repo: repo, records: records, WORKERS: workers}
}

func (w *FlowRecordWorker) Run(ctx context.Context) {
	for i := 0; i < w.WORKERS; i++ {
		go w.saveRecords(ctx)
	}
}

func (w *FlowRecordWorker) saveRecords(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("[Worker:FlowRecords:saveRecords] - Record worker stopped")
			return
		case inv := <-w.records:
			if err := w.repo.SaveFlowRecord(ctx, inv); err != nil {
				slog.Warn("[Worker:FlowRecords:saveRecords] - Failed to persist flow record",
					"flow", string(inv.Flow),
					"correlation_id", inv.CorrelationId,
					"error", err)
			}
		}
	}
}
