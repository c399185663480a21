package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fnbdemo/go-fnb-integration/internal/domain"
)

const RD_KEY_FLOW_RECORDS = "tx:flows:"

type flowsRedisRepository struct {
	db *redis.Client
}

func NewFlowsRepository(db *redis.Client) *flowsRedisRepository {
	return &flowsRedisRepository{db: db}
}

// SaveFlowRecord stores one finalized invocation in a per-flow ZSET scored
// by start time, so summaries can range over a time window.
func (r *flowsRedisRepository) SaveFlowRecord(ctx context.Context, inv *domain.FlowInvocation) error {
	b, err := msgpack.Marshal(inv)
	if err != nil {
		slog.Error("[RP:Flows:Save:01] - Failed to marshal flow record",
			"flow", string(inv.Flow), "correlation_id", inv.CorrelationId, "error", err)
		return err
	}

	err = r.db.ZAdd(ctx, RD_KEY_FLOW_RECORDS+string(inv.Flow), redis.Z{
		Score:  float64(inv.StartedAt.UnixNano()),
		Member: b,
	}).Err()
	if err != nil {
		slog.Error("[RP:Flows:Save:02] - Failed to save flow record to Redis",
			"flow", string(inv.Flow), "correlation_id", inv.CorrelationId, "error", err)
		return err
	}
	return nil
}

func (r *flowsRedisRepository) GetSummaryByFlow(ctx context.Context, flow domain.FlowName, from, to time.Time) (*domain.FlowSummaryItem, error) {
	members, err := r.db.ZRangeByScore(ctx, RD_KEY_FLOW_RECORDS+string(flow), &redis.ZRangeBy{
		Min: fmt.Sprintf("%d", from.UnixNano()),
		Max: fmt.Sprintf("%d", to.UnixNano()),
	}).Result()
	if err != nil {
		slog.Error("[RP:Flows:GetSummary:01] - Failed to range flow records", "flow", string(flow), "error", err)
		return nil, err
	}

	item := &domain.FlowSummaryItem{}
	var elapsedTotal int64
	for _, member := range members {
		var inv domain.FlowInvocation
		if err := msgpack.Unmarshal([]byte(member), &inv); err != nil {
			slog.Error("[RP:Flows:GetSummary:02] - Failed to unmarshal flow record", "error", err)
			continue
		}
		item.Executions++
		elapsedTotal += inv.ElapsedMs
		switch inv.Outcome {
		case domain.OutcomeCompleted:
			item.Completed++
		case domain.OutcomeRejected:
			item.Rejected++
		case domain.OutcomeFailed:
			item.Failed++
		}
	}
	if item.Executions > 0 {
		item.AvgElapsedMs = float64(elapsedTotal) / float64(item.Executions)
	}
	return item, nil
}

func (r *flowsRedisRepository) ResetState(ctx context.Context) error {
	slog.Info("[RP:Flows:ResetState] - Resetting flow records in Redis")
	iter := r.db.Scan(ctx, 0, RD_KEY_FLOW_RECORDS+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.db.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Error("[RP:Flows:ResetState:01] - Failed to delete key", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Error("[RP:Flows:ResetState:02] - Error during Redis SCAN", "error", err)
		return err
	}
	return nil
}
