// internal/workers/matching/generate-assignments/handler.go
package generateassignments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gigmatch-workers/internal/common/logger"
	"gigmatch-workers/internal/common/metrics"
	"gigmatch-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-assignments"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "ASSIGNMENT_FAILED").Inc()
		h.failJob(client, job, "ASSIGNMENT_FAILED", err.Error())
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	weights := h.config.Weights
	if input.Weights != nil && !input.Weights.IsZero() {
		weights = *input.Weights
	}
	poolSize := h.config.PoolSize
	if input.PoolSize > 0 {
		poolSize = input.PoolSize
	}

	assigner := matching.NewGreedyAssigner(h.config.Policy, weights, poolSize)

	start := time.Now()
	assignments := assigner.Assign(input.Reps, input.Gigs)
	elapsed := time.Since(start)

	pairsScored := len(input.Reps) * len(input.Gigs)
	metrics.MatchPairsScored.WithLabelValues(TaskType).Add(float64(pairsScored))
	for _, a := range assignments {
		metrics.MatchScoreDistribution.Observe(a.Score)
	}

	stats := Stats{
		PairsScored:    pairsScored,
		AssignedPairs:  len(assignments),
		UnassignedReps: len(input.Reps) - len(assignments),
		UnassignedGigs: len(input.Gigs) - len(assignments),
		DurationMs:     elapsed.Milliseconds(),
	}

	h.logger.Info("assignments generated", map[string]interface{}{
		"reps":          len(input.Reps),
		"gigs":          len(input.Gigs),
		"assignedPairs": stats.AssignedPairs,
		"durationMs":    stats.DurationMs,
	})

	return &Output{
		Assignments: assignments,
		Stats:       stats,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
