// internal/workers/matching/find-matches/handler.go
package findmatches

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
	TaskType = "find-matches"
)

var (
	ErrNilInput    = errors.New("input cannot be nil")
	ErrUnknownMode = errors.New("unknown mode")
	ErrMissingGig  = errors.New("reps-for-gig requires a gig")
	ErrMissingRep  = errors.New("gigs-for-rep requires a rep")
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "RANKING_FAILED").Inc()
		h.failJob(client, job, "RANKING_FAILED", err.Error())
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
	finder := matching.NewFinder(h.config.Policy, weights)

	start := time.Now()

	var results []matching.MatchResult
	switch input.Mode {
	case ModeRepsForGig, "":
		if input.Gig == nil {
			return nil, ErrMissingGig
		}
		results = finder.MatchesForGig(input.Gig, input.Reps, input.Limit)
		metrics.MatchPairsScored.WithLabelValues(TaskType).Add(float64(len(input.Reps)))
	case ModeGigsForRep:
		if input.Rep == nil {
			return nil, ErrMissingRep
		}
		results = finder.GigsForRep(input.Rep, input.Gigs, input.Limit)
		metrics.MatchPairsScored.WithLabelValues(TaskType).Add(float64(len(input.Gigs)))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, input.Mode)
	}

	elapsed := time.Since(start)
	if elapsed > h.config.SlowThreshold {
		h.logger.Warn("slow ranking pass", map[string]interface{}{
			"mode":       input.Mode,
			"candidates": len(input.Reps) + len(input.Gigs),
			"durationMs": elapsed.Milliseconds(),
		})
	}

	h.logger.Info("matches ranked", map[string]interface{}{
		"mode":       input.Mode,
		"returned":   len(results),
		"durationMs": elapsed.Milliseconds(),
	})

	return &Output{
		Matches:    results,
		Count:      len(results),
		DurationMs: elapsed.Milliseconds(),
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
