// internal/workers/matching/record-assignments/handler.go
package recordassignments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "gigmatch-workers/internal/common/errors"
	"gigmatch-workers/internal/common/logger"
	"gigmatch-workers/internal/common/metrics"
	"gigmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "record-assignments"
)

type Handler struct {
	config     *Config
	db         *sql.DB
	logger     logger.Logger
	errHandler *stderrors.ErrorHandler
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		logger:     scoped,
		errHandler: stderrors.NewErrorHandler(scoped),
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

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stderrors.ErrCodeValidation)).Inc()
		h.errHandler.HandleJobError(ctx, client, job,
			stderrors.NewValidationError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCodeOf(err)).Inc()
		// insert failures are transient infra errors; the handler decides
		// between retry and BPMN error
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.completeJob(client, job, output)
}

func errorCodeOf(err error) string {
	var stdErr *stderrors.StandardError
	if errors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "INTERNAL_ERROR"
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	output := &Output{AssignmentIDs: []string{}}

	for _, a := range input.Assignments {
		var exists bool
		err := h.db.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM assignments WHERE rep_id = $1 AND gig_id = $2)`,
			a.RepID, a.GigID).Scan(&exists)
		if err != nil {
			return nil, stderrors.NewQueryExecutionError(err)
		}
		if exists {
			output.Duplicates++
			h.logger.Warn("assignment already recorded", map[string]interface{}{
				"repId": a.RepID,
				"gigId": a.GigID,
			})
			continue
		}

		rec := models.Assignment{
			ID:        uuid.New().String(),
			RepID:     a.RepID,
			GigID:     a.GigID,
			Score:     a.Score,
			Breakdown: a.Breakdown,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}

		// nil breakdown marshals to JSON null, which the jsonb column accepts
		breakdown, err := json.Marshal(rec.Breakdown)
		if err != nil {
			return nil, stderrors.NewValidationError(fmt.Sprintf("encode breakdown for %s/%s: %v", rec.RepID, rec.GigID, err))
		}

		_, err = h.db.ExecContext(ctx, `
			INSERT INTO assignments (id, rep_id, gig_id, score, breakdown, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, rec.RepID, rec.GigID, rec.Score, breakdown, rec.CreatedAt)
		if err != nil {
			return nil, stderrors.NewDatabaseInsertError(err)
		}

		output.Recorded++
		output.AssignmentIDs = append(output.AssignmentIDs, rec.ID)
		metrics.AssignmentsRecorded.Inc()
	}

	h.logger.Info("assignments recorded", map[string]interface{}{
		"recorded":   output.Recorded,
		"duplicates": output.Duplicates,
	})

	return output, nil
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
