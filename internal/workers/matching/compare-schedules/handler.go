// internal/workers/matching/compare-schedules/handler.go
package compareschedules

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gigmatch-workers/internal/common/logger"
	"gigmatch-workers/internal/common/metrics"
	"gigmatch-workers/internal/matching"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "compare-schedules"
)

// inputSchema gates the raw job payload. A payload that does not even have
// the right shape gets the same treatment as a malformed schedule: a
// completed job carrying a no_match result.
const inputSchema = `{
	"type": "object",
	"required": ["required", "offered"],
	"properties": {
		"required": {"$ref": "#/definitions/schedule"},
		"offered": {"$ref": "#/definitions/schedule"},
		"policy": {"type": "string"}
	},
	"definitions": {
		"schedule": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["day", "hours"],
				"properties": {
					"day": {"type": "string"},
					"hours": {
						"type": "object",
						"required": ["start", "end"],
						"properties": {
							"start": {"type": "string"},
							"end": {"type": "string"}
						}
					}
				}
			}
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(inputSchema)

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

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(job.Variables))
	if err != nil || !result.Valid() {
		if err == nil {
			h.logger.Warn("payload failed schema validation", map[string]interface{}{
				"jobKey":     job.Key,
				"violations": len(result.Errors()),
			})
		} else {
			h.logger.Warn("payload is not valid JSON", map[string]interface{}{
				"jobKey": job.Key,
				"error":  err,
			})
		}
		metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
		h.completeJob(client, job, fromResult(matching.ScheduleMatchResult{
			MatchingDays:      []string{},
			MissingDays:       []string{},
			InsufficientHours: []string{},
			Status:            matching.StatusNoMatch,
		}, ""))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	output, err := h.execute(context.Background(), &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "UNKNOWN_POLICY").Inc()
		h.failJob(client, job, "UNKNOWN_POLICY", err.Error())
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	policy, err := matching.PolicyByName(input.Policy)
	if err != nil {
		return nil, err
	}

	result := policy.Compare(input.Required, input.Offered)

	h.logger.Info("schedules compared", map[string]interface{}{
		"policy":       policy.Name(),
		"score":        result.Score,
		"matchStatus":  result.Status,
		"matchingDays": len(result.MatchingDays),
	})

	return fromResult(result, policy.Name()), nil
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

// ValidatePayload exposes the schema gate for tests and tooling.
func ValidatePayload(raw string) (bool, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return false, err
	}
	return result.Valid(), nil
}
