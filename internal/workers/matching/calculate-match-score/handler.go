// internal/workers/matching/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gigmatch-workers/internal/common/logger"
	"gigmatch-workers/internal/common/metrics"
	"gigmatch-workers/internal/matching"
	"gigmatch-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-match-score"
)

var (
	ErrMatchScoreFailed = errors.New("MATCH_SCORE_FAILED")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  redis,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "MATCH_SCORE_FAILED").Inc()
		h.failJob(client, job, "MATCH_SCORE_FAILED", err.Error())
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var profile *models.RepProfile
	if input.RepProfile != nil {
		profile = input.RepProfile
	} else if input.RepID != "" {
		var err error
		profile, err = h.getRepProfile(ctx, input.RepID)
		if err != nil {
			h.logger.Warn("failed to fetch rep profile", map[string]interface{}{
				"repId": input.RepID,
				"error": err,
			})
		}
	}

	weights := h.config.Weights
	if input.Weights != nil && !input.Weights.IsZero() {
		weights = *input.Weights
	}

	// Unknown reps still get a scorable answer: every dimension sits at
	// the neutral midpoint.
	if profile == nil {
		neutral := matching.Aggregate(input.RepID, input.Gig.ID, matching.NeutralBreakdown(), weights)
		h.observeScore(ctx, neutral.Score)
		return &Output{
			RepID:     neutral.RepID,
			GigID:     neutral.GigID,
			Score:     neutral.Score,
			Breakdown: neutral.Breakdown,
		}, nil
	}

	breakdown := matching.ScoreAll(profile, &input.Gig, h.config.Policy)
	result := matching.Aggregate(profile.ID, input.Gig.ID, breakdown, weights)

	metrics.MatchScoreDistribution.Observe(result.Score)
	metrics.MatchPairsScored.WithLabelValues(TaskType).Inc()
	h.observeScore(ctx, result.Score)

	h.logger.Info("match score calculated", map[string]interface{}{
		"repId": result.RepID,
		"gigId": result.GigID,
		"score": result.Score,
	})

	return &Output{
		RepID:     result.RepID,
		GigID:     result.GigID,
		Score:     result.Score,
		Breakdown: result.Breakdown,
	}, nil
}

func (h *Handler) observeScore(ctx context.Context, score float64) {
	if h.config.Observer != nil {
		h.config.Observer.RecordMatchScore(ctx, score, TaskType)
	}
}

func (h *Handler) getRepProfile(ctx context.Context, repID string) (*models.RepProfile, error) {
	cacheKey := "rep:profile:" + repID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile models.RepProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, years_experience, skills, industries, languages, availability,
		       timezone, conversion_rate, reliability, rating, completed_gigs, region
		FROM rep_profiles WHERE id = $1`, repID)

	var profile models.RepProfile
	var skills, industries, languages, availability []byte
	err := row.Scan(
		&profile.ID,
		&profile.YearsExperience,
		&skills,
		&industries,
		&languages,
		&availability,
		&profile.Timezone,
		&profile.Metrics.ConversionRate,
		&profile.Metrics.Reliability,
		&profile.Metrics.Rating,
		&profile.Metrics.CompletedGigs,
		&profile.Region,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skills, &profile.Skills); err != nil {
		profile.Skills = []string{}
	}
	if err := json.Unmarshal(industries, &profile.Industries); err != nil {
		profile.Industries = []string{}
	}
	if err := json.Unmarshal(languages, &profile.Languages); err != nil {
		profile.Languages = []string{}
	}
	if err := json.Unmarshal(availability, &profile.Availability); err != nil {
		profile.Availability = models.WeeklySchedule{}
	}

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)

	return &profile, nil
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
