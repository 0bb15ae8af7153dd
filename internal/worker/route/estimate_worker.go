package route

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/domain/repository"
	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/usecase"
	"github.com/route-estimation-service/internal/usecase/dto"
	"github.com/route-estimation-service/internal/worker"
)

// EstimateWorker consumes route estimate jobs from the planner backend and
// publishes results. Every consumed message is answered on the done stream,
// failures included, so the publisher never has to poll.
type EstimateWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	estimateUC   usecase.RouteEstimator
	consumerName string
	jobTimeout   time.Duration
}

// NewEstimateWorker - creation of a new EstimateWorker
func NewEstimateWorker(
	streamRepo repository.StreamRepository,
	estimateUC usecase.RouteEstimator,
	consumerGroup string,
	jobTimeout time.Duration,
	logger *zap.Logger,
) *EstimateWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &EstimateWorker{
		BaseWorker:   worker.NewBaseWorker("route-estimate", consumerGroup, logger),
		streamRepo:   streamRepo,
		estimateUC:   estimateUC,
		consumerName: consumerName,
		jobTimeout:   jobTimeout,
	}
}

// Start runs the consume loop until stopped.
func (w *EstimateWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting EstimateWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRouteEstimate, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamRouteEstimate, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		logger.Error("Failed to start consuming", zap.Error(err))
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Message channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage runs one job end to end: decode, estimate, publish, ack.
func (w *EstimateWorker) handleMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	job, err := parseJob(msg)
	if err != nil {
		logger.Warn("Failed to parse job, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Ack malformed messages so they do not wedge the group
		w.ack(ctx, msg.ID)
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	resp, err := w.estimateUC.EstimateRoute(jobCtx, dto.EstimateRouteRequest{
		StopIDs: job.StopIDs,
		Hour:    job.Hour,
		Weekend: job.Weekend,
	})

	done := buildDoneEvent(job.JobID, resp, err)
	if pubErr := w.streamRepo.PublishToStream(ctx, domain.StreamRouteDone, done); pubErr != nil {
		logger.Error("Failed to publish done event",
			zap.String("job_id", job.JobID.String()),
			zap.Error(pubErr))
		// Still ack: the consume loop never reclaims pending messages, so
		// holding the ack back would strand the job, not retry it
	}

	w.ack(ctx, msg.ID)

	if err != nil {
		logger.Warn("Estimate job failed",
			zap.String("job_id", job.JobID.String()),
			zap.Strings("stop_ids", job.StopIDs),
			zap.Error(err))
		return
	}

	logger.Info("Estimate job processed",
		zap.String("job_id", job.JobID.String()),
		zap.Int("stops", len(job.StopIDs)),
		zap.Bool("approximate", resp.Approximate))
}

// parseJob decodes a stream message into an estimate job.
func parseJob(msg domain.StreamMessage) (*domain.RouteEstimateJob, error) {
	var job domain.RouteEstimateJob
	if err := json.Unmarshal([]byte(msg.Data), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	if job.JobID == uuid.Nil {
		return nil, fmt.Errorf("job_id is required")
	}
	return &job, nil
}

// buildDoneEvent shapes the result event. Failures carry the error code so
// the publisher can distinguish bad routes from outages.
func buildDoneEvent(jobID uuid.UUID, resp *dto.EstimateRouteResponse, err error) *domain.RouteDoneEvent {
	done := &domain.RouteDoneEvent{JobID: jobID}

	if err != nil {
		done.Error = err.Error()
		if appErr := errors.FromError(err); appErr != nil {
			done.Code = appErr.Code
			done.Error = appErr.Message
		}
		return done
	}

	done.Estimate = convertEstimate(resp)
	return done
}

// convertEstimate maps the response back onto the domain aggregate published
// on the done stream.
func convertEstimate(resp *dto.EstimateRouteResponse) *domain.RouteEstimate {
	stops := make([]domain.Stop, len(resp.Stops))
	for i, s := range resp.Stops {
		stops[i] = domain.Stop{
			ID:         s.ID,
			Name:       s.Name,
			Latitude:   s.Latitude,
			Longitude:  s.Longitude,
			District:   s.District,
			Category:   s.Category,
			Popularity: s.Popularity,
		}
	}

	return &domain.RouteEstimate{
		Stops:    stops,
		Geometry: resp.Geometry,
		Metrics: domain.RouteMetrics{
			DistanceMeters:  resp.DistanceKm * 1000.0,
			DurationSeconds: resp.DurationMinutes * 60.0,
		},
		Prediction: domain.PredictionResult{
			ExpectedPassengers:   float64(resp.Prediction.ExpectedPassengers),
			ExpectedFuelCost:     resp.Prediction.ExpectedFuelCost,
			LoadFactorPercent:    resp.Prediction.LoadFactorPercent,
			EffectiveMileageKmpl: resp.Prediction.EffectiveMileageKmpl,
		},
		Economics: domain.RouteEconomics{
			EstimatedRevenue: resp.Economics.EstimatedRevenue,
			EstimatedProfit:  resp.Economics.EstimatedProfit,
			FuelCost:         resp.Economics.FuelCost,
			TimePeriod:       resp.Economics.TimePeriod,
		},
		Approximate: resp.Approximate,
	}
}

func (w *EstimateWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamRouteEstimate, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
