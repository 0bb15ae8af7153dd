package route_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/pkg/errors"
	"github.com/route-estimation-service/internal/usecase/dto"
	"github.com/route-estimation-service/internal/worker/route"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockRouteEstimator is a mock of RouteEstimator
type MockRouteEstimator struct {
	mock.Mock
}

func (m *MockRouteEstimator) EstimateRoute(ctx context.Context, req dto.EstimateRouteRequest) (*dto.EstimateRouteResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EstimateRouteResponse), args.Error(1)
}

func newTestWorker(mockStream *MockStreamRepository, mockUC *MockRouteEstimator) *route.EstimateWorker {
	return route.NewEstimateWorker(
		mockStream,
		mockUC,
		"test-group",
		5*time.Second,
		zap.NewNop(),
	)
}

func testResponse() *dto.EstimateRouteResponse {
	return &dto.EstimateRouteResponse{
		Stops: []dto.StopSummary{
			{ID: "TVM-001", Name: "Thampanoor Central", Latitude: 8.4875, Longitude: 76.9520, Popularity: 2.0},
			{ID: "EKM-001", Name: "Vyttila Mobility Hub", Latitude: 9.9675, Longitude: 76.3203, Popularity: 2.0},
		},
		DistanceKm:      220.0,
		DurationMinutes: 270.0,
		Prediction: dto.PredictionSummary{
			ExpectedPassengers: 45,
			ExpectedFuelCost:   5023.4,
			LoadFactorPercent:  81.8,
		},
		Economics: dto.EconomicsSummary{
			EstimatedRevenue: 7128.0,
			EstimatedProfit:  2104.6,
			FuelCost:         5023.4,
			TimePeriod:       "peak",
		},
	}
}

// TestEstimateWorker_Name tests the worker name
func TestEstimateWorker_Name(t *testing.T) {
	worker := newTestWorker(&MockStreamRepository{}, &MockRouteEstimator{})

	assert.Equal(t, "route-estimate", worker.Name())
}

// TestEstimateWorker_Stop tests graceful stop
func TestEstimateWorker_Stop(t *testing.T) {
	worker := newTestWorker(&MockStreamRepository{}, &MockRouteEstimator{})

	// Stop should not error even if not started
	err := worker.Stop()
	assert.NoError(t, err)

	// Calling stop multiple times should be safe
	err = worker.Stop()
	assert.NoError(t, err)
}

// TestEstimateWorker_ContextCancellation tests worker stops on context cancellation
func TestEstimateWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockUC := &MockRouteEstimator{}
	worker := newTestWorker(mockStream, mockUC)

	// Empty open channel: the worker blocks until the context is cancelled
	msgChan := make(chan domain.StreamMessage)
	var messages <-chan domain.StreamMessage = msgChan

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRouteEstimate, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRouteEstimate, "test-group", mock.AnythingOfType("string")).
		Return(messages, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}

	mockStream.AssertExpectations(t)
}

// TestEstimateWorker_ProcessesJob tests the full consume-estimate-publish-ack cycle
func TestEstimateWorker_ProcessesJob(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockUC := &MockRouteEstimator{}
	worker := newTestWorker(mockStream, mockUC)

	jobID := uuid.New()
	job := &domain.RouteEstimateJob{
		JobID:   jobID,
		StopIDs: []string{"TVM-001", "EKM-001"},
	}
	jobJSON, _ := json.Marshal(job)

	// Closed buffered channel: the worker drains the message and then exits
	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- domain.StreamMessage{ID: "1234567890-0", Data: string(jobJSON)}
	close(msgChan)
	var messages <-chan domain.StreamMessage = msgChan

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRouteEstimate, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRouteEstimate, "test-group", mock.AnythingOfType("string")).
		Return(messages, nil)

	mockUC.On("EstimateRoute", mock.Anything, mock.MatchedBy(func(req dto.EstimateRouteRequest) bool {
		return len(req.StopIDs) == 2 && req.StopIDs[0] == "TVM-001"
	})).Return(testResponse(), nil)

	mockStream.On("PublishToStream", mock.Anything, domain.StreamRouteDone, mock.MatchedBy(func(event *domain.RouteDoneEvent) bool {
		return event.JobID == jobID &&
			event.Error == "" &&
			event.Estimate != nil &&
			len(event.Estimate.Stops) == 2 &&
			event.Estimate.Metrics.DistanceMeters == 220000.0 &&
			event.Estimate.Metrics.DurationSeconds == 16200.0 &&
			event.Estimate.Economics.TimePeriod == "peak"
	})).Return(nil)

	mockStream.On("AckMessage", mock.Anything, domain.StreamRouteEstimate, "test-group", "1234567890-0").
		Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(context.Background())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not finish")
	}

	mockStream.AssertExpectations(t)
	mockUC.AssertExpectations(t)
}

// TestEstimateWorker_FailedJob tests that failures are published with their error code
func TestEstimateWorker_FailedJob(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockUC := &MockRouteEstimator{}
	worker := newTestWorker(mockStream, mockUC)

	jobID := uuid.New()
	job := &domain.RouteEstimateJob{
		JobID:   jobID,
		StopIDs: []string{"TVM-001", "XYZ-999"},
	}
	jobJSON, _ := json.Marshal(job)

	msgChan := make(chan domain.StreamMessage, 1)
	msgChan <- domain.StreamMessage{ID: "1234567890-0", Data: string(jobJSON)}
	close(msgChan)
	var messages <-chan domain.StreamMessage = msgChan

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRouteEstimate, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRouteEstimate, "test-group", mock.AnythingOfType("string")).
		Return(messages, nil)

	mockUC.On("EstimateRoute", mock.Anything, mock.Anything).
		Return(nil, errors.ErrUnknownStop.WithDetails(map[string]interface{}{"stop_id": "XYZ-999"}))

	mockStream.On("PublishToStream", mock.Anything, domain.StreamRouteDone, mock.MatchedBy(func(event *domain.RouteDoneEvent) bool {
		return event.JobID == jobID &&
			event.Estimate == nil &&
			event.Code == errors.ErrUnknownStop.Code &&
			event.Error != ""
	})).Return(nil)

	mockStream.On("AckMessage", mock.Anything, domain.StreamRouteEstimate, "test-group", "1234567890-0").
		Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(context.Background())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not finish")
	}

	mockStream.AssertExpectations(t)
	mockUC.AssertExpectations(t)
}

// TestEstimateWorker_MalformedMessage tests that unparseable messages are acked and skipped
func TestEstimateWorker_MalformedMessage(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockUC := &MockRouteEstimator{}
	worker := newTestWorker(mockStream, mockUC)

	msgChan := make(chan domain.StreamMessage, 2)
	msgChan <- domain.StreamMessage{ID: "bad-0", Data: "{not json"}
	msgChan <- domain.StreamMessage{ID: "bad-1", Data: `{"stop_ids":["TVM-001","EKM-001"]}`}
	close(msgChan)
	var messages <-chan domain.StreamMessage = msgChan

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamRouteEstimate, "test-group").
		Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamRouteEstimate, "test-group", mock.AnythingOfType("string")).
		Return(messages, nil)

	// Both the broken JSON and the message without a job_id get acked
	mockStream.On("AckMessage", mock.Anything, domain.StreamRouteEstimate, "test-group", "bad-0").
		Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamRouteEstimate, "test-group", "bad-1").
		Return(nil)

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(context.Background())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not finish")
	}

	mockUC.AssertNotCalled(t, "EstimateRoute", mock.Anything, mock.Anything)
	mockStream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	mockStream.AssertExpectations(t)
}
