package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/features"
	apperrors "github.com/route-estimation-service/internal/pkg/errors"
)

func validArtifact() Artifact {
	return Artifact{
		SchemaVersion: features.SchemaVersion,
		FeatureNames:  features.Names(),
		Weights:       []float64{0.9, 0.1, 8.0, 0.5, -4.0, 12.0},
		Intercept:     5.0,
		Fuel:          DefaultFuelParams(),
		Metrics:       TrainingMetrics{MSE: 10.4, RMSE: 3.22, R2: 0.87},
	}
}

func buildVector(distanceKm, durationMin, stopCount, hour, weekend, popularity float64) domain.FeatureVector {
	fv := make(domain.FeatureVector, features.Count)
	fv[features.IdxDistanceKm] = distanceKm
	fv[features.IdxDurationMin] = durationMin
	fv[features.IdxStopCount] = stopCount
	fv[features.IdxHourOfDay] = hour
	fv[features.IdxIsWeekend] = weekend
	fv[features.IdxAvgStopPopularity] = popularity
	return fv
}

func TestNew_RejectsSchemaMismatch(t *testing.T) {
	artifact := validArtifact()
	artifact.SchemaVersion = "v1"

	_, err := New(artifact)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrModelSchemaMismatch))
}

func TestNew_RejectsWrongWeightCount(t *testing.T) {
	artifact := validArtifact()
	artifact.Weights = artifact.Weights[:3]

	_, err := New(artifact)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrModelSchemaMismatch))
}

func TestNew_RejectsReorderedFeatureNames(t *testing.T) {
	artifact := validArtifact()
	artifact.FeatureNames[0], artifact.FeatureNames[1] = artifact.FeatureNames[1], artifact.FeatureNames[0]

	_, err := New(artifact)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrModelSchemaMismatch))
}

func TestNew_FillsFuelDefaults(t *testing.T) {
	artifact := validArtifact()
	artifact.Fuel = FuelParams{}

	m, err := New(artifact)

	require.NoError(t, err)
	res, err := m.Predict(buildVector(45, 90, 4, 9, 0, 1.5))
	require.NoError(t, err)
	assert.Greater(t, res.ExpectedFuelCost, 0.0)
}

func TestNew_RejectsInvertedMileage(t *testing.T) {
	artifact := validArtifact()
	artifact.Fuel.AvgMileageKmpl = 3.0
	artifact.Fuel.MinMileageKmpl = 4.0

	_, err := New(artifact)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrModelSchemaMismatch))
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrModelSchemaMismatch))
}

func TestLoad_RoundTrip(t *testing.T) {
	artifact := validArtifact()
	data, err := json.Marshal(artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, features.SchemaVersion, m.SchemaVersion())
	assert.InDelta(t, 0.87, m.Metrics().R2, 1e-9)
}

func TestPredict_NonNegative(t *testing.T) {
	m, err := New(validArtifact())
	require.NoError(t, err)

	res, err := m.Predict(buildVector(30, 60, 3, 9, 0, 1.6))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.ExpectedPassengers, 0.0)
	assert.GreaterOrEqual(t, res.ExpectedFuelCost, 0.0)
}

func TestPredict_ClampsNegativeRawOutput(t *testing.T) {
	artifact := validArtifact()
	artifact.Weights = []float64{0, 0, 0, 0, 0, 0}
	artifact.Intercept = -25.0

	m, err := New(artifact)
	require.NoError(t, err)

	res, err := m.Predict(buildVector(10, 20, 2, 12, 0, 1.0))
	require.NoError(t, err)

	assert.Zero(t, res.ExpectedPassengers)
	// Even an empty bus burns fuel over distance.
	assert.Greater(t, res.ExpectedFuelCost, 0.0)
	assert.Zero(t, res.LoadFactorPercent)
	assert.InDelta(t, DefaultAvgMileageKmpl, res.EffectiveMileageKmpl, 1e-9)
}

func TestPredict_LoadDegradesMileage(t *testing.T) {
	artifact := validArtifact()
	artifact.Weights = []float64{0, 0, 0, 0, 0, 0}

	// Intercept pins the passenger count directly.
	lowLoad := artifact
	lowLoad.Intercept = 11.0 // 20% of capacity
	highLoad := artifact
	highLoad.Intercept = 55.0 // full bus

	mLow, err := New(lowLoad)
	require.NoError(t, err)
	mHigh, err := New(highLoad)
	require.NoError(t, err)

	fv := buildVector(100, 150, 5, 9, 0, 1.4)

	low, err := mLow.Predict(fv)
	require.NoError(t, err)
	high, err := mHigh.Predict(fv)
	require.NoError(t, err)

	assert.Greater(t, high.ExpectedFuelCost, low.ExpectedFuelCost)
	assert.InDelta(t, 100.0, high.LoadFactorPercent, 1e-9)
	assert.InDelta(t, DefaultMinMileageKmpl, high.EffectiveMileageKmpl, 1e-9)
}

func TestPredict_LoadFactorCappedAtFullBus(t *testing.T) {
	artifact := validArtifact()
	artifact.Weights = []float64{0, 0, 0, 0, 0, 0}
	artifact.Intercept = 120.0 // far beyond capacity

	m, err := New(artifact)
	require.NoError(t, err)

	res, err := m.Predict(buildVector(50, 80, 4, 18, 0, 2.0))
	require.NoError(t, err)

	assert.InDelta(t, 120.0, res.ExpectedPassengers, 1e-9)
	assert.InDelta(t, 100.0, res.LoadFactorPercent, 1e-9)
	assert.InDelta(t, DefaultMinMileageKmpl, res.EffectiveMileageKmpl, 1e-9)
}

func TestPredict_RejectsWrongVectorLength(t *testing.T) {
	m, err := New(validArtifact())
	require.NoError(t, err)

	_, err = m.Predict(domain.FeatureVector{1, 2, 3})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrModelSchemaMismatch))
}
