// Package model loads the serialized regression artifact and turns feature
// vectors into passenger and fuel-cost predictions.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/features"
	apperrors "github.com/route-estimation-service/internal/pkg/errors"
)

// Fleet economics used when the artifact does not override them. Mileage
// degrades linearly from the empty-bus figure to the fully-loaded one.
const (
	DefaultBusCapacity         = 55.0
	DefaultAvgMileageKmpl      = 4.5
	DefaultMinMileageKmpl      = 3.5
	DefaultDieselPricePerLitre = 95.21
)

type FuelParams struct {
	BusCapacity         float64 `json:"bus_capacity"`
	AvgMileageKmpl      float64 `json:"avg_mileage_kmpl"`
	MinMileageKmpl      float64 `json:"min_mileage_kmpl"`
	DieselPricePerLitre float64 `json:"diesel_price_per_litre"`
}

// DefaultFuelParams returns the fleet economics of the reference deployment.
func DefaultFuelParams() FuelParams {
	return FuelParams{
		BusCapacity:         DefaultBusCapacity,
		AvgMileageKmpl:      DefaultAvgMileageKmpl,
		MinMileageKmpl:      DefaultMinMileageKmpl,
		DieselPricePerLitre: DefaultDieselPricePerLitre,
	}
}

type TrainingMetrics struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

// Artifact is the on-disk form produced by the offline training pipeline.
type Artifact struct {
	SchemaVersion string          `json:"schema_version"`
	FeatureNames  []string        `json:"feature_names"`
	Weights       []float64       `json:"weights"`
	Intercept     float64         `json:"intercept"`
	Fuel          FuelParams      `json:"fuel"`
	Metrics       TrainingMetrics `json:"metrics"`
	TrainedAt     time.Time       `json:"trained_at"`
}

// Model is the loaded, validated predictor. Immutable after construction and
// safe for unsynchronized concurrent use.
type Model struct {
	artifact Artifact
}

// Load reads the artifact from disk and validates it against the current
// feature schema. Any failure here must keep the process from serving.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(
			apperrors.ErrModelSchemaMismatch.WithMessage(fmt.Sprintf("model artifact unreadable at %s", path)),
			err,
		)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, apperrors.Wrap(
			apperrors.ErrModelSchemaMismatch.WithMessage(fmt.Sprintf("model artifact malformed at %s", path)),
			err,
		)
	}

	return New(artifact)
}

// New validates an artifact and wraps it into a Model.
func New(artifact Artifact) (*Model, error) {
	if artifact.SchemaVersion != features.SchemaVersion {
		return nil, apperrors.ErrModelSchemaMismatch.WithDetails(map[string]interface{}{
			"artifact_schema": artifact.SchemaVersion,
			"expected_schema": features.SchemaVersion,
		})
	}

	if len(artifact.Weights) != features.Count {
		return nil, apperrors.ErrModelSchemaMismatch.WithDetails(map[string]interface{}{
			"weight_count":   len(artifact.Weights),
			"expected_count": features.Count,
		})
	}

	expected := features.Names()
	if len(artifact.FeatureNames) != 0 {
		if len(artifact.FeatureNames) != len(expected) {
			return nil, apperrors.ErrModelSchemaMismatch.WithMessage("feature name list length mismatch")
		}
		for i, name := range artifact.FeatureNames {
			if name != expected[i] {
				return nil, apperrors.ErrModelSchemaMismatch.WithDetails(map[string]interface{}{
					"position": i,
					"artifact": name,
					"expected": expected[i],
				})
			}
		}
	}

	if err := normalizeFuel(&artifact.Fuel); err != nil {
		return nil, err
	}

	return &Model{artifact: artifact}, nil
}

func normalizeFuel(fp *FuelParams) error {
	defaults := DefaultFuelParams()
	if fp.BusCapacity == 0 {
		fp.BusCapacity = defaults.BusCapacity
	}
	if fp.AvgMileageKmpl == 0 {
		fp.AvgMileageKmpl = defaults.AvgMileageKmpl
	}
	if fp.MinMileageKmpl == 0 {
		fp.MinMileageKmpl = defaults.MinMileageKmpl
	}
	if fp.DieselPricePerLitre == 0 {
		fp.DieselPricePerLitre = defaults.DieselPricePerLitre
	}

	if fp.BusCapacity < 0 || fp.AvgMileageKmpl <= 0 || fp.MinMileageKmpl <= 0 ||
		fp.MinMileageKmpl > fp.AvgMileageKmpl || fp.DieselPricePerLitre < 0 {
		return apperrors.ErrModelSchemaMismatch.WithMessage("fuel parameters out of range")
	}
	return nil
}

// Predict maps a feature vector to the passenger and fuel-cost estimate.
// Negative raw outputs are clamped to zero: passenger counts and fuel costs
// cannot be negative.
func (m *Model) Predict(fv domain.FeatureVector) (domain.PredictionResult, error) {
	if len(fv) != len(m.artifact.Weights) {
		return domain.PredictionResult{}, apperrors.ErrModelSchemaMismatch.WithDetails(map[string]interface{}{
			"vector_len":   len(fv),
			"expected_len": len(m.artifact.Weights),
		})
	}

	raw := m.artifact.Intercept
	for i, w := range m.artifact.Weights {
		raw += w * fv[i]
	}

	passengers := clampNonNegative(raw)

	fuel := m.artifact.Fuel
	loadFactor := passengers / fuel.BusCapacity
	if loadFactor > 1 {
		loadFactor = 1
	}

	// More passengers means a heavier bus and worse mileage.
	effectiveKmpl := fuel.AvgMileageKmpl - loadFactor*(fuel.AvgMileageKmpl-fuel.MinMileageKmpl)

	distanceKm := fv[features.IdxDistanceKm]
	fuelCost := clampNonNegative(distanceKm / effectiveKmpl * fuel.DieselPricePerLitre)

	return domain.PredictionResult{
		ExpectedPassengers:   passengers,
		ExpectedFuelCost:     fuelCost,
		LoadFactorPercent:    loadFactor * 100,
		EffectiveMileageKmpl: effectiveKmpl,
	}, nil
}

// SchemaVersion returns the schema tag the model was trained on.
func (m *Model) SchemaVersion() string {
	return m.artifact.SchemaVersion
}

// Metrics returns the offline evaluation scores recorded at training time.
func (m *Model) Metrics() TrainingMetrics {
	return m.artifact.Metrics
}

// TrainedAt returns when the artifact was produced.
func (m *Model) TrainedAt() time.Time {
	return m.artifact.TrainedAt
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
