package usecase

import "github.com/route-estimation-service/internal/domain"

// Predictor is the trained-model surface the estimate flow depends on.
// *model.Model satisfies it; tests substitute controlled implementations.
type Predictor interface {
	// Predict maps a feature vector to a passenger and fuel-cost estimate.
	Predict(fv domain.FeatureVector) (domain.PredictionResult, error)

	// SchemaVersion returns the feature schema tag the model was trained on.
	SchemaVersion() string
}
