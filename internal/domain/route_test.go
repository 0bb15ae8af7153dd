package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteEstimate_HighDemandStops(t *testing.T) {
	estimate := RouteEstimate{
		Stops: []Stop{
			{ID: "TVM-001", Name: "Thampanoor Central", Popularity: 2.0},
			{ID: "KLM-011", Name: "Kollam KSRTC", Popularity: 1.5},
			{ID: "PKD-012", Name: "Palakkad KSRTC", Popularity: 1.4},
		},
	}

	hot := estimate.HighDemandStops()
	assert.Len(t, hot, 2)
	assert.Equal(t, "TVM-001", hot[0].ID)
	assert.Equal(t, "KLM-011", hot[1].ID)
}
