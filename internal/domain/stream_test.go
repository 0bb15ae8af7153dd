package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRouteEstimateJob_OverridesClock(t *testing.T) {
	tests := []struct {
		name        string
		job         RouteEstimateJob
		expected    bool
		description string
	}{
		{
			name: "hour pinned",
			job: RouteEstimateJob{
				JobID:   uuid.New(),
				StopIDs: []string{"TVM-001", "EKM-002"},
				Hour:    intPtr(9),
			},
			expected:    true,
			description: "an explicit hour pins the clock",
		},
		{
			name: "weekend pinned",
			job: RouteEstimateJob{
				JobID:   uuid.New(),
				StopIDs: []string{"TVM-001", "EKM-002"},
				Weekend: boolPtr(true),
			},
			expected:    true,
			description: "an explicit weekend flag pins the clock",
		},
		{
			name: "both pinned",
			job: RouteEstimateJob{
				JobID:   uuid.New(),
				StopIDs: []string{"TVM-001", "EKM-002"},
				Hour:    intPtr(18),
				Weekend: boolPtr(false),
			},
			expected:    true,
			description: "either override is enough",
		},
		{
			name: "nothing pinned",
			job: RouteEstimateJob{
				JobID:   uuid.New(),
				StopIDs: []string{"TVM-001", "EKM-002"},
			},
			expected:    false,
			description: "plain jobs follow the wall clock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.job.OverridesClock(), tt.description)
		})
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
