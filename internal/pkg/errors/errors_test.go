package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCode(t *testing.T) {
	t.Run("bare app error", func(t *testing.T) {
		assert.True(t, IsCode(ErrUnknownStop, ErrUnknownStop))
		assert.False(t, IsCode(ErrUnknownStop, ErrNoRouteFound))
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := Wrap(ErrRoutingUnavailable, stderrors.New("dial tcp: connection refused"))
		assert.True(t, IsCode(err, ErrRoutingUnavailable))
		assert.False(t, IsCode(err, ErrNoRouteFound))
	})

	t.Run("double wrapped", func(t *testing.T) {
		err := fmt.Errorf("compute route: %w", Wrap(ErrNoRouteFound, stderrors.New("code NoRoute")))
		assert.True(t, IsCode(err, ErrNoRouteFound))
	})

	t.Run("plain error carries no code", func(t *testing.T) {
		assert.False(t, IsCode(stderrors.New("boom"), ErrInternalServer))
		assert.Nil(t, FromError(stderrors.New("boom")))
	})
}

func TestWithDetails_DoesNotMutatePredefined(t *testing.T) {
	err := ErrUnknownStop.WithDetails(map[string]interface{}{"stop_id": "ZZZ-999"})

	assert.Equal(t, "ZZZ-999", err.Details["stop_id"])
	assert.Nil(t, ErrUnknownStop.Details)
	assert.Equal(t, ErrUnknownStop.Code, err.Code)
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("upstream timeout")
	err := Wrap(ErrRoutingUnavailable, cause)

	assert.ErrorIs(t, err, cause)
	app := FromError(err)
	if assert.NotNil(t, app) {
		assert.Equal(t, "ROUTING_UNAVAILABLE", app.Code)
	}
}
