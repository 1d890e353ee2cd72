package calc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputError_MatchesSentinel(t *testing.T) {
	err := Invalid("principal", "must be greater than 0")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "Invalid Input: principal must be greater than 0", err.Error())

	wrapped := fmt.Errorf("loan: %w", err)
	assert.True(t, IsInvalidInput(wrapped))
	assert.Equal(t, "principal", FieldOf(wrapped))
}

func TestInputError_NoField(t *testing.T) {
	err := &InputError{Message: "nothing to do"}
	assert.Equal(t, "Invalid Input: nothing to do", err.Error())
	assert.Equal(t, "", FieldOf(errors.New("plain")))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, Positive("x", 1))
	assert.Error(t, Positive("x", 0))
	assert.NoError(t, NonNegative("x", 0))
	assert.Error(t, NonNegative("x", -0.01))
	assert.NoError(t, InRange("x", 100, 0, 100))
	assert.Error(t, InRange("x", 100.5, 0, 100))
	assert.Error(t, First(nil, Positive("y", -1), nil))
	assert.Nil(t, First(nil, nil))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.57, Round(25.0/7.0, 2))
	assert.Equal(t, 3.43, Round(24.0/7.0, 2))
	assert.Equal(t, -1.5, Round(-1.46, 1))
	assert.Equal(t, 0.005, MonthlyRate(6))
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, ApproxEqual(0.1+0.2, 0.3, 1e-12))
	assert.True(t, ApproxEqual(99.99, 100, 0.01+1e-12))
	assert.False(t, ApproxEqual(99.9, 100, 0.01))
	assert.True(t, ApproxEqual(-5, -5, 0))
}
