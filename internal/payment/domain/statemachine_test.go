package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusPaid.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusRegistered.IsTerminal())
	assert.False(t, StatusUnknown.IsTerminal())
}

func TestNextStatuses_TerminalsHaveNoEdges(t *testing.T) {
	assert.Empty(t, StatusPaid.NextStatuses())
	assert.Empty(t, StatusCancelled.NextStatuses())
	assert.Empty(t, StatusFailed.NextStatuses())
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusRegistered))
	assert.True(t, CanTransition(StatusRegistered, StatusPaid))
	assert.True(t, CanTransition(StatusRegistered, StatusCancelled))
	assert.True(t, CanTransition(StatusUnknown, StatusPending))

	assert.False(t, CanTransition(StatusPending, StatusPaid))
	assert.False(t, CanTransition(StatusPaid, StatusRegistered))
	assert.False(t, CanTransition(StatusRegistered, StatusPending))
}

func TestTransitionPath(t *testing.T) {
	assert.Equal(t,
		[]PaymentStatus{StatusPending, StatusRegistered, StatusPaid},
		TransitionPath(StatusUnknown, StatusPaid))

	assert.Equal(t,
		[]PaymentStatus{StatusRegistered},
		TransitionPath(StatusPending, StatusRegistered))

	assert.Equal(t,
		[]PaymentStatus{StatusRegistered, StatusCancelled},
		TransitionPath(StatusPending, StatusCancelled))
}

func TestTransitionPath_Unreachable(t *testing.T) {
	assert.Nil(t, TransitionPath(StatusPaid, StatusPending))
	assert.Nil(t, TransitionPath(StatusRegistered, StatusUnknown))
	assert.Nil(t, TransitionPath(StatusCancelled, StatusPaid))
}

func TestTransitionPath_SameStatus(t *testing.T) {
	assert.Nil(t, TransitionPath(StatusPending, StatusPending))
}

func TestValidateAction(t *testing.T) {
	assert.NoError(t, ValidateAction(ActionPay, StatusPending))
	assert.NoError(t, ValidateAction(ActionPay, StatusRegistered))
	assert.NoError(t, ValidateAction(ActionCancel, StatusRegistered))
	assert.NoError(t, ValidateAction(ActionRegister, StatusPending))

	assert.ErrorIs(t, ValidateAction(ActionCancel, StatusPending), ErrActionNotAllowed)
	assert.ErrorIs(t, ValidateAction(ActionPay, StatusPaid), ErrActionNotAllowed)
	assert.ErrorIs(t, ValidateAction(ActionRegister, StatusRegistered), ErrActionNotAllowed)

	assert.ErrorIs(t, ValidateAction(Action("refund"), StatusRegistered), ErrUnknownAction)
}
