package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Pendente", StatusPendente.String())
	assert.Equal(t, "Em Análise", StatusEmAnalise.String())
	assert.Equal(t, "A Faturar", StatusAFaturar.String())
	assert.Equal(t, "Cancelada", StatusCancelada.String())
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, Status(0).IsValid())
	assert.False(t, Status(11).IsValid())
	assert.False(t, Status(-1).IsValid())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(5)
	require.NoError(t, err)
	assert.Equal(t, StatusAutorizada, s)

	_, err = ParseStatus(0)
	assert.ErrorIs(t, err, ErrUnknownStatus)
	_, err = ParseStatus(99)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestStatusNext(t *testing.T) {
	cases := []struct {
		from Status
		want Status
	}{
		{StatusPendente, StatusEnviada},
		{StatusEnviada, StatusEmAnalise},
		{StatusEmAnalise, StatusAutorizada},
		{StatusEmReanalise, StatusAutorizada},
		{StatusAutorizada, StatusAgendada},
		{StatusAgendada, StatusAFaturar},
		{StatusAFaturar, StatusFaturada},
		{StatusFaturada, StatusFinalizada},
	}
	for _, tc := range cases {
		next, ok := tc.from.Next()
		require.True(t, ok, tc.from.String())
		assert.Equal(t, tc.want, next, tc.from.String())
	}

	_, ok := StatusFinalizada.Next()
	assert.False(t, ok)
	_, ok = StatusCancelada.Next()
	assert.False(t, ok)
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, StatusPendente.CanTransitionTo(StatusEnviada))
	assert.True(t, StatusEmAnalise.CanTransitionTo(StatusAutorizada))
	assert.True(t, StatusEmAnalise.CanTransitionTo(StatusEmReanalise))
	assert.True(t, StatusEmReanalise.CanTransitionTo(StatusAutorizada))

	// no skipping ahead or going back along the main flow
	assert.False(t, StatusPendente.CanTransitionTo(StatusEmAnalise))
	assert.False(t, StatusEnviada.CanTransitionTo(StatusPendente))
	assert.False(t, StatusEnviada.CanTransitionTo(StatusAutorizada))
	assert.False(t, StatusEmReanalise.CanTransitionTo(StatusEmAnalise))
}

func TestCancellationReachableFromAnyNonTerminal(t *testing.T) {
	for _, s := range AllStatuses {
		if s.IsTerminal() {
			assert.False(t, s.CanTransitionTo(StatusCancelada), s.String())
			continue
		}
		assert.True(t, s.CanTransitionTo(StatusCancelada), s.String())
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []Status{StatusFinalizada, StatusCancelada} {
		assert.True(t, terminal.IsTerminal())
		for _, target := range AllStatuses {
			assert.False(t, terminal.CanTransitionTo(target),
				"%s should not reach %s", terminal, target)
		}
	}
}
