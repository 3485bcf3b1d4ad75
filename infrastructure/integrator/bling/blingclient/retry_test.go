package blingclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "Limite de taxa (429) deve ser recuperável",
			err:      &RequestError{StatusCode: http.StatusTooManyRequests},
			expected: true,
		},
		{
			name:     "Erro interno (500) deve ser recuperável",
			err:      &RequestError{StatusCode: http.StatusInternalServerError},
			expected: true,
		},
		{
			name:     "Não encontrado (404) deve ser recuperável como qualquer erro HTTP",
			err:      &RequestError{StatusCode: http.StatusNotFound},
			expected: true,
		},
		{
			name:     "Não autorizado (401) deve ser recuperável como qualquer erro HTTP",
			err:      &RequestError{StatusCode: http.StatusUnauthorized},
			expected: true,
		},
		{
			name:     "Erro HTTP embrulhado continua recuperável",
			err:      fmt.Errorf("erro ao buscar a página: %w", &RequestError{StatusCode: http.StatusBadRequest}),
			expected: true,
		},
		{
			name:     "Falha de transporte não deve ser recuperável",
			err:      errors.New("connection refused"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Retryable(tt.err))
		})
	}
}

func TestBackoffPolicyDelay(t *testing.T) {
	policy := DefaultBackoffPolicy()

	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{
			name:     "Primeira tentativa usa a espera base",
			attempt:  1,
			expected: 1 * time.Second,
		},
		{
			name:     "Segunda tentativa dobra a espera",
			attempt:  2,
			expected: 2 * time.Second,
		},
		{
			name:     "Terceira tentativa dobra novamente",
			attempt:  3,
			expected: 4 * time.Second,
		},
		{
			name:     "Quarta tentativa dobra novamente",
			attempt:  4,
			expected: 8 * time.Second,
		},
		{
			name:     "Quinta tentativa fica limitada ao teto",
			attempt:  5,
			expected: 10 * time.Second,
		},
		{
			name:     "Tentativas além do teto continuam limitadas",
			attempt:  10,
			expected: 10 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Delay(tt.attempt))
		})
	}
}

func TestBackoffPolicyDo(t *testing.T) {
	fastPolicy := BackoffPolicy{
		MaxAttempts: 3,
		Base:        1 * time.Millisecond,
		Cap:         2 * time.Millisecond,
	}

	t.Run("Sucesso na primeira tentativa não repete", func(t *testing.T) {
		calls := 0
		err := fastPolicy.Do(context.Background(), func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Erro recuperável deve ser retentado até o sucesso", func(t *testing.T) {
		calls := 0
		err := fastPolicy.Do(context.Background(), func() error {
			calls++
			if calls < 3 {
				return &RequestError{StatusCode: http.StatusServiceUnavailable}
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("Erro HTTP persistente esgota o orçamento de tentativas", func(t *testing.T) {
		calls := 0
		err := fastPolicy.Do(context.Background(), func() error {
			calls++
			return &RequestError{StatusCode: http.StatusNotFound}
		})

		require.Error(t, err)
		assert.Equal(t, fastPolicy.MaxAttempts, calls)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	})

	t.Run("Falha de transporte interrompe imediatamente", func(t *testing.T) {
		calls := 0
		transportErr := errors.New("connection refused")
		err := fastPolicy.Do(context.Background(), func() error {
			calls++
			return transportErr
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, transportErr, err)
	})

	t.Run("Contexto cancelado interrompe a espera", func(t *testing.T) {
		slowPolicy := BackoffPolicy{
			MaxAttempts: 3,
			Base:        1 * time.Second,
			Cap:         2 * time.Second,
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		err := slowPolicy.Do(ctx, func() error {
			calls++
			return &RequestError{StatusCode: http.StatusInternalServerError}
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
