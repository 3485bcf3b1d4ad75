package blingclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/strategy-hub-api/pkg/log"
)

// RequestError representa uma resposta não-2xx da API do Bling, preservando
// o status para a classificação entre erro recuperável e fatal.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("bling: requisição falhou com status %d: %s", e.StatusCode, e.Body)
}

// Retryable separa as falhas entre recuperáveis e fatais. Qualquer resposta
// HTTP de erro é transitória e entra no cronograma de retentativas; um 429
// não recebe tratamento especial além da espera exponencial comum. Falhas de
// transporte não são repetidas.
func Retryable(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// BackoffPolicy controla as retentativas das chamadas ao Bling com espera
// exponencial limitada.
type BackoffPolicy struct {
	MaxAttempts int
	Base        time.Duration
	Cap         time.Duration
}

func DefaultBackoffPolicy() BackoffPolicy {
	return BackoffPolicy{
		MaxAttempts: 5,
		Base:        1 * time.Second,
		Cap:         10 * time.Second,
	}
}

// Delay calcula a espera antes da tentativa de número attempt (a partir de 1).
func (p BackoffPolicy) Delay(attempt int) time.Duration {
	delay := p.Base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= p.Cap {
			return p.Cap
		}
	}
	if delay > p.Cap {
		return p.Cap
	}
	return delay
}

// Do executa fn com retentativas segundo a política. Falhas fatais são
// devolvidas na hora; a última falha recuperável é devolvida quando as
// tentativas se esgotam.
func (p BackoffPolicy) Do(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !Retryable(lastErr) {
			return lastErr
		}

		if attempt == p.MaxAttempts {
			break
		}

		delay := p.Delay(attempt)
		log.L.WithFields(log.Fields{
			"attempt": attempt,
			"delay":   delay.String(),
			"error":   lastErr.Error(),
		}).Warn("Falha temporária na chamada ao Bling, aguardando para repetir")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
