// Package txmanager менеджер сериализуемых транзакций поверх *dbmetrics.DB
// Повторяет транзакцию при serialization failure / deadlock (коды 40001, 40P01)
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/okettle/marketplace-booking/pkg/dbmetrics"
)

// maxRetries максимальное количество попыток выполнения транзакции
const maxRetries = 3

var (
	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке коммита транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExceeded возвращается, когда все попытки исчерпаны
	ErrRetriesExceeded = errors.New("txmanager: serialization retries exceeded")
)

// TransactionManager менеджер транзакций с уровнем изоляции SERIALIZABLE
type TransactionManager struct {
	db *dbmetrics.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *dbmetrics.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри сериализуемой транзакции
// Транзакция кладется в контекст — репозитории, вызванные внутри fn,
// автоматически выполняют запросы через неё (см. dbmetrics.GetExecutor).
// При serialization failure транзакция повторяется до maxRetries раз.
// Любая ошибка fn приводит к полному откату.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBeginTx, err)
		}

		txCtx := dbmetrics.WithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			_ = tx.Rollback()
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("%w: %v", ErrCommitTx, err)
		}

		return nil
	}

	return fmt.Errorf("%w: %v", ErrRetriesExceeded, lastErr)
}

// isSerializationFailure проверяет, что ошибка — конфликт сериализации или deadlock
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
