package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// TxManager менеджер "транзакций" для хранилища в памяти.
// Все единицы работы выполняются строго последовательно под одной блокировкой,
// что даёт ту же гарантию, что и SERIALIZABLE в PostgreSQL. Вложенные вызовы
// переиспользуют уже захваченную блокировку.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager создает менеджер
func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(context.WithValue(ctx, txKey{}, true))
}
