package txmanager

import "errors"

var (
	// ErrTransaction возвращается при ошибках begin/commit
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrRetriesExhausted возвращается, когда все попытки сериализуемой транзакции завершились конфликтом
	ErrRetriesExhausted = errors.New("txmanager: serializable retries exhausted")
)
