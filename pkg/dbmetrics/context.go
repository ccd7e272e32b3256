package dbmetrics

import "context"

// ctxKey приватный тип ключа контекста для executor'а транзакции
type ctxKey struct{}

// WithExecutor кладёт executor активной транзакции в контекст.
// Репозитории достают его через GetExecutor и выполняют запросы
// внутри транзакции, не зная о ней напрямую.
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, executor)
}

// GetExecutor возвращает executor из контекста, если там есть активная
// транзакция, иначе — переданный по умолчанию
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(ctxKey{}).(DBExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction возвращает true, если в контексте есть активная транзакция
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(DBExecutor)
	return ok
}
