package rediscache

import "errors"

var (
	// ErrCacheGet возвращается при ошибке чтения из redis
	ErrCacheGet = errors.New("rediscache: failed to get value")

	// ErrCacheSet возвращается при ошибке записи в redis
	ErrCacheSet = errors.New("rediscache: failed to set value")

	// ErrDecode возвращается, если значение в кэше не удалось разобрать
	ErrDecode = errors.New("rediscache: failed to decode value")
)
