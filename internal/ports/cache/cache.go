package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache es un KV de bytes con TTL. Implementaciones: redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Observer recibe "hit", "miss" o "error" en cada lectura. Opcional.
type Observer func(result string)

// Remember hace read-through: si key está en cache la devuelve, si no llama load y la guarda.
// Con c == nil siempre llama load. Fallas del cache nunca rompen la lectura.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, observe Observer, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	if observe == nil {
		observe = func(string) {}
	}

	if raw, ok, err := c.Get(ctx, key); err != nil {
		observe("error")
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			observe("hit")
			return v, nil
		}
		observe("error")
	} else {
		observe("miss")
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		_ = c.Set(ctx, key, raw, ttl)
	}
	return v, nil
}

// Invalidate borra keys ignorando nil cache y errores (el TTL termina de limpiar).
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_ = c.Delete(ctx, keys...)
}

// Options agrupa lo que necesita un servicio de catálogo para cachear lecturas.
// El zero value desactiva el cache.
type Options struct {
	Cache   Cache
	TTL     time.Duration
	Observe Observer
}

// Cached es Remember con los parámetros de o.
func Cached[T any](ctx context.Context, o Options, key string, load func(context.Context) (T, error)) (T, error) {
	return Remember(ctx, o.Cache, key, o.TTL, o.Observe, load)
}
