// Package config provides type-safe environment variable loading with
// per-type caching, and YAML-based construction of translation pipelines.
//
// Environment loading parses struct fields tagged with `env` using
// caarlos0/env; a .env file is picked up once via godotenv when present.
// Each configuration type is loaded only once per process and served from
// cache afterwards.
package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]reflect.Value)

	dotenvOnce sync.Once
)

// Load populates cfg from environment variables. cfg must be a non-nil
// pointer to a struct. The first successful load of each struct type is
// cached; later calls for the same type return the cached values.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: Load expects a non-nil struct pointer, got %T", cfg)
	}

	dotenvOnce.Do(func() {
		// A .env file is optional; variables may come from the environment.
		_ = godotenv.Load()
	})

	t := v.Elem().Type()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[t]; ok {
		v.Elem().Set(cached)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	// Cache a snapshot so later mutations of cfg do not leak into it.
	snapshot := reflect.New(t).Elem()
	snapshot.Set(v.Elem())
	cache[t] = snapshot
	return nil
}

// MustLoad is Load that panics on failure, for use during startup.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
