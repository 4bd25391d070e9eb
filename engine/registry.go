package engine

import "sort"

// LevelFunc constructs a level for the engine that will run it.
// Construction must be cheap; heavy work belongs in Preload.
type LevelFunc func(*Engine) Level

// RegisterLevel adds a level constructor under the given key. The
// engine instantiates it each time the level is loaded, so every
// visit starts from a fresh level value. Registering an existing key
// replaces the earlier constructor.
func (e *Engine) RegisterLevel(key string, fn LevelFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		delete(e.levels, key)
		return
	}
	e.levels[key] = fn
}

// RegisterLevels adds several level constructors at once.
func (e *Engine) RegisterLevels(levels map[string]LevelFunc) {
	for key, fn := range levels {
		e.RegisterLevel(key, fn)
	}
}

// HasLevel reports whether a constructor is registered under the key.
func (e *Engine) HasLevel(key string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.levels[key]
	return ok
}

// Levels returns the registered level keys, sorted.
func (e *Engine) Levels() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.levels))
	for key := range e.levels {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (e *Engine) levelFunc(key string) (LevelFunc, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn, ok := e.levels[key]
	return fn, ok
}
