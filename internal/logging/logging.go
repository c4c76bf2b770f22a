// Package logging wraps a process-wide zerolog.Logger singleton, initialized
// once at startup by the CLI entry point. Core packages (cell, resample,
// cres) never import this package — they accept a *zerolog.Logger
// parameter or field (nil disables logging) so they stay testable
// without any global state.
package logging

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once      sync.Once
	global    zerolog.Logger
	didInit   bool
	initMu    sync.RWMutex
)

// Init sets up the global logger at the given level ("trace", "debug",
// "info", "warn", "error") and is safe to call multiple times; only the
// first call takes effect, matching the "initialized once at startup"
// contract.
func Init(level string) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		global = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			Level(lvl).
			With().Timestamp().Logger()

		initMu.Lock()
		didInit = true
		initMu.Unlock()
	})
}

// L returns the global logger. If Init was never called, it returns a
// disabled logger so tests and library consumers never see unexpected
// stderr output.
func L() *zerolog.Logger {
	initMu.RLock()
	init := didInit
	initMu.RUnlock()
	if !init {
		disabled := zerolog.Nop()
		return &disabled
	}
	return &global
}
