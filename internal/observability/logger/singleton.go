package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init inicializa el singleton. Idempotente: solo la primera llamada
// tiene efecto. Llamar al inicio de main.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L retorna el logger singleton. Si Init no fue llamado todavía,
// inicializa con defaults (dev, info) para que logar siempre sea seguro.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Sync flushea buffers pendientes. Llamar con defer en main.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
