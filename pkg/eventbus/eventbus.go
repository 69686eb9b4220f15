package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event representa cualquier evento de dominio del sistema.
type Event interface {
	Name() string
}

// Listener es un manejador de eventos.
type Listener func(ctx context.Context, event Event) error

// Bus es el bus de eventos en proceso. Los eventos se publican después del
// commit de la transacción; los listeners corren en goroutines propias y sus
// errores solo se loguean, nunca afectan al caso de uso que publicó.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		go func(l Listener) {
			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("error en el listener de evento",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}
