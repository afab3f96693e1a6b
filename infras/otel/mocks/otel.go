package mocks

import (
	"context"
	"hotelier/infras/otel"
	"sync"
)

// Otel hands out recording scopes and keeps them by span name.
type Otel struct {
	mu     sync.Mutex
	scopes map[string][]*Scope
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := &Scope{Name: spanName}

	o.mu.Lock()
	o.scopes[spanName] = append(o.scopes[spanName], scope)
	o.mu.Unlock()

	return ctx, scope
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Scopes returns every scope opened under spanName, oldest first.
func (o *Otel) Scopes(spanName string) []*Scope {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]*Scope(nil), o.scopes[spanName]...)
}

func NewRecorder() *Otel {
	return &Otel{scopes: map[string][]*Scope{}}
}

func NewOtel() otel.Otel {
	return NewRecorder()
}
