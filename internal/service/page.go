package service

import (
	"context"

	"market-client/internal/gateway"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailure Status = "error"
)

// Page is the load state of one view. A failed load keeps the data of the
// previous successful one.
type Page[T any] struct {
	Status Status
	Data   T
	Error  string
}

func NewPage[T any]() *Page[T] {
	return &Page[T]{Status: StatusIdle}
}

// Load runs fetch and records its outcome. fallback is shown when the
// failure carries no backend message.
func (p *Page[T]) Load(ctx context.Context, fallback string, fetch func(context.Context) (T, error)) error {
	p.Status = StatusLoading

	data, err := fetch(ctx)
	if err != nil {
		p.Status = StatusFailure
		p.Error = gateway.Message(err, fallback)
		return err
	}

	p.Status = StatusSuccess
	p.Data = data
	p.Error = ""
	return nil
}

// Fail records a client-side failure without touching the data.
func (p *Page[T]) Fail(err error) error {
	p.Status = StatusFailure
	p.Error = err.Error()
	return err
}
