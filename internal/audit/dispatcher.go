package audit

import (
	"context"
	"log/slog"
	"sync"
)

type Event struct {
	WorkshopID uint
	UserID     *uint
	Action     string
	Entity     string
	EntityID   *uint
	Metadata   any
	RequestID  string
}

type requestIDKey struct{}

// WithRequestID anexa o id da requisição ao contexto para os eventos de auditoria.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Sink grava um evento; *Logger é a implementação em banco.
type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink   Sink
	log    *slog.Logger
	queue  chan Event
	done   chan struct{}
	closer sync.Once
}

func NewDispatcher(sink Sink, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Error("audit write failed", "action", ev.Action, "err", err)
		}
	}
}

// Dispatch nunca bloqueia: com a fila cheia o evento é descartado.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// DispatchContext completa o RequestID a partir de ctx antes de enfileirar.
func (d *Dispatcher) DispatchContext(ctx context.Context, ev Event) {
	if ev.RequestID == "" {
		ev.RequestID = RequestIDFrom(ctx)
	}
	d.Dispatch(ev)
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.closer.Do(func() {
		close(d.queue)
	})
	<-d.done
}
