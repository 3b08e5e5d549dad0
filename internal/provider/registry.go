package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/3-lines-studio/stitch/internal/core"
)

// Producer builds component markup from props. Props never include the
// reserved src and name keys.
type Producer interface {
	Produce(ctx context.Context, props map[string]string) (string, error)
}

type ProducerFunc func(ctx context.Context, props map[string]string) (string, error)

func (f ProducerFunc) Produce(ctx context.Context, props map[string]string) (string, error) {
	return f(ctx, props)
}

type staticProducer string

func (s staticProducer) Produce(context.Context, map[string]string) (string, error) {
	return string(s), nil
}

// Static registers fixed markup that ignores props.
func Static(content string) Producer {
	return staticProducer(content)
}

type Registry struct {
	mu        sync.RWMutex
	producers map[string]Producer
}

func NewRegistry() *Registry {
	return &Registry{producers: make(map[string]Producer)}
}

func (r *Registry) Register(id string, p Producer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.producers[core.NormalizeIdentifier(id)] = p
}

func (r *Registry) Lookup(id string) (Producer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.producers[core.NormalizeIdentifier(id)]
	return p, ok
}

func (r *Registry) Resolve(ctx context.Context, req Request) (string, error) {
	p, ok := r.Lookup(req.Identifier)
	if !ok || p == nil {
		return "", notFound(req.Identifier)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	props := req.Props.Without(core.PropSrc, core.PropName).Map()
	content, err := p.Produce(ctx, props)
	if err != nil {
		return "", fmt.Errorf("producer %q: %w", req.Identifier, err)
	}
	return content, nil
}
