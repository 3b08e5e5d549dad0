// Package provider resolves component identifiers to markup.
//
// A Provider is asked for one identifier at a time and answers with content
// or an error wrapping core.ErrNotFound. File-backed, in-memory and chained
// providers share the interface so the compiler never knows where markup
// comes from.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/3-lines-studio/stitch/internal/core"
)

type Request struct {
	Identifier    string
	RootDir       string
	ProjectRoot   string
	ComponentsDir string
	Props         core.Props
}

type Provider interface {
	Resolve(ctx context.Context, req Request) (string, error)
}

type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Resolve(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

func notFound(id string) error {
	return fmt.Errorf("%w: %q", core.ErrNotFound, id)
}

// Chain asks each provider in turn. The first answer that is not a not-found
// error wins, so a failing producer stops the search.
type Chain []Provider

func (c Chain) Resolve(ctx context.Context, req Request) (string, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		content, err := p.Resolve(ctx, req)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, core.ErrNotFound) {
			return "", err
		}
	}
	return "", notFound(req.Identifier)
}
