package globals

import (
	"context"
	"io"

	"iidxbot/internal/config"
)

type key struct{}

type Value struct {
	Config config.Config
	Log    io.Closer
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}
