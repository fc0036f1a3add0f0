package db

import "context"

// DB is a generic database port that lets repositories stay agnostic of the
// driver behind them.
type DB interface {
	Conn() any
	Ping(ctx context.Context) error
	Close() error
}
