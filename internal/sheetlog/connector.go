package sheetlog

import (
	"context"
	"log"
	"sync"
)

// RowStore abstracts the remote tabular backend. Row 1 is always the
// header [timestamp, role, tag, content]; appends go below it in write
// order. Implementations must be safe for concurrent use.
type RowStore interface {
	AppendRow(ctx context.Context, row []string) error
	ReadAllRows(ctx context.Context) ([][]string, error)
}

// Connector resolves the backend exactly once per process and caches the
// outcome, success or failure alike. A failed open stays failed for the
// process lifetime; only record-level writes retry, never the connector.
type Connector struct {
	once  sync.Once
	open  func(ctx context.Context) (RowStore, error)
	store RowStore
}

func NewConnector(open func(ctx context.Context) (RowStore, error)) *Connector {
	return &Connector{open: open}
}

// Resolve returns the cached handle, or (nil, false) when the backend is
// unavailable. Structured error detail is deliberately collapsed to a
// boolean so callers can degrade without branching on causes.
func (c *Connector) Resolve(ctx context.Context) (RowStore, bool) {
	c.once.Do(func() {
		store, err := c.open(ctx)
		if err != nil {
			log.Printf("⚠️ log backend unavailable: %v", err)
			return
		}
		c.store = store
	})
	if c.store == nil {
		return nil, false
	}
	return c.store, true
}
