package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the shared GORM handle for the repositories under internal/.
type Base struct {
	conn *gorm.DB
}

func NewBase(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// DB binds the handle to the request context so cancellation reaches the
// driver. A nil context yields the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.conn
	}
	return b.conn.WithContext(ctx)
}
