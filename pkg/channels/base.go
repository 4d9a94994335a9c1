// Package channels connects chat platforms to the message bus. The radar
// ships with a single Slack channel; the interface keeps the pipeline
// unaware of the transport.
package channels

import (
	"context"
	"sync/atomic"

	"github.com/tinyland-inc/cakeradar/pkg/bus"
)

type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
}

type BaseChannel struct {
	name    string
	bus     *bus.MessageBus
	running atomic.Bool
}

func NewBaseChannel(name string, mb *bus.MessageBus) *BaseChannel {
	return &BaseChannel{name: name, bus: mb}
}

func (c *BaseChannel) Name() string {
	return c.name
}

func (c *BaseChannel) IsRunning() bool {
	return c.running.Load()
}

func (c *BaseChannel) SetRunning(running bool) {
	c.running.Store(running)
}

func (c *BaseChannel) Bus() *bus.MessageBus {
	return c.bus
}
