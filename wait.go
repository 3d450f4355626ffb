package shmqueue

import (
	"context"
	"time"
)

// WaitClientConnected blocks until the other direction has opened this
// channel at least once since this session's primitives were created, or
// until timeout/cancel fires. timeout <= 0 waits indefinitely.
func (c *Channel) WaitClientConnected(timeout time.Duration, cancel <-chan struct{}) Status {
	return c.clientConnected.wait(timeout, cancel)
}

// WaitHasMessages blocks until the channel holds at least one message.
func (c *Channel) WaitHasMessages(timeout time.Duration, cancel <-chan struct{}) Status {
	return c.hasMessages.wait(timeout, cancel)
}

// WaitEmpty blocks until the channel holds no messages.
func (c *Channel) WaitEmpty(timeout time.Duration, cancel <-chan struct{}) Status {
	return c.noMessages.wait(timeout, cancel)
}

// contextWait turns a context's deadline and Done channel into the
// (timeout, cancel) pair every blocking method in this package takes.
func contextWait(ctx context.Context) (time.Duration, <-chan struct{}) {
	var timeout time.Duration
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 {
			timeout = remaining
		} else {
			timeout = time.Nanosecond
		}
	}
	return timeout, ctx.Done()
}

// WriteContext is Write with a timeout and cancellation driven by ctx.
func (c *Channel) WriteContext(ctx context.Context, length int64, cb WriteFunc) (ChannelState, Status) {
	timeout, cancel := contextWait(ctx)
	return c.Write(length, timeout, cancel, cb)
}

// ReadContext is Read with a timeout and cancellation driven by ctx.
func (c *Channel) ReadContext(ctx context.Context, cb ReadFunc) (ChannelState, Status) {
	timeout, cancel := contextWait(ctx)
	return c.Read(timeout, cancel, cb)
}

// StateContext is State with a timeout and cancellation driven by ctx.
func (c *Channel) StateContext(ctx context.Context) (ChannelState, Status) {
	timeout, cancel := contextWait(ctx)
	return c.State(timeout, cancel)
}

// WaitClientConnectedContext is WaitClientConnected driven by ctx.
func (c *Channel) WaitClientConnectedContext(ctx context.Context) Status {
	timeout, cancel := contextWait(ctx)
	return c.WaitClientConnected(timeout, cancel)
}

// WaitHasMessagesContext is WaitHasMessages driven by ctx.
func (c *Channel) WaitHasMessagesContext(ctx context.Context) Status {
	timeout, cancel := contextWait(ctx)
	return c.WaitHasMessages(timeout, cancel)
}

// WaitEmptyContext is WaitEmpty driven by ctx.
func (c *Channel) WaitEmptyContext(ctx context.Context) Status {
	timeout, cancel := contextWait(ctx)
	return c.WaitEmpty(timeout, cancel)
}
