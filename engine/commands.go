package engine

// Commands buffers deferred operations that are executed at the end of a
// frame, after every system has finished with the state it reads.
type Commands struct {
	defers []func()
}

// NewCommands returns an empty buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run on the next Flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs the queued operations in the order they were deferred and
// resets the buffer. Operations deferred while flushing run in the same
// Flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}

// Discard drops every queued operation without running it.
func (c *Commands) Discard() {
	clear(c.defers)
	c.defers = c.defers[:0]
}
