package arena

import "sync"

// Locked is a mutex-protected wrapper around Allocator for concurrent callers.
// Every call holds one lock around the whole arena.
type Locked struct {
	mu sync.Mutex
	a  *Allocator
}

// NewLocked creates an Allocator with opts and wraps it.
func NewLocked(opts ...Option) (*Locked, error) {
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return &Locked{a: a}, nil
}

// Alloc thread-safely allocates n bytes. See Allocator.Alloc.
func (l *Locked) Alloc(n int) (Handle, []byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(n)
}

// Free thread-safely releases h. See Allocator.Free.
func (l *Locked) Free(h Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Free(h)
}

// Bytes thread-safely resolves a live handle to its payload.
// Concurrent writers to the same payload must coordinate on their own.
func (l *Locked) Bytes(h Handle) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Bytes(h)
}

// Capacity returns the total arena size in bytes.
func (l *Locked) Capacity() int { return l.a.Capacity() }

// Stats thread-safely returns a snapshot of the allocator.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// BlockList thread-safely returns every block in address order.
func (l *Locked) BlockList() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.BlockList()
}

// Contents thread-safely copies the requested bytes of an occupied block.
func (l *Locked) Contents(b Block) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Contents(b)
}

// Check thread-safely verifies the chain. See Allocator.Check.
func (l *Locked) Check() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Check()
}
