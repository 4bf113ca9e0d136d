package editors

import (
	"context"
	"sync"

	jsonforms "github.com/zhibinjin/jsonforms"
)

// Transfer performs one upload and returns the value the editor should hold
// afterwards, typically the stored file's reference.
type Transfer func(ctx context.Context) (any, error)

// Uploader is the file-upload editor. Uploads are the one asynchronous
// boundary of the model: transfers started while another is running are
// queued, so at most one is in flight and completion order matches start
// order.
type Uploader struct {
	valueEditor
	id string

	mu      sync.Mutex
	queue   []queued
	running bool
	wg      sync.WaitGroup

	// Err holds the most recent transfer failure, if any.
	Err error
}

type queued struct {
	ctx context.Context
	t   Transfer
}

func NewUploader(cfg jsonforms.EditorConfig) (jsonforms.Editor, error) {
	u := &Uploader{id: cfg.ID}
	u.value = cfg.Schema.Default
	return u, nil
}

// SetValue installs an already-known file reference without a transfer.
func (u *Uploader) SetValue(v any) error {
	u.set(v)
	return nil
}

// Start queues a transfer. The first queued transfer starts a single drain
// goroutine; further ones ride on it in FIFO order.
func (u *Uploader) Start(ctx context.Context, t Transfer) {
	u.mu.Lock()
	u.queue = append(u.queue, queued{ctx: ctx, t: t})
	u.wg.Add(1)
	starting := !u.running
	u.running = true
	u.mu.Unlock()
	if starting {
		go u.drain()
	}
}

// Flush blocks until every queued transfer has finished.
func (u *Uploader) Flush() { u.wg.Wait() }

func (u *Uploader) drain() {
	for {
		u.mu.Lock()
		if len(u.queue) == 0 {
			u.running = false
			u.mu.Unlock()
			return
		}
		next := u.queue[0]
		u.queue = u.queue[1:]
		u.mu.Unlock()

		v, err := next.t(next.ctx)
		if err != nil {
			u.Err = err
		} else {
			u.set(v)
		}
		u.wg.Done()
	}
}
