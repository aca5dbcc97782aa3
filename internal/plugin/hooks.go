package plugin

import (
	"context"
	"sync"

	log "github.com/echocat/slf4g"
)

// queueSize is how many requests may wait for one plugin before new ones are dropped.
const queueSize = 16

type job struct {
	ctx context.Context
	req Request
}

// Hooks fans executed actions out to subscribed plugins. Each plugin has its
// own queue drained by one goroutine, so a plugin sees actions in the order
// they fired and the frame loop never waits for it.
type Hooks struct {
	manager  *Manager
	executor *Executor

	mu     sync.Mutex
	queues map[string]chan job
	wg     sync.WaitGroup
}

// NewHooks creates Hooks over discovered plugins.
func NewHooks(manager *Manager, executor *Executor) *Hooks {
	return &Hooks{
		manager:  manager,
		executor: executor,
		queues:   make(map[string]chan job),
	}
}

// Fire queues req for every plugin subscribed to req.Action and returns how
// many accepted it. A plugin whose queue is full misses the action. Failures
// are logged.
func (h *Hooks) Fire(ctx context.Context, req Request) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.queues == nil {
		return 0
	}

	queued := 0
	for _, p := range h.manager.Subscribers(req.Action) {
		h.wg.Add(1)
		select {
		case h.queue(p) <- job{ctx: ctx, req: req}:
			queued++
		default:
			h.wg.Done()
			log.With("plugin", p.Manifest.Name).
				With("action", req.Action).
				Warn("Action hook queue full, dropping action.")
		}
	}
	return queued
}

// queue returns the queue of p, starting its worker on first use. h.mu must be held.
func (h *Hooks) queue(p *Plugin) chan job {
	q, ok := h.queues[p.Manifest.Name]
	if !ok {
		q = make(chan job, queueSize)
		h.queues[p.Manifest.Name] = q
		go h.drain(p, q)
	}
	return q
}

func (h *Hooks) drain(p *Plugin, q <-chan job) {
	for j := range q {
		h.run(p, j)
		h.wg.Done()
	}
}

func (h *Hooks) run(p *Plugin, j job) {
	if _, err := h.executor.Execute(j.ctx, p, j.req); err != nil {
		log.With("plugin", p.Manifest.Name).
			With("action", j.req.Action).
			WithError(err).
			Warn("Action hook failed.")
		return
	}
	log.With("plugin", p.Manifest.Name).
		With("action", j.req.Action).
		Debug("Action hook done.")
}

// Wait blocks until every queued action has run.
func (h *Hooks) Wait() {
	h.wg.Wait()
}

// Close waits for queued actions and stops the plugin workers. Fire after
// Close queues nothing.
func (h *Hooks) Close() {
	h.mu.Lock()
	queues := h.queues
	h.queues = nil
	h.mu.Unlock()

	h.wg.Wait()
	for _, q := range queues {
		close(q)
	}
}
