// Package engine runs graph descriptions as a beep.Streamer.
//
// Each Render replaces the running graph. Nodes are matched to running
// instances by their structural hash, so an oscillator or envelope whose
// description did not change keeps its phase and level across renders.
// Meter nodes report per-block levels on the Events channel.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/whyrusleeping/polysynth/internal/graph"
)

var ErrInitialize = errors.New("audio engine initialization failed")

type EventKind int

const (
	EventLoad EventKind = iota + 1
	EventMeter
)

type Event struct {
	Kind EventKind

	// set on meter events
	Source string
	Min    float64
	Max    float64
}

// Output is where the engine's stream ends up, normally the speaker.
type Output interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
}

type Options struct {
	SampleRate  beep.SampleRate
	BlockSize   int
	Latency     time.Duration
	EventBuffer int
	// ScopeSize is the number of output frames kept for Scope; zero
	// disables it.
	ScopeSize int
	Logger    *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.SampleRate == 0 {
		o.SampleRate = 44100
	}
	if o.BlockSize <= 0 {
		o.BlockSize = 256
	}
	if o.Latency <= 0 {
		o.Latency = 50 * time.Millisecond
	}
	if o.EventBuffer <= 0 {
		o.EventBuffer = 256
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type Engine struct {
	lk sync.Mutex

	sr        beep.SampleRate
	blockSize int
	latency   time.Duration

	roots     []*instance
	instances map[uint64]*instance
	block     uint64

	events  chan Event
	dropped atomic.Int64

	scope *Scope
	log   *slog.Logger
}

func New(opts Options) *Engine {
	opts = opts.withDefaults()

	e := &Engine{
		sr:        opts.SampleRate,
		blockSize: opts.BlockSize,
		latency:   opts.Latency,
		instances: make(map[uint64]*instance),
		events:    make(chan Event, opts.EventBuffer),
		log:       opts.Logger,
	}
	if opts.ScopeSize > 0 {
		e.scope = NewScope(opts.ScopeSize)
	}
	return e
}

func (e *Engine) SampleRate() beep.SampleRate {
	return e.sr
}

// Initialize opens out and starts playing into it. A load event follows a
// successful start.
func (e *Engine) Initialize(ctx context.Context, out Output) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialize, err)
	}

	if err := out.Init(e.sr, e.sr.N(e.latency)); err != nil {
		return fmt.Errorf("%w: %w", ErrInitialize, err)
	}
	out.Play(e)

	e.log.Info("audio engine running", "sample_rate", int(e.sr), "latency", e.latency)
	e.emit(Event{Kind: EventLoad})
	return nil
}

func (e *Engine) Events() <-chan Event {
	return e.events
}

// Dropped counts events discarded because nobody was draining Events.
func (e *Engine) Dropped() int64 {
	return e.dropped.Load()
}

// Scope returns the output recorder, or nil when disabled.
func (e *Engine) Scope() *Scope {
	return e.scope
}

func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
		e.dropped.Add(1)
	}
}

// Render replaces the running graph. roots[0] feeds the left channel and
// roots[1], when present, the right; further roots are ignored.
func (e *Engine) Render(roots ...*graph.Node) {
	e.lk.Lock()
	defer e.lk.Unlock()

	next := make(map[uint64]*instance, len(e.instances))
	rs := make([]*instance, len(roots))
	for i, r := range roots {
		rs[i] = e.reconcile(r, next)
	}

	e.instances = next
	e.roots = rs
}

// Instances is the number of live units in the running graph.
func (e *Engine) Instances() int {
	e.lk.Lock()
	defer e.lk.Unlock()
	return len(e.instances)
}

func (e *Engine) reconcile(n *graph.Node, next map[uint64]*instance) *instance {
	h := n.Hash()
	if inst, ok := next[h]; ok {
		return inst
	}

	inst, ok := e.instances[h]
	if !ok {
		inst = e.newInstance(n)
	}
	inst.node = n

	children := make([]*instance, len(n.Children))
	for i, c := range n.Children {
		children[i] = e.reconcile(c, next)
	}
	inst.children = children
	inst.inputs = make([][]float64, len(children))

	next[h] = inst
	return inst
}

func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	e.lk.Lock()
	for off := 0; off < len(samples); off += e.blockSize {
		end := min(off+e.blockSize, len(samples))
		e.processBlock(samples[off:end])
	}
	e.lk.Unlock()

	if e.scope != nil {
		e.scope.write(samples)
	}
	return len(samples), true
}

func (e *Engine) Err() error {
	return nil
}

func (e *Engine) processBlock(out [][2]float64) {
	if len(e.roots) == 0 {
		for i := range out {
			out[i] = [2]float64{}
		}
		return
	}

	e.block++
	n := len(out)

	left := e.pull(e.roots[0], n)
	right := left
	if len(e.roots) > 1 {
		right = e.pull(e.roots[1], n)
	}

	for i := range out {
		out[i][0] = left[i]
		out[i][1] = right[i]
	}
}

// pull computes inst for the current block, once, however many parents
// share it.
func (e *Engine) pull(inst *instance, n int) []float64 {
	if inst.block == e.block {
		return inst.buf[:n]
	}
	inst.block = e.block

	for i, c := range inst.children {
		inst.inputs[i] = e.pull(c, n)
	}

	out := inst.buf[:n]
	inst.proc.process(inst, out)
	return out
}
