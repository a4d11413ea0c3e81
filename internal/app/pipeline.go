package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guorg/liveview/internal/aggregate"
	"github.com/guorg/liveview/internal/change"
	"github.com/guorg/liveview/internal/collection"
	"github.com/guorg/liveview/internal/identity"
	"github.com/guorg/liveview/internal/notify"
	"github.com/guorg/liveview/internal/propertypath"
	"github.com/guorg/liveview/internal/scheduler"
	"github.com/guorg/liveview/internal/state"
	"github.com/guorg/liveview/internal/views"
)

// Reading is one value flowing through the pipeline. Readings travel by
// pointer, so the same reading queued twice maps to a single row.
type Reading struct {
	Seq   uint64
	Value int
}

func (r *Reading) String() string {
	return fmt.Sprintf("#%d:%d", r.Seq, r.Value)
}

// Row is the mapped form of a reading.
type Row struct {
	Reading *Reading
	Index   int
}

func (r *Row) String() string {
	return fmt.Sprintf("#%-4d %3d", r.Reading.Seq, r.Reading.Value)
}

// PipelineOptions configure NewPipeline.
type PipelineOptions struct {
	Capacity  int
	Buffer    time.Duration
	Modulus   int
	Scheduler scheduler.Scheduler // nil uses the wall clock
	Logger    *slog.Logger
	Seed      uint64
}

// Pipeline owns the source queue and every view derived from it:
//
//	queue -> source (Serial) -> throttled -> filtered -> rows (Mapping)
//	                                     \-> values (Mapping) -> min/max
//
// Handlers copy view content into the store for the UI.
type Pipeline struct {
	log   *slog.Logger
	store *state.Store

	queue     *collection.FixedSizeQueue[*Reading]
	source    *views.Serial[*Reading]
	throttled *views.Throttled[*Reading]
	filtered  *views.Filtered[*Reading]
	rows      *views.Mapping[*Reading, *Row]
	values    *views.Mapping[*Reading, int]
	extremes  *aggregate.MinMax[int]

	settings *Settings
	presets  [2]*FilterParams
	modulus  *propertypath.Tracker[*Settings, int]
	subs     []*notify.Subscription

	seq atomic.Uint64

	mu       sync.Mutex // guards rand, active and lines
	rand     *rand.Rand
	active   int
	lines    map[string]*Reading
	closeErr error
	closed   bool
}

// NewPipeline builds the view graph and mirrors it into store.
func NewPipeline(store *state.Store, opts PipelineOptions) (*Pipeline, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	queue, err := collection.NewFixedSizeQueue[*Reading](opts.Capacity)
	if err != nil {
		return nil, fmt.Errorf("source queue: %w", err)
	}

	p := &Pipeline{
		log:      log,
		store:    store,
		queue:    queue,
		settings: &Settings{},
		rand:     rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		lines:    make(map[string]*Reading),
	}
	p.presets = [2]*FilterParams{
		NewFilterParams("A", opts.Modulus),
		NewFilterParams("B", opts.Modulus+1),
	}
	p.settings.SetFilter(p.presets[0])

	if err := p.build(opts); err != nil {
		_ = p.Close()
		return nil, err
	}
	p.mirror()
	return p, nil
}

func (p *Pipeline) build(opts PipelineOptions) error {
	common := []views.Option{views.WithLogger(p.log)}
	if opts.Scheduler != nil {
		common = append(common, views.WithScheduler(opts.Scheduler))
	}
	with := func(extra ...views.Option) []views.Option {
		return append(append([]views.Option{}, common...), extra...)
	}

	var err error
	p.modulus, err = propertypath.Track(p.settings, modulusPath())
	if err != nil {
		return fmt.Errorf("track modulus: %w", err)
	}

	p.source = views.NewSerial[*Reading](p.queue, with(views.OwnsSource())...)
	p.throttled, err = views.NewThrottled[*Reading](p.source, opts.Buffer, with(views.OwnsSource())...)
	if err != nil {
		return fmt.Errorf("throttled view: %w", err)
	}
	p.filtered, err = views.NewFiltered[*Reading](p.throttled, p.keep,
		with(views.OwnsSource(), views.WithTriggers(views.OnPath(p.modulus)))...)
	if err != nil {
		return fmt.Errorf("filtered view: %w", err)
	}
	p.rows, err = views.NewMapping[*Reading](p.filtered, identity.Options[*Reading, *Row]{
		Project: func(r *Reading, index int) *Row { return &Row{Reading: r, Index: index} },
		Update: func(row *Row, index int) *Row {
			row.Index = index
			return row
		},
		Dispose: func(*Row) { p.store.AddDisposed(1) },
	}, with()...)
	if err != nil {
		return fmt.Errorf("row view: %w", err)
	}
	p.values, err = views.Map[*Reading](p.throttled, func(r *Reading) int { return r.Value }, with()...)
	if err != nil {
		return fmt.Errorf("value view: %w", err)
	}
	p.extremes, err = aggregate.TrackMinMax[int](p.values)
	if err != nil {
		p.log.Warn("initial min/max scan failed", "error", err)
	}

	p.subs = append(p.subs,
		p.throttled.OnCollectionChanged(func(c change.Change[*Reading]) {
			p.store.SetSource(valuesOf(p.throttled.Snapshot()))
			p.store.AddEvent("source", c.String())
		}),
		p.filtered.OnCollectionChanged(func(c change.Change[*Reading]) {
			p.store.SetFiltered(valuesOf(p.filtered.Snapshot()))
			p.store.AddEvent("filtered", c.String())
		}),
		p.rows.OnCollectionChanged(func(c change.Change[*Row]) {
			rows := p.rows.Snapshot()
			p.store.SetRows(labels(rows), distinct(rows))
			p.store.AddEvent("rows", c.String())
		}),
		p.extremes.OnChanged(func(e aggregate.Extremes[int]) {
			if e.Err != nil {
				p.log.Warn("min/max rescan gave up", "error", e.Err)
			}
			p.store.SetRange(state.Extremes{Min: e.Min, Max: e.Max, HasValue: e.HasValue})
		}),
		p.modulus.OnChanged(func(int, bool) {
			p.store.SetFilter(p.describe())
		}),
	)
	return nil
}

// mirror copies the current content of every view into the store.
func (p *Pipeline) mirror() {
	p.store.SetSource(valuesOf(p.throttled.Snapshot()))
	p.store.SetFiltered(valuesOf(p.filtered.Snapshot()))
	rows := p.rows.Snapshot()
	p.store.SetRows(labels(rows), distinct(rows))
	if e, err := p.extremes.Value(); err == nil {
		p.store.SetRange(state.Extremes{Min: e.Min, Max: e.Max, HasValue: e.HasValue})
	}
	p.store.SetFilter(p.describe())
}

func (p *Pipeline) keep(r *Reading) bool {
	m, ok, err := p.modulus.Value()
	if err != nil || !ok || m <= 1 {
		return true
	}
	return r.Value%m == 0
}

func (p *Pipeline) describe() string {
	if f := p.settings.Filter(); f != nil {
		return f.String()
	}
	return "no filter"
}

// Push enqueues a new reading with value v.
func (p *Pipeline) Push(v int) *Reading {
	r := &Reading{Seq: p.seq.Add(1), Value: v}
	p.Repeat(r)
	return r
}

// Repeat enqueues r again. Its row is shared with the earlier occurrence.
func (p *Pipeline) Repeat(r *Reading) {
	for _, dropped := range p.queue.Enqueue(r) {
		p.log.Debug("reading dropped", "reading", dropped.String())
	}
}

// Generate pushes a random reading, or now and then repeats a queued one.
func (p *Pipeline) Generate() {
	p.mu.Lock()
	repeat := p.rand.IntN(8) == 0
	value := p.rand.IntN(100)
	pick := p.rand.Int()
	p.mu.Unlock()

	if repeat {
		if queued := p.queue.Snapshot(); len(queued) > 0 {
			p.Repeat(queued[pick%len(queued)])
			return
		}
	}
	p.Push(value)
}

// Follow replaces the source content with readings parsed from lines. Equal
// lines share a reading, and a line seen on the previous call keeps its
// reading. Numeric lines use their value, others their length.
func (p *Pipeline) Follow(lines []string) error {
	p.mu.Lock()
	next := make(map[string]*Reading, len(lines))
	readings := make([]*Reading, len(lines))
	for i, line := range lines {
		r, ok := next[line]
		if !ok {
			if r, ok = p.lines[line]; !ok {
				r = &Reading{Seq: p.seq.Add(1), Value: parseValue(line)}
			}
			next[line] = r
		}
		readings[i] = r
	}
	p.lines = next
	p.mu.Unlock()

	return p.source.SetItems(readings)
}

// CycleModulus advances the active modulus through 1..5.
func (p *Pipeline) CycleModulus() int {
	f := p.settings.Filter()
	next := f.Modulus() + 1
	if next > 5 {
		next = 1
	}
	f.SetModulus(next)
	return next
}

// SwapPreset switches the filter to the other parameter set.
func (p *Pipeline) SwapPreset() string {
	p.mu.Lock()
	p.active ^= 1
	f := p.presets[p.active]
	p.mu.Unlock()

	p.settings.SetFilter(f)
	return f.Name()
}

// Clear empties the source queue.
func (p *Pipeline) Clear() {
	p.queue.Clear()
}

// Close tears the graph down, downstream first. It is safe to call twice.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return p.closeErr
	}
	p.closed = true

	for _, sub := range p.subs {
		sub.Close()
	}
	var errs []error
	if p.extremes != nil {
		errs = append(errs, p.extremes.Close())
	}
	if p.values != nil {
		errs = append(errs, p.values.Close())
	}
	if p.rows != nil {
		errs = append(errs, p.rows.Close())
	}
	switch {
	case p.filtered != nil:
		errs = append(errs, p.filtered.Close())
	case p.throttled != nil:
		errs = append(errs, p.throttled.Close())
	case p.source != nil:
		errs = append(errs, p.source.Close())
	}
	// The queue is detached from source while following a file.
	errs = append(errs, p.queue.Close())
	if p.modulus != nil {
		errs = append(errs, p.modulus.Close())
	}
	p.closeErr = errors.Join(errs...)
	return p.closeErr
}

func parseValue(line string) int {
	fields := strings.Fields(line)
	if len(fields) > 0 {
		if v, err := strconv.Atoi(fields[0]); err == nil {
			return v
		}
	}
	return len(line)
}

func valuesOf(readings []*Reading) []int {
	out := make([]int, len(readings))
	for i, r := range readings {
		out[i] = r.Value
	}
	return out
}

func labels(rows []*Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return out
}

func distinct(rows []*Row) int {
	seen := make(map[*Row]struct{}, len(rows))
	for _, r := range rows {
		seen[r] = struct{}{}
	}
	return len(seen)
}
