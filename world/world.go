package world

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

var ErrClosed = errors.New("world is closed")

type Options struct {
	Seed int64

	// RenderDistance is the radius in chunks that is kept loaded around the player
	RenderDistance int

	GenerateWorkers int
	MeshWorkers     int

	// MaxInFlight limits the number of chunks that are generated concurrently
	MaxInFlight int

	// BiomeCacheSize is the number of columns kept in the biome lookup cache
	BiomeCacheSize int

	// Models used for vegetation, defaults to the builtin models
	Models *Models
}

func (o Options) withDefaults() Options {
	if o.RenderDistance <= 0 {
		o.RenderDistance = 16
	}

	if o.GenerateWorkers <= 0 {
		o.GenerateWorkers = 4
	}

	if o.MeshWorkers <= 0 {
		o.MeshWorkers = 2
	}

	if o.MaxInFlight <= 0 {
		o.MaxInFlight = 16
	}

	if o.BiomeCacheSize <= 0 {
		o.BiomeCacheSize = 1 << 18
	}

	return o
}

type Stats struct {
	Loaded  int
	Loading int
}

type meshJob struct {
	chunk *Chunk
	seq   uint64

	// register the chunk with the world once the mesh is built
	register bool
}

// World streams chunks around the player. Chunks are generated and meshed
// on background workers and registered during Update.
type World struct {
	opts Options
	gen  *Generator

	offsets []ChunkPos

	mu      sync.RWMutex
	chunks  map[int64]*Chunk
	loading map[int64]struct{}

	finishedMu sync.Mutex
	finished   []*Chunk

	playerX atomic.Int64
	playerZ atomic.Int64

	meshSeq atomic.Uint64

	biomes *lru.Cache[int64, Biome]

	genJobs  chan ChunkPos
	meshJobs chan meshJob

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	closeOnce sync.Once
	closed    atomic.Bool
}

func New(opts Options) (*World, error) {
	w, err := newWorld(opts)
	if err != nil {
		return nil, err
	}

	w.start()

	slog.Info(
		"World created",
		slog.Int64("seed", w.opts.Seed),
		slog.Int("renderDistance", w.opts.RenderDistance),
		slog.Int("generateWorkers", w.opts.GenerateWorkers),
		slog.Int("meshWorkers", w.opts.MeshWorkers),
	)

	return w, nil
}

// newWorld creates the world without starting its workers.
func newWorld(opts Options) (*World, error) {
	opts = opts.withDefaults()

	biomes, err := lru.New[int64, Biome](opts.BiomeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create biome cache: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)

	w := &World{
		opts:     opts,
		gen:      NewGenerator(opts.Seed, opts.Models),
		offsets:  sortedOffsets(opts.RenderDistance),
		chunks:   map[int64]*Chunk{},
		loading:  map[int64]struct{}{},
		biomes:   biomes,
		genJobs:  make(chan ChunkPos, opts.MaxInFlight),
		meshJobs: make(chan meshJob, 1024),
		ctx:      ctx,
		cancel:   cancel,
		group:    group,
	}

	return w, nil
}

func (w *World) start() {
	for range w.opts.GenerateWorkers {
		w.group.Go(w.generateWorker)
	}

	for range w.opts.MeshWorkers {
		w.group.Go(w.meshWorker)
	}
}

// sortedOffsets returns all offsets within the square of the given radius,
// nearest first.
func sortedOffsets(radius int) []ChunkPos {
	var offsets []ChunkPos
	for x := -radius; x <= radius; x++ {
		for z := -radius; z <= radius; z++ {
			offsets = append(offsets, ChunkPos{X: x, Z: z})
		}
	}

	slices.SortStableFunc(offsets, func(a, b ChunkPos) int {
		return cmp.Compare(a.X*a.X+a.Z*a.Z, b.X*b.X+b.Z*b.Z)
	})

	return offsets
}

func (w *World) Seed() int64 {
	return w.gen.Seed()
}

func (w *World) Generator() *Generator {
	return w.gen
}

func (w *World) RenderDistance() int {
	return w.opts.RenderDistance
}

func (w *World) player() ChunkPos {
	return ChunkPos{X: int(w.playerX.Load()), Z: int(w.playerZ.Load())}
}

func (w *World) inRange(pos ChunkPos, player ChunkPos) bool {
	return pos.Chebyshev(player) <= w.opts.RenderDistance+2
}

// Update moves the streaming center to the given world position. It queues
// missing chunks, registers finished chunks and unloads far away chunks.
func (w *World) Update(x, z float64) error {
	if w.closed.Load() {
		return ErrClosed
	}

	player := ChunkPosOf(int(math.Floor(x)), int(math.Floor(z)))
	w.playerX.Store(int64(player.X))
	w.playerZ.Store(int64(player.Z))

	if err := w.enqueue(player); err != nil {
		return err
	}

	if err := w.registerFinished(); err != nil {
		return err
	}

	w.unload(player)

	return nil
}

func (w *World) enqueue(player ChunkPos) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, offset := range w.offsets {
		if len(w.loading) >= w.opts.MaxInFlight {
			break
		}

		pos := player.Add(offset.X, offset.Z)
		key := pos.Key()

		if _, ok := w.chunks[key]; ok {
			continue
		}

		if _, ok := w.loading[key]; ok {
			continue
		}

		// the channel holds at most one job per loading chunk, sending never blocks
		w.loading[key] = struct{}{}

		select {
		case w.genJobs <- pos:
		case <-w.ctx.Done():
			delete(w.loading, key)
			return ErrClosed
		}
	}

	return nil
}

func (w *World) registerFinished() error {
	w.finishedMu.Lock()
	finished := w.finished
	w.finished = nil
	w.finishedMu.Unlock()

	for _, chunk := range finished {
		key := chunk.Pos.Key()

		w.mu.Lock()
		w.chunks[key] = chunk
		delete(w.loading, key)
		w.mu.Unlock()

		// rebuild the borders of the neighbours facing the new chunk
		for _, offset := range [4]ChunkPos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			neighbor := w.Chunk(chunk.Pos.X+offset.X, chunk.Pos.Z+offset.Z)
			if neighbor == nil {
				continue
			}

			if err := w.submitMesh(meshJob{chunk: neighbor}); err != nil {
				return err
			}
		}
	}

	return nil
}

func (w *World) unload(player ChunkPos) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for key, chunk := range w.chunks {
		if w.inRange(chunk.Pos, player) {
			continue
		}

		chunk.unloaded.Store(true)
		delete(w.chunks, key)
	}
}

func (w *World) submitMesh(job meshJob) error {
	job.seq = w.meshSeq.Add(1)

	select {
	case w.meshJobs <- job:
		return nil
	case <-w.ctx.Done():
		return ErrClosed
	}
}

func (w *World) generateWorker() error {
	for {
		select {
		case <-w.ctx.Done():
			return nil

		case pos := <-w.genJobs:
			if !w.inRange(pos, w.player()) {
				w.mu.Lock()
				delete(w.loading, pos.Key())
				w.mu.Unlock()
				continue
			}

			chunk := w.gen.Generate(pos)

			if err := w.submitMesh(meshJob{chunk: chunk, register: true}); err != nil {
				return nil
			}
		}
	}
}

func (w *World) meshWorker() error {
	for {
		select {
		case <-w.ctx.Done():
			return nil

		case job := <-w.meshJobs:
			if job.chunk.Unloaded() {
				continue
			}

			mesh := BuildMesh(w.neighborhood(job.chunk))
			job.chunk.offerMesh(job.seq, mesh)

			if job.register {
				w.finishedMu.Lock()
				w.finished = append(w.finished, job.chunk)
				w.finishedMu.Unlock()
			}
		}
	}
}

func (w *World) neighborhood(chunk *Chunk) Neighborhood {
	var n Neighborhood

	w.mu.RLock()
	defer w.mu.RUnlock()

	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			n[dx+1][dz+1] = w.chunks[chunk.Pos.Add(dx, dz).Key()]
		}
	}

	// the chunk might not be registered yet
	n[1][1] = chunk

	return n
}

// Chunk returns the loaded chunk at the chunk position, or nil.
func (w *World) Chunk(cx, cz int) *Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.chunks[ChunkPos{X: cx, Z: cz}.Key()]
}

// Chunks returns a snapshot of all loaded chunks.
func (w *World) Chunks() []*Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()

	chunks := make([]*Chunk, 0, len(w.chunks))
	for _, chunk := range w.chunks {
		chunks = append(chunks, chunk)
	}

	return chunks
}

func (w *World) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Stats{
		Loaded:  len(w.chunks),
		Loading: len(w.loading),
	}
}

// BiomeAt returns the biome of the column at world position (x, z).
func (w *World) BiomeAt(x, z int) Biome {
	key := ChunkPos{X: x, Z: z}.Key()

	if biome, ok := w.biomes.Get(key); ok {
		return biome
	}

	biome := w.gen.BiomeAt(x, z)
	w.biomes.Add(key, biome)

	return biome
}

// Close stops all workers and waits for them to finish.
func (w *World) Close() error {
	var err error

	w.closeOnce.Do(func() {
		w.closed.Store(true)
		w.cancel()
		err = w.group.Wait()

		slog.Info("World closed")
	})

	return err
}
