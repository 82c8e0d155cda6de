package path

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	zoomaker "github.com/DSchif/zoo-maker-sub000"
	"github.com/DSchif/zoo-maker-sub000/grid"
)

// WalkableFunc reports whether an agent may stand on a cell under the
// given constraints. Implementations must be safe for concurrent calls;
// the world guards its terrain state with its own lock.
type WalkableFunc func(p grid.Point, c Constraints) bool

// GridService is the default Service: a fixed set of worker goroutines
// running breadth-first search over a walkability predicate with
// 4-neighbor movement. BFS on a uniform-cost grid yields shortest routes,
// and the per-search visit limit bounds the cost of hopeless searches on
// large maps.
type GridService struct {
	walkable    WalkableFunc
	workers     int
	searchLimit int
	logger      *slog.Logger

	requests chan searchJob
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

var _ Service = (*GridService)(nil)

type searchJob struct {
	from, to grid.Point
	c        Constraints
	req      *Request
}

// GridOption configures a GridService.
type GridOption func(*GridService)

// WithWorkers sets the number of search goroutines.
func WithWorkers(n int) GridOption {
	return func(s *GridService) { s.workers = n }
}

// WithSearchLimit caps the number of cells one search may visit before
// giving up with ErrNoRoute.
func WithSearchLimit(n int) GridOption {
	return func(s *GridService) { s.searchLimit = n }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) GridOption {
	return func(s *GridService) { s.logger = l }
}

// NewGridService creates a GridService over the given walkability
// predicate. Call Start before submitting requests.
func NewGridService(walkable WalkableFunc, opts ...GridOption) *GridService {
	s := &GridService{
		walkable:    walkable,
		workers:     2,
		searchLimit: 16384,
		logger:      slog.Default(),
		requests:    make(chan searchJob, 64),
		stopCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the search goroutines. It returns immediately.
func (s *GridService) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	s.running = true

	s.logger.Info("path service starting",
		slog.Int("workers", s.workers),
		slog.Int("search_limit", s.searchLimit),
	)

	for range s.workers {
		s.wg.Add(1)
		go s.searchLoop()
	}
	return nil
}

// Stop signals the workers to stop and waits for them to finish. Pending
// requests are resolved with ErrPathUnavailable so no agent polls a
// handle that will never complete.
func (s *GridService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopCh)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("path service stopped")
	case <-ctx.Done():
		s.logger.Warn("path service shutdown timed out")
		return ctx.Err()
	}

	// Drain whatever the workers never picked up.
	for {
		select {
		case job := <-s.requests:
			job.req.Resolve(Route{}, zoomaker.ErrPathUnavailable)
		default:
			return nil
		}
	}
}

// Find implements Service. If the service is stopped or its request
// buffer is full, the handle resolves immediately with
// ErrPathUnavailable; the agent treats that like any other path failure
// and returns to idle.
func (s *GridService) Find(from, to grid.Point, c Constraints) *Request {
	req := NewPending()
	job := searchJob{from: from, to: to, c: c, req: req}

	select {
	case <-s.stopCh:
		req.Resolve(Route{}, zoomaker.ErrPathUnavailable)
	case s.requests <- job:
	default:
		req.Resolve(Route{}, zoomaker.ErrPathUnavailable)
	}
	return req
}

func (s *GridService) searchLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			return
		case job := <-s.requests:
			route, err := s.search(job.from, job.to, job.c)
			job.req.Resolve(route, err)
		}
	}
}

// search runs BFS from one cell toward another. The destination itself
// does not need to be walkable: tasks target cells like bins and fence
// posts that the agent works on from adjacent standing room, so the
// search accepts the destination the moment a walkable neighbor reaches
// it.
func (s *GridService) search(from, to grid.Point, c Constraints) (Route, error) {
	if from == to {
		return Route{}, nil
	}

	parent := map[grid.Point]grid.Point{from: from}
	frontier := []grid.Point{from}
	visited := 1

	for len(frontier) > 0 {
		next := frontier[:0:0]
		for _, cur := range frontier {
			for _, n := range cur.Neighbors() {
				if _, seen := parent[n]; seen {
					continue
				}
				parent[n] = cur
				if n == to {
					return s.reconstruct(parent, from, to), nil
				}
				if !s.walkable(n, c) {
					continue
				}
				visited++
				if visited > s.searchLimit {
					return Route{}, fmt.Errorf("path %v -> %v: search limit %d exceeded: %w",
						from, to, s.searchLimit, zoomaker.ErrNoRoute)
				}
				next = append(next, n)
			}
		}
		frontier = next
	}

	return Route{}, fmt.Errorf("path %v -> %v: %w", from, to, zoomaker.ErrNoRoute)
}

func (s *GridService) reconstruct(parent map[grid.Point]grid.Point, from, to grid.Point) Route {
	var rev []grid.Point
	for cur := to; cur != from; cur = parent[cur] {
		rev = append(rev, cur)
	}
	steps := make([]grid.Point, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		steps = append(steps, rev[i])
	}
	return Route{Steps: steps}
}
