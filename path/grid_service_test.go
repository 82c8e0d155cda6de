package path_test

import (
	"context"
	"errors"
	"testing"
	"time"

	zoomaker "github.com/DSchif/zoo-maker-sub000"
	"github.com/DSchif/zoo-maker-sub000/grid"
	"github.com/DSchif/zoo-maker-sub000/path"
)

// openGrid allows every cell inside a bounded box.
func openGrid(w, h int) path.WalkableFunc {
	return func(p grid.Point, _ path.Constraints) bool {
		return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
	}
}

// wallGrid is a 10x10 box with a vertical wall at x=5, broken only at
// y=9 unless the constraints allow gates.
func wallGrid() path.WalkableFunc {
	return func(p grid.Point, c path.Constraints) bool {
		if p.X < 0 || p.X >= 10 || p.Y < 0 || p.Y >= 10 {
			return false
		}
		if p.X == 5 {
			if p.Y == 9 {
				return true // permanent opening
			}
			return c.ThroughGates && p.Y == 0 // gate cell
		}
		return true
	}
}

func await(t *testing.T, req *path.Request) (path.Route, error) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !req.Done() {
		if time.Now().After(deadline) {
			t.Fatal("path request did not resolve in time")
		}
		time.Sleep(time.Millisecond)
	}
	return req.Result()
}

func startService(t *testing.T, walkable path.WalkableFunc, opts ...path.GridOption) *path.GridService {
	t.Helper()
	s := path.NewGridService(walkable, opts...)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	})
	return s
}

func TestFindStraightLine(t *testing.T) {
	svc := startService(t, openGrid(20, 20))

	route, err := await(t, svc.Find(grid.Pt(0, 0), grid.Pt(4, 0), path.Constraints{}))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	want := []grid.Point{grid.Pt(1, 0), grid.Pt(2, 0), grid.Pt(3, 0), grid.Pt(4, 0)}
	if len(route.Steps) != len(want) {
		t.Fatalf("route length = %d, want %d (steps %v)", len(route.Steps), len(want), route.Steps)
	}
	for i, p := range want {
		if route.Steps[i] != p {
			t.Errorf("step %d = %v, want %v", i, route.Steps[i], p)
		}
	}
}

func TestFindSamePoint(t *testing.T) {
	svc := startService(t, openGrid(5, 5))

	route, err := await(t, svc.Find(grid.Pt(2, 2), grid.Pt(2, 2), path.Constraints{}))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if route.Len() != 0 {
		t.Errorf("route to self has %d steps, want 0", route.Len())
	}
}

func TestFindShortestAroundWall(t *testing.T) {
	svc := startService(t, wallGrid())

	// Without gate access the only way across x=5 is the opening at y=9.
	route, err := await(t, svc.Find(grid.Pt(0, 0), grid.Pt(9, 0), path.Constraints{}))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	// Manhattan distance is 9; the detour through (5,9) costs 9 down,
	// across, and 9 back up.
	if got, want := route.Len(), 9+2*9; got != want {
		t.Errorf("route length = %d, want %d", got, want)
	}
	for i, p := range route.Steps {
		if p.X == 5 && p.Y != 9 {
			t.Errorf("step %d crosses the wall at %v", i, p)
		}
	}
}

func TestFindConstraintsOpenGates(t *testing.T) {
	svc := startService(t, wallGrid())

	route, err := await(t, svc.Find(grid.Pt(4, 0), grid.Pt(6, 0), path.Constraints{ThroughGates: true}))
	if err != nil {
		t.Fatalf("Find with gate access failed: %v", err)
	}
	if got, want := route.Len(), 2; got != want {
		t.Errorf("route through gate has %d steps, want %d", got, want)
	}
}

func TestFindUnreachable(t *testing.T) {
	// Destination outside the walkable box with no walkable neighbor.
	svc := startService(t, openGrid(5, 5))

	_, err := await(t, svc.Find(grid.Pt(0, 0), grid.Pt(50, 50), path.Constraints{}))
	if !errors.Is(err, zoomaker.ErrNoRoute) {
		t.Errorf("Find to unreachable cell returned %v, want ErrNoRoute", err)
	}
}

func TestFindUnwalkableDestinationWithWalkableNeighbor(t *testing.T) {
	// Cells like bins and fence posts are not standable but must still be
	// routable: the route ends on the target even though it fails the
	// walkability predicate.
	target := grid.Pt(3, 3)
	walkable := func(p grid.Point, _ path.Constraints) bool {
		if p == target {
			return false
		}
		return p.X >= 0 && p.X < 10 && p.Y >= 0 && p.Y < 10
	}
	svc := startService(t, walkable)

	route, err := await(t, svc.Find(grid.Pt(0, 3), target, path.Constraints{}))
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if route.Len() == 0 || route.Steps[route.Len()-1] != target {
		t.Errorf("route %v should end on %v", route.Steps, target)
	}
}

func TestFindSearchLimit(t *testing.T) {
	// An unreachable target on an unbounded grid must fail via the visit
	// limit instead of searching forever.
	walkable := func(p grid.Point, _ path.Constraints) bool {
		return p != grid.Pt(1000, 1000) && !adjacent(p, grid.Pt(1000, 1000))
	}
	svc := startService(t, walkable, path.WithSearchLimit(500))

	_, err := await(t, svc.Find(grid.Pt(0, 0), grid.Pt(1000, 1000), path.Constraints{}))
	if !errors.Is(err, zoomaker.ErrNoRoute) {
		t.Errorf("limited search returned %v, want ErrNoRoute", err)
	}
}

func adjacent(a, b grid.Point) bool {
	return a.Manhattan(b) == 1
}

func TestFindAfterStop(t *testing.T) {
	s := path.NewGridService(openGrid(5, 5))
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	req := s.Find(grid.Pt(0, 0), grid.Pt(1, 1), path.Constraints{})
	if !req.Done() {
		t.Fatal("request after Stop should resolve immediately")
	}
	if _, err := req.Result(); !errors.Is(err, zoomaker.ErrPathUnavailable) {
		t.Errorf("request after Stop returned %v, want ErrPathUnavailable", err)
	}
}

func TestResolvedHelper(t *testing.T) {
	req := path.Resolved(path.Route{Steps: []grid.Point{grid.Pt(1, 0)}}, nil)
	if !req.Done() {
		t.Fatal("Resolved request should report Done immediately")
	}
	route, err := req.Result()
	if err != nil || route.Len() != 1 {
		t.Errorf("Result = (%v, %v), want one-step route", route.Steps, err)
	}
}
