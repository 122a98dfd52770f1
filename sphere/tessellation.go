package sphere

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/golang/geo/r3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/spheretess/internal/logging"
	"github.com/signalsfoundry/spheretess/spatial"
	"github.com/signalsfoundry/spheretess/stopctrl"
)

const tracerName = "github.com/signalsfoundry/spheretess/sphere"

// MaxBuildDepth is the deepest tessellation that can be fully materialized:
// node IDs are int32, and a depth-15 arena would overflow them.
const MaxBuildDepth = 14

// Observer receives notifications about index construction and lookups, for
// wiring into a metrics backend. All methods must be safe for concurrent use.
type Observer interface {
	BuildCompleted(depth, nodes int, elapsed time.Duration)
	LocateCompleted(elapsed time.Duration, hit bool)
	CoveringCompleted(kind string, leaves int, elapsed time.Duration)
}

// Config controls tessellation construction.
type Config struct {
	// Depth is the number of subdivision levels: 0 yields only the root,
	// 1 the eight octants, each further level quadrisects every triangle.
	Depth int
	// Stop aborts a build in progress; the build returns stopctrl.ErrStopped.
	// Nil means the build runs to completion.
	Stop *stopctrl.Token
	// Logger receives build progress; nil falls back to the logger carried
	// by the context, if any.
	Logger logging.Logger
	// Observer receives build and lookup measurements; nil disables them.
	Observer Observer
	// Sequential disables the per-octant build parallelism.
	Sequential bool
}

// Tessellation is a hierarchical triangulation of the surface of a sphere.
// Level one splits the sphere into eight octants along the equator and the
// 0/180 and 90/-90 meridians; each further level quadrisects every triangle
// through the midpoints of its edges. All levels are materialized up front
// in one arena, so point location is a short descent with no allocation.
//
// A Tessellation is immutable after construction and safe for concurrent use.
type Tessellation struct {
	maxDepth int
	nodes    []Subtriangle
	log      logging.Logger
	obs      Observer
}

// New builds a tessellation of the given depth with default settings.
func New(depth int) (*Tessellation, error) {
	return NewWithConfig(context.Background(), Config{Depth: depth})
}

// NewWithConfig builds a tessellation per cfg. The eight octant subtrees
// occupy disjoint arena ranges, so they are built in parallel unless
// cfg.Sequential is set. Construction is aborted between subtrees when
// cfg.Stop triggers, returning stopctrl.ErrStopped.
func NewWithConfig(ctx context.Context, cfg Config) (*Tessellation, error) {
	if cfg.Depth < 0 || cfg.Depth > MaxBuildDepth {
		return nil, fmt.Errorf("%w: depth %d not in [0, %d]", ErrDepthRange, cfg.Depth, MaxBuildDepth)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.LoggerFromContext(ctx)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "tessellation.build")
	defer span.End()
	span.SetAttributes(attribute.Int("depth", cfg.Depth))

	start := time.Now()
	ts := &Tessellation{
		maxDepth: cfg.Depth,
		nodes:    make([]Subtriangle, totalNodes(cfg.Depth)),
		log:      log,
		obs:      cfg.Observer,
	}

	root := &ts.nodes[0]
	root.Parent = -1

	var err error
	if cfg.Depth > 0 {
		err = ts.buildOctants(cfg)
	}
	if err != nil {
		span.RecordError(err)
		log.Warn(ctx, "tessellation build aborted",
			logging.Int("depth", cfg.Depth),
			logging.String("error", err.Error()))
		return nil, err
	}

	elapsed := time.Since(start)
	span.SetAttributes(attribute.Int("nodes", len(ts.nodes)))
	log.Info(ctx, "tessellation built",
		logging.Int("depth", cfg.Depth),
		logging.Int("nodes", len(ts.nodes)),
		logging.Any("elapsed", elapsed))
	if ts.obs != nil {
		ts.obs.BuildCompleted(cfg.Depth, len(ts.nodes), elapsed)
	}
	return ts, nil
}

// buildOctants splits the sphere into its eight octants and builds each
// octant's subtree, in parallel unless cfg.Sequential is set.
func (ts *Tessellation) buildOctants(cfg Config) error {
	root := &ts.nodes[0]
	root.firstChild = 1
	root.numChildren = 8

	octSub := subtreeSize(cfg.Depth - 1)
	for i := 0; i < 8; i++ {
		id := int32(1 + i)
		oct := &ts.nodes[id]
		oct.ID = id
		oct.Parent = 0
		oct.Address = Address{byte(i)}
		oct.Vertices = octantVertices(i)
		oct.calcPlanes()
	}

	if cfg.Sequential {
		for i := 0; i < 8; i++ {
			base := int32(9) + int32(i)*int32(octSub)
			if err := ts.buildSubtree(int32(1+i), base, cfg.Depth-1, cfg.Stop); err != nil {
				return err
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			base := int32(9) + int32(i)*int32(octSub)
			errs[i] = ts.buildSubtree(int32(1+i), base, cfg.Depth-1, cfg.Stop)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// buildSubtree quadrisects the node parentID recursively, placing its four
// children at arena indices base..base+3 and each child's own subtree in a
// fixed-size block after them. The layout is a pure function of the depth,
// so concurrent builders never touch each other's ranges.
func (ts *Tessellation) buildSubtree(parentID, base int32, levels int, stop *stopctrl.Token) error {
	if levels == 0 {
		return nil
	}
	if stop.Stopped() {
		return stopctrl.ErrStopped
	}

	parent := &ts.nodes[parentID]
	parent.firstChild = base
	parent.numChildren = 4

	childSub := int32(subtreeSize(levels - 1))
	quads := quadrisect(parent.Vertices)
	for j := int32(0); j < 4; j++ {
		id := base + j
		child := &ts.nodes[id]
		child.ID = id
		child.Parent = parentID
		child.Vertices = quads[j]

		addr := make(Address, len(parent.Address)+1)
		copy(addr, parent.Address)
		addr[len(addr)-1] = byte(j)
		child.Address = addr

		child.calcPlanes()
		if err := ts.buildSubtree(id, base+4+j*childSub, levels-1, stop); err != nil {
			return err
		}
	}
	return nil
}

// subtreeSize returns the number of strict descendants of a node with the
// given number of quadrisection levels below it: 4 + 16 + ... + 4^levels.
func subtreeSize(levels int) int64 {
	return (int64(1)<<(2*(levels+1)) - 4) / 3
}

// totalNodes returns the arena size for a tessellation of the given depth:
// the root, the eight octants, and each octant's subtree. A depth-0
// tessellation is just the root.
func totalNodes(depth int) int64 {
	if depth == 0 {
		return 1
	}
	return 9 + 8*subtreeSize(depth-1)
}

// MaxDepth returns the tessellation's subdivision depth.
func (ts *Tessellation) MaxDepth() int { return ts.maxDepth }

// NodeCount returns the total number of nodes, the root included.
func (ts *Tessellation) NodeCount() int { return len(ts.nodes) }

// Root returns the root node covering the whole sphere.
func (ts *Tessellation) Root() *Subtriangle { return &ts.nodes[0] }

// Node returns the node with the given arena ID, or nil when out of range.
func (ts *Tessellation) Node(id int32) *Subtriangle {
	if id < 0 || int(id) >= len(ts.nodes) {
		return nil
	}
	return &ts.nodes[id]
}

// locateTol is the boundary tolerance at a given level, proportional to the
// triangle edge length there so deep levels do not lose points to rounding
// on shared edges.
func locateTol(level int) float64 {
	return 1e-9 * (math.Pi / 2) * math.Pow(2, float64(1-level))
}

// Locate finds the subtriangle at the given depth containing the coordinate.
//
// Points on a shared edge or vertex belong to the lowest-index candidate:
// children are probed in index order and the first containing triangle wins,
// which puts lon 90 in octant 0, lon 0 in octant 1, the equator in the
// north, and lon 180 in octant 0.
//
// An empty coordinate locates nowhere: Locate returns (nil, nil). Depth 0
// resolves to the root; a depth outside [0, MaxDepth()] returns
// ErrDepthRange.
func (ts *Tessellation) Locate(p LatLon, depth int) (*Subtriangle, error) {
	if p.IsEmpty() {
		return nil, nil
	}
	return ts.LocateVector(p.UnitVector().Vector, depth)
}

// LocateVector is Locate for a direction vector. The vector need not be unit
// length; a non-finite vector locates nowhere.
func (ts *Tessellation) LocateVector(v r3.Vector, depth int) (*Subtriangle, error) {
	if !isFinite(v.X) || !isFinite(v.Y) || !isFinite(v.Z) {
		return nil, nil
	}
	if depth < 0 || depth > ts.maxDepth {
		return nil, fmt.Errorf("%w: depth %d not in [0, %d]", ErrDepthRange, depth, ts.maxDepth)
	}

	start := time.Now()
	cur := &ts.nodes[0]
	for level := 1; level <= depth; level++ {
		tol := locateTol(level)
		next := ts.containingChild(cur, v, tol)
		if next == nil {
			if ts.obs != nil {
				ts.obs.LocateCompleted(time.Since(start), false)
			}
			return nil, fmt.Errorf("%w: no child of %s contains %s",
				ErrMalformedTessellation, cur.Address, spatial.FormatVector(v))
		}
		cur = next
	}
	if ts.obs != nil {
		ts.obs.LocateCompleted(time.Since(start), true)
	}
	return cur, nil
}

func (ts *Tessellation) containingChild(t *Subtriangle, v r3.Vector, tol float64) *Subtriangle {
	for i := int32(0); i < t.numChildren; i++ {
		c := &ts.nodes[t.firstChild+i]
		if c.ContainsVector(v, tol) {
			return c
		}
	}
	return nil
}

// NodeByAddress resolves a hierarchical address to its node. The empty
// address resolves to the root. An address longer than the tessellation's
// depth, or with an out-of-range selector, yields ErrBadAddress.
func (ts *Tessellation) NodeByAddress(addr Address) (*Subtriangle, error) {
	if len(addr) > ts.maxDepth {
		return nil, fmt.Errorf("%w: address %s deeper than %d", ErrBadAddress, addr, ts.maxDepth)
	}
	cur := &ts.nodes[0]
	for i, sel := range addr {
		if int32(sel) >= cur.numChildren {
			return nil, fmt.Errorf("%w: selector %d at element %d of %s", ErrBadAddress, sel, i, addr)
		}
		cur = &ts.nodes[cur.firstChild+int32(sel)]
	}
	return cur, nil
}

// CoveringCap collects the depth-level subtriangles that may intersect the
// cap: a conservative superset found by comparing, at every level, the
// distance from the cap's center to a triangle's centroid against the sum of
// the cap's radius and the triangle's circumradius. An unset cap covers
// nothing. The walk aborts with stopctrl.ErrStopped when stop triggers.
func (ts *Tessellation) CoveringCap(c Cap, depth int, stop *stopctrl.Token) ([]*Subtriangle, error) {
	if depth < 1 || depth > ts.maxDepth {
		return nil, fmt.Errorf("%w: depth %d not in [1, %d]", ErrDepthRange, depth, ts.maxDepth)
	}
	if !c.IsSet() {
		return nil, nil
	}

	start := time.Now()
	center := c.Center.UnitVector()
	keep := func(t *Subtriangle) bool {
		centroid := t.Centroid()
		reach := c.DomeRadius.Radians() + circumradius(t)
		return angleBetween(center.Vector, centroid.Vector) <= reach
	}
	leaves, err := ts.cover(keep, depth, stop)
	if err != nil {
		return nil, err
	}
	if ts.obs != nil {
		ts.obs.CoveringCompleted("cap", len(leaves), time.Since(start))
	}
	return leaves, nil
}

// CoveringPolygon collects the depth-level subtriangles that may intersect
// the polygon: the walk prunes against the polygon's bounding cap, and at the
// target depth keeps triangles whose lat/lon bound overlaps the polygon.
// The result is approximate in the same way Overlaps is. A degenerate
// polygon covers nothing.
func (ts *Tessellation) CoveringPolygon(sp *SphericalPolygon, depth int, stop *stopctrl.Token) ([]*Subtriangle, error) {
	if depth < 1 || depth > ts.maxDepth {
		return nil, fmt.Errorf("%w: depth %d not in [1, %d]", ErrDepthRange, depth, ts.maxDepth)
	}
	if sp == nil || sp.NumVertices() == 0 {
		return nil, nil
	}

	start := time.Now()
	bound := sp.Cap()
	center := bound.Center.UnitVector()
	keep := func(t *Subtriangle) bool {
		centroid := t.Centroid()
		reach := bound.DomeRadius.Radians() + circumradius(t)
		if angleBetween(center.Vector, centroid.Vector) > reach {
			return false
		}
		if t.Depth() < depth {
			return true
		}
		// Overlaps misses a rectangle strictly containing the polygon, which
		// happens whenever a coarse cell swallows a small polygon whole.
		b := t.bound()
		return sp.Overlaps(b) || b.ContainsLatLon(sp.Centroid())
	}
	leaves, err := ts.cover(keep, depth, stop)
	if err != nil {
		return nil, err
	}
	if ts.obs != nil {
		ts.obs.CoveringCompleted("polygon", len(leaves), time.Since(start))
	}
	return leaves, nil
}

// cover walks the hierarchy down to depth, descending only into nodes the
// keep predicate accepts, and returns the accepted depth-level nodes.
func (ts *Tessellation) cover(keep func(*Subtriangle) bool, depth int, stop *stopctrl.Token) ([]*Subtriangle, error) {
	var out []*Subtriangle
	var walk func(t *Subtriangle) error
	walk = func(t *Subtriangle) error {
		if stop.Stopped() {
			return stopctrl.ErrStopped
		}
		for i := int32(0); i < t.numChildren; i++ {
			c := &ts.nodes[t.firstChild+i]
			if !keep(c) {
				continue
			}
			if c.Depth() == depth {
				out = append(out, c)
				continue
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(&ts.nodes[0]); err != nil {
		return nil, err
	}
	return out, nil
}

// circumradius returns the angular radius of the triangle: the largest angle
// between its centroid and a vertex.
func circumradius(t *Subtriangle) float64 {
	centroid := t.Centroid()
	r := 0.0
	for _, v := range t.Vertices {
		if a := angleBetween(centroid.Vector, v.Vector); a > r {
			r = a
		}
	}
	return r
}

func angleBetween(a, b r3.Vector) float64 {
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

// bound returns the triangle's lat/lon bounding rectangle. A triangle with a
// pole vertex spans all longitudes on that side; a triangle straddling the
// date line is expressed as a wrapped rectangle.
func (t *Subtriangle) bound() SurfaceRect {
	lls := t.LatLons()
	top, bottom := -90.0, 90.0
	atPole := false
	var lons []float64
	for _, ll := range lls {
		if ll.Lat > top {
			top = ll.Lat
		}
		if ll.Lat < bottom {
			bottom = ll.Lat
		}
		if math.Abs(ll.Lat) >= 90-1e-12 {
			atPole = true
			continue
		}
		lons = append(lons, ll.Lon)
	}
	if atPole || len(lons) == 0 {
		return NewSurfaceRect(-180, 180, top, bottom)
	}

	minLon, maxLon := lons[0], lons[0]
	for _, lon := range lons[1:] {
		minLon = math.Min(minLon, lon)
		maxLon = math.Max(maxLon, lon)
	}
	if maxLon-minLon <= 180 {
		return NewSurfaceRect(minLon, maxLon, top, bottom)
	}

	// Date-line straddle: the western edge is the smallest positive
	// longitude, the eastern edge the largest negative one.
	west, east := 180.0, -180.0
	for _, lon := range lons {
		if lon > 0 && lon < west {
			west = lon
		}
		if lon <= 0 && lon > east {
			east = lon
		}
	}
	return NewSurfaceRect(west, east, top, bottom)
}
