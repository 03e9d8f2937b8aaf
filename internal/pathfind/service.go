package pathfind

// Callback delivers a path result. The path is nil when no path exists.
// Callbacks run during the Calculate pump, between simulation ticks; the
// requester must check entity liveness before applying the result.
type Callback func(requester uint64, path []Tile)

type request struct {
	requester uint64
	from, to  Tile
	fn        Callback
}

// Service queues path requests and resolves a fixed budget of them per
// Calculate call. At most one request may be in flight per requester;
// duplicates are rejected until the first resolves.
type Service struct {
	grid     *Grid
	budget   int
	queue    []request
	inFlight map[uint64]struct{}
}

// DefaultBudget is the number of requests resolved per Calculate pump.
const DefaultBudget = 8

// NewService creates a path service over the given grid.
func NewService(grid *Grid, budget int) *Service {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Service{
		grid:     grid,
		budget:   budget,
		inFlight: make(map[uint64]struct{}),
	}
}

// Grid returns the underlying walkability grid.
func (s *Service) Grid() *Grid { return s.grid }

// Request queues a path search. Returns false if the requester already
// has a request in flight.
func (s *Service) Request(requester uint64, from, to Tile, fn Callback) bool {
	if _, busy := s.inFlight[requester]; busy {
		return false
	}
	s.inFlight[requester] = struct{}{}
	s.queue = append(s.queue, request{requester: requester, from: from, to: to, fn: fn})
	return true
}

// InFlight reports whether the requester has an unresolved request.
func (s *Service) InFlight(requester uint64) bool {
	_, busy := s.inFlight[requester]
	return busy
}

// Pending returns the number of queued, unresolved requests.
func (s *Service) Pending() int { return len(s.queue) }

// Calculate drains up to the configured budget of queued requests,
// running the grid search and invoking callbacks. Call once per tick.
func (s *Service) Calculate() {
	n := s.budget
	if n > len(s.queue) {
		n = len(s.queue)
	}
	batch := s.queue[:n]
	s.queue = s.queue[n:]

	for _, req := range batch {
		path := findPath(s.grid, req.from, req.to)
		delete(s.inFlight, req.requester)
		if req.fn != nil {
			req.fn(req.requester, path)
		}
	}
}
