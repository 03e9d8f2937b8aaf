package pathfind

import "container/heap"

// findPath runs A* between two tiles over 4-connected neighbors.
// Returns nil when no path exists or either endpoint is blocked.
// The returned path excludes the start tile and includes the goal.
func findPath(g *Grid, from, to Tile) []Tile {
	if !g.Walkable(from) || !g.Walkable(to) {
		return nil
	}
	if from == to {
		return []Tile{to}
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &node{tile: from, g: 0, f: manhattan(from, to)})

	cameFrom := make(map[Tile]Tile)
	costSoFar := map[Tile]int{from: 0}

	neighbors := [4]Tile{}
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.tile == to {
			return reconstruct(cameFrom, from, to)
		}

		t := cur.tile
		neighbors[0] = Tile{t.X + 1, t.Y}
		neighbors[1] = Tile{t.X - 1, t.Y}
		neighbors[2] = Tile{t.X, t.Y + 1}
		neighbors[3] = Tile{t.X, t.Y - 1}

		for _, n := range neighbors {
			if !g.Walkable(n) {
				continue
			}
			cost := costSoFar[t] + 1
			if prev, seen := costSoFar[n]; seen && cost >= prev {
				continue
			}
			costSoFar[n] = cost
			cameFrom[n] = t
			heap.Push(open, &node{tile: n, g: cost, f: cost + manhattan(n, to)})
		}
	}
	return nil
}

func reconstruct(cameFrom map[Tile]Tile, from, to Tile) []Tile {
	var rev []Tile
	for t := to; t != from; t = cameFrom[t] {
		rev = append(rev, t)
	}
	path := make([]Tile, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path
}

func manhattan(a, b Tile) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

type node struct {
	tile Tile
	g    int
	f    int
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
