package pipes

// routeWalker runs a breadth-first search over linked pipes.
type routeWalker struct {
	grid    *Grid
	queue   []Coord
	visited map[Coord]bool
	parent  map[Coord]Coord
}

// Route returns the shortest chain of linked pipes from the start cell to
// the end cell, both included. The second result is false when the end
// cannot be reached.
//
// A step from a cell toward d is taken only when the cell's link bit for d
// is set, so the route always follows connections produced by the last
// RebuildConnections.
func (g *Grid) Route() ([]Coord, bool) {
	w := &routeWalker{
		grid:    g,
		queue:   make([]Coord, 0, len(g.cells)),
		visited: make(map[Coord]bool, len(g.cells)),
		parent:  make(map[Coord]Coord, len(g.cells)),
	}

	w.enqueue(g.start, g.start)
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]

		if cur == g.end {
			return w.pathTo(cur), true
		}
		w.enqueueNeighbors(cur)
	}
	return nil, false
}

// Connected reports whether the end pipe is reachable from the start pipe.
func (g *Grid) Connected() bool {
	_, ok := g.Route()
	return ok
}

// Reachable returns every cell linked to the start pipe, including start.
func (g *Grid) Reachable() map[Coord]bool {
	w := &routeWalker{
		grid:    g,
		visited: make(map[Coord]bool, len(g.cells)),
		parent:  make(map[Coord]Coord, len(g.cells)),
	}
	w.enqueue(g.start, g.start)
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]
		w.enqueueNeighbors(cur)
	}
	return w.visited
}

func (w *routeWalker) enqueue(c, parent Coord) {
	w.visited[c] = true
	if c != parent {
		w.parent[c] = parent
	}
	w.queue = append(w.queue, c)
}

func (w *routeWalker) enqueueNeighbors(c Coord) {
	cell := w.grid.cells[w.grid.index(c)]
	for _, d := range Directions {
		if !cell.HasLink(d) {
			continue
		}
		next := c.Step(d)
		if !w.grid.InBounds(next) || w.visited[next] {
			continue
		}
		w.enqueue(next, c)
	}
}

// pathTo walks parent pointers back to the start and reverses them.
func (w *routeWalker) pathTo(dest Coord) []Coord {
	path := []Coord{dest}
	for cur := dest; cur != w.grid.start; {
		cur = w.parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
