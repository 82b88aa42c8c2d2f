package flights

import (
	"container/heap"
	"errors"
)

// ErrNoRouteFound is returned when no chain of flights connects two airports.
var ErrNoRouteFound = errors.New("no route found")

// FindCheapestRoute runs Dijkstra over the flight graph, treating airports
// as nodes and each flight as a directed edge weighted by its price.
// It returns the flights along the cheapest path, in travel order.
func FindCheapestRoute(all []Flight, source, destination string) ([]Flight, float64, error) {
	if source == destination {
		return nil, 0, ErrNoRouteFound
	}

	// Adjacency list keyed by origin airport.
	edges := make(map[string][]Flight)
	for _, f := range all {
		edges[f.Source] = append(edges[f.Source], f)
	}

	dist := map[string]float64{source: 0}
	// via remembers the flight used to reach each airport on the best path.
	via := make(map[string]Flight)
	visited := make(map[string]bool)

	pq := &routeQueue{{airport: source, cost: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(routeStop)
		if visited[current.airport] {
			continue
		}
		visited[current.airport] = true

		if current.airport == destination {
			break
		}

		for _, f := range edges[current.airport] {
			next := f.Destination
			if visited[next] {
				continue
			}
			candidate := current.cost + f.Price
			if best, ok := dist[next]; !ok || candidate < best {
				dist[next] = candidate
				via[next] = f
				heap.Push(pq, routeStop{airport: next, cost: candidate})
			}
		}
	}

	total, ok := dist[destination]
	if !ok {
		return nil, 0, ErrNoRouteFound
	}

	// Walk back from the destination to rebuild the path.
	var path []Flight
	for at := destination; at != source; {
		f, ok := via[at]
		if !ok {
			return nil, 0, ErrNoRouteFound
		}
		path = append(path, f)
		at = f.Source
	}

	// Reverse into travel order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, total, nil
}

// routeStop is a priority-queue entry for Dijkstra.
type routeStop struct {
	airport string
	cost    float64
}

type routeQueue []routeStop

func (q routeQueue) Len() int            { return len(q) }
func (q routeQueue) Less(i, j int) bool  { return q[i].cost < q[j].cost }
func (q routeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *routeQueue) Push(x interface{}) { *q = append(*q, x.(routeStop)) }
func (q *routeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
