package analysis

import (
	"github.com/wikigraph/wikigraph/internal/graph"
)

// separatorLine closes each path block in the paths log.
const separatorLine = "--------------------------"

// ShortestPath samples two distinct random nodes and returns the
// shortest path between them in the undirected projection of the
// graph. The path is appended to the paths log, one node per line,
// followed by a separator line.
//
// Returns ErrNoPath when the graph holds fewer than two nodes or the
// sampled nodes lie in different components.
func (a *Analyzer) ShortestPath() ([]string, error) {
	u := a.graph.Undirected()
	nodes := u.Nodes()
	if len(nodes) < 2 {
		return nil, ErrNoPath
	}

	i := a.rng.Intn(len(nodes))
	j := a.rng.Intn(len(nodes) - 1)
	if j >= i {
		j++
	}
	source, target := nodes[i], nodes[j]
	a.logger.Info("sampled path endpoints", "source", source, "target", target)

	path := bfsPath(u, source, target)
	if path == nil {
		a.logger.Info("sampled nodes are not connected", "source", source, "target", target)
		return nil, ErrNoPath
	}

	for _, url := range path {
		if err := appendLine(a.logs.Paths, url); err != nil {
			return path, err
		}
	}
	if err := appendLine(a.logs.Paths, separatorLine); err != nil {
		return path, err
	}

	return path, nil
}

// bfsPath returns the node sequence of a shortest path from source to
// target, or nil when target is unreachable.
func bfsPath(u *graph.Undirected, source, target string) []string {
	if source == target {
		return []string{source}
	}

	parent := map[string]string{source: source}
	queue := []string{source}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range u.Neighbors(current) {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current

			if next == target {
				path := []string{target}
				for at := current; at != source; at = parent[at] {
					path = append(path, at)
				}
				path = append(path, source)
				for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
					path[l], path[r] = path[r], path[l]
				}
				return path
			}
			queue = append(queue, next)
		}
	}

	return nil
}
