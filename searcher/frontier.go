package searcher

// frontier is the working multiset of live nodes awaiting classification.
// It shrinks by exactly one on every pop; covered nodes grow it by their
// oracle continuations.
type frontier struct {
	nodes []Node
	merge bool
	// canonical key -> slot in nodes, maintained only when merging
	slots map[string]int
}

func newFrontier(merge bool) *frontier {
	f := &frontier{merge: merge}
	if merge {
		f.slots = make(map[string]int)
	}
	return f
}

func (f *frontier) empty() bool {
	return len(f.nodes) == 0
}

func (f *frontier) size() int {
	return len(f.nodes)
}

// insert adds a node. In merge mode a node whose canonical position is
// already present instead adds its probability to the existing entry and is
// recorded as an extra origin; the first-seen move sequence stays primary.
func (f *frontier) insert(n Node) {
	if f.merge {
		key := n.Position.Key()
		if i, ok := f.slots[key]; ok {
			f.nodes[i].Probability += n.Probability
			f.nodes[i].Origins = append(f.nodes[i].Origins, n.Position)
			return
		}
		f.slots[key] = len(f.nodes)
	}
	f.nodes = append(f.nodes, n)
}

// popMax removes and returns the node with the strictly highest probability;
// the first such node wins ties. Callers must check empty() first: popping
// an empty frontier is a programming error.
func (f *frontier) popMax() Node {
	if len(f.nodes) == 0 {
		panic("popMax on empty frontier")
	}

	maxIdx := 0
	for i := 1; i < len(f.nodes); i++ {
		if f.nodes[i].Probability > f.nodes[maxIdx].Probability {
			maxIdx = i
		}
	}

	n := f.nodes[maxIdx]
	f.nodes = append(f.nodes[:maxIdx], f.nodes[maxIdx+1:]...)
	if f.merge {
		delete(f.slots, n.Position.Key())
		for i := maxIdx; i < len(f.nodes); i++ {
			f.slots[f.nodes[i].Position.Key()] = i
		}
	}
	return n
}
