package spf

import "github.com/ngrouting/isisspf/topology"

// candidate is one entry in the SPF candidate priority queue: a node and
// the metric it was queued at. The queue uses a lazy decrease-key
// strategy — relaxation pushes a fresh, lower-metric candidate rather than
// mutating one already in the heap — so a node can appear more than once;
// stale entries are discarded on pop by comparing against the node's
// current best-known metric.
type candidate struct {
	node   *topology.Node
	metric int64
}

// candidateQueue is a container/heap min-heap over candidate.metric.
type candidateQueue []*candidate

func (q candidateQueue) Len() int           { return len(q) }
func (q candidateQueue) Less(i, j int) bool { return q[i].metric < q[j].metric }
func (q candidateQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *candidateQueue) Push(x any) {
	*q = append(*q, x.(*candidate))
}

func (q *candidateQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return item
}
