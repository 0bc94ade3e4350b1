package fuzz

// Entry is one reconciled list item as seen by the checker.
type Entry struct {
	ID  int `json:"id"`
	Key int `json:"key"`
}

// Reconcile is the naive reference reconciler. Each key of next takes the
// leftmost unused entry of prev with that key; keys without one get a new
// entry from newID. It returns the new entries and how many were created and
// disposed.
func Reconcile(prev []Entry, next []int, newID func() int) (out []Entry, created, disposed int) {
	queues := make(map[int][]Entry)
	for _, e := range prev {
		queues[e.Key] = append(queues[e.Key], e)
	}

	out = make([]Entry, len(next))
	for i, key := range next {
		if q := queues[key]; len(q) > 0 {
			out[i] = q[0]
			queues[key] = q[1:]
			continue
		}
		out[i] = Entry{ID: newID(), Key: key}
		created++
	}
	for _, q := range queues {
		disposed += len(q)
	}
	return out, created, disposed
}
