package sync

import "sync"

// optimistic is the three-phase shape of a mutation on a handler's working
// copy: the snapshot is captured up front, apply shows the change to the
// handler's consumers before the network call resolves, and exactly one of
// commit (via the store) or revert runs afterwards. Keeping the revert in
// one place guarantees a failed call restores the exact pre-call value.
type optimistic[T any] struct {
	mu       *sync.Mutex
	target   *[]T
	snapshot []T
}

// beginOptimistic snapshots the working copy guarded by mu.
func beginOptimistic[T any](mu *sync.Mutex, target *[]T) *optimistic[T] {
	mu.Lock()
	defer mu.Unlock()
	snapshot := make([]T, len(*target))
	copy(snapshot, *target)
	return &optimistic[T]{mu: mu, target: target, snapshot: snapshot}
}

// apply replaces the working copy with f(current).
func (o *optimistic[T]) apply(f func([]T) []T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*o.target = f(*o.target)
}

// revert restores the snapshot taken at begin time.
func (o *optimistic[T]) revert() {
	o.mu.Lock()
	defer o.mu.Unlock()
	*o.target = o.snapshot
}
