package cache

import (
	"sync"
)

// Stats reports pool activity.
type Stats struct {
	// Idle is the number of entries waiting for reuse.
	Idle int
	// IdleBytes is the total size of idle entries.
	IdleBytes uint64
	// Budget is the idle byte budget; zero means unlimited.
	Budget uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type poolEntry[K comparable, V any] struct {
	key  K
	size uint64
	node *lruNode[*poolEntry[K, V]]
	val  V
}

// Pool holds idle values grouped by key. Values are taken out with Take
// and handed back with Put; the pool owns a value only while it is idle.
// When idle values exceed the budget the least recently returned ones are
// passed to the evict callback.
//
// Pool must not be copied after creation.
type Pool[K comparable, V any] struct {
	mu      sync.Mutex
	idle    map[K][]*poolEntry[K, V]
	lru     lruList[*poolEntry[K, V]]
	budget  uint64
	used    uint64
	onEvict func(V)

	hits, misses, evictions uint64
}

// NewPool creates a pool with an idle byte budget (zero means unlimited).
// onEvict, if non-nil, releases values the pool drops.
func NewPool[K comparable, V any](budget uint64, onEvict func(V)) *Pool[K, V] {
	return &Pool[K, V]{
		idle:    make(map[K][]*poolEntry[K, V]),
		budget:  budget,
		onEvict: onEvict,
	}
}

// Take removes and returns the most recently returned idle value for key.
func (p *Pool[K, V]) Take(key K) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	list := p.idle[key]
	if len(list) == 0 {
		p.misses++
		var zero V
		return zero, false
	}
	e := list[len(list)-1]
	p.dropLocked(e)
	p.hits++
	return e.val, true
}

// TakeFunc is like Take but scans every idle key accepted by match, most
// recent first.
func (p *Pool[K, V]) TakeFunc(match func(K) bool) (V, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for n := p.lru.head; n != nil; n = n.next {
		if match(n.value.key) {
			e := n.value
			p.dropLocked(e)
			p.hits++
			return e.val, true
		}
	}
	p.misses++
	var zero V
	return zero, false
}

// Put parks value under key. size counts against the budget.
func (p *Pool[K, V]) Put(key K, value V, size uint64) {
	var evicted []V

	p.mu.Lock()
	e := &poolEntry[K, V]{key: key, size: size, val: value}
	e.node = p.lru.PushFront(e)
	p.idle[key] = append(p.idle[key], e)
	p.used += size
	for p.budget > 0 && p.used > p.budget && p.lru.Len() > 0 {
		old := p.lru.Back().value
		p.dropLocked(old)
		p.evictions++
		evicted = append(evicted, old.val)
	}
	p.mu.Unlock()

	p.release(evicted)
}

// SetBudget changes the budget, evicting as needed.
func (p *Pool[K, V]) SetBudget(budget uint64) {
	var evicted []V

	p.mu.Lock()
	p.budget = budget
	for p.budget > 0 && p.used > p.budget && p.lru.Len() > 0 {
		old := p.lru.Back().value
		p.dropLocked(old)
		p.evictions++
		evicted = append(evicted, old.val)
	}
	p.mu.Unlock()

	p.release(evicted)
}

// Purge evicts every idle value.
func (p *Pool[K, V]) Purge() {
	p.mu.Lock()
	evicted := make([]V, 0, p.lru.Len())
	for n := p.lru.Back(); n != nil; n = n.prev {
		evicted = append(evicted, n.value.val)
	}
	p.evictions += uint64(len(evicted))
	p.idle = make(map[K][]*poolEntry[K, V])
	p.lru.Clear()
	p.used = 0
	p.mu.Unlock()

	p.release(evicted)
}

// Len returns the number of idle values.
func (p *Pool[K, V]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lru.Len()
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[K, V]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Idle:      p.lru.Len(),
		IdleBytes: p.used,
		Budget:    p.budget,
		Hits:      p.hits,
		Misses:    p.misses,
		Evictions: p.evictions,
	}
}

func (p *Pool[K, V]) dropLocked(e *poolEntry[K, V]) {
	p.lru.Remove(e.node)
	p.used -= e.size
	list := p.idle[e.key]
	for i, x := range list {
		if x == e {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(p.idle, e.key)
	} else {
		p.idle[e.key] = list
	}
}

// release runs outside the lock so callbacks may use the pool.
func (p *Pool[K, V]) release(values []V) {
	if p.onEvict == nil {
		return
	}
	for _, v := range values {
		p.onEvict(v)
	}
}
