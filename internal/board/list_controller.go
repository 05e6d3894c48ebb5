package board

import (
	"context"
	"errors"
	"slices"
)

// PageStep is the offset distance of one next/previous activation.
const PageStep = 10

// ListFetcher reads one page of collection starting at offset.
type ListFetcher[T any] func(ctx context.Context, collection string, offset int) ([]T, error)

type listKey struct {
	collection string
	offset     int
}

// ListController drives offset-paginated fetches of one collection and owns
// the AsyncState rendered for it. Results are applied by relevance: only the
// response to the most recent Load for the current (collection, offset) pair
// is applied.
//
// All methods except ListRequest.Run must be called from the single goroutine
// that owns the controller.
type ListController[T any] struct {
	fetch   ListFetcher[T]
	failure string
	state   AsyncState[T]
	key     listKey
	seq     uint64
	scope   requestScope
}

type ListRequest[T any] struct {
	Collection string
	Offset     int
	seq        uint64
	fetch      ListFetcher[T]
	scope      requestScope
}

type ListResult[T any] struct {
	Collection string
	Offset     int
	Items      []T
	Err        error
	seq        uint64
}

func NewListController[T any](fetch ListFetcher[T], failureMessage string) *ListController[T] {
	return &ListController[T]{
		fetch:   fetch,
		failure: failureMessage,
		state:   AsyncState[T]{Items: []T{}},
		scope:   newRequestScope(),
	}
}

// Load starts a fetch of (collection, offset). Items stay visible while
// loading. Returns nil once the controller is closed.
func (c *ListController[T]) Load(collection string, offset int) *ListRequest[T] {
	if c == nil || !c.scope.alive() {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	c.seq++
	c.key = listKey{collection: collection, offset: offset}
	c.state.Loading = true
	c.state.Error = ""
	c.state.Err = nil
	return &ListRequest[T]{
		Collection: collection,
		Offset:     offset,
		seq:        c.seq,
		fetch:      c.fetch,
		scope:      c.scope,
	}
}

// Reload fetches the current (collection, offset) again.
func (c *ListController[T]) Reload() *ListRequest[T] {
	if c == nil || c.key.collection == "" {
		return nil
	}
	return c.Load(c.key.collection, c.key.offset)
}

// SetOffset clamps offset at 0 and loads it when it differs from the current
// offset. There is no upper bound; an empty page is a valid result.
func (c *ListController[T]) SetOffset(offset int) *ListRequest[T] {
	if c == nil {
		return nil
	}
	offset = max(offset, 0)
	if offset == c.key.offset {
		return nil
	}
	if c.key.collection == "" {
		c.key.offset = offset
		return nil
	}
	return c.Load(c.key.collection, offset)
}

// SetCollection switches to another collection starting from offset 0.
func (c *ListController[T]) SetCollection(collection string) *ListRequest[T] {
	if c == nil || collection == c.key.collection {
		return nil
	}
	return c.Load(collection, 0)
}

func (c *ListController[T]) Next() *ListRequest[T] {
	if c == nil {
		return nil
	}
	return c.SetOffset(c.key.offset + PageStep)
}

func (c *ListController[T]) Prev() *ListRequest[T] {
	if c == nil || !c.CanPrev() {
		return nil
	}
	return c.SetOffset(c.key.offset - PageStep)
}

func (c *ListController[T]) CanPrev() bool {
	return c != nil && c.key.offset > 0
}

// CanNext is always true: the server, not the client, knows the last page.
func (c *ListController[T]) CanNext() bool {
	return c != nil
}

// Apply settles a request. It reports whether the result changed state;
// results for superseded requests or a closed controller are dropped. A
// canceled fetch on a live controller settles as a failure so Loading never
// sticks.
func (c *ListController[T]) Apply(result ListResult[T]) bool {
	if c == nil || !c.scope.alive() {
		return false
	}
	if result.seq != c.seq || result.Collection != c.key.collection || result.Offset != c.key.offset {
		return false
	}
	c.state.Loading = false
	if result.Err != nil {
		c.state.Error = c.failure
		c.state.Err = result.Err
		return true
	}
	items := result.Items
	if items == nil {
		items = []T{}
	}
	c.state.Items = items
	c.state.Error = ""
	c.state.Err = nil
	return true
}

// Prepend inserts item ahead of the loaded items.
func (c *ListController[T]) Prepend(item T) {
	if c == nil || !c.scope.alive() {
		return
	}
	c.state.Items = append([]T{item}, c.state.Items...)
}

func (c *ListController[T]) State() AsyncState[T] {
	if c == nil {
		return AsyncState[T]{}
	}
	state := c.state
	state.Items = slices.Clone(c.state.Items)
	return state
}

func (c *ListController[T]) Items() []T {
	if c == nil {
		return nil
	}
	return slices.Clone(c.state.Items)
}

func (c *ListController[T]) Collection() string {
	if c == nil {
		return ""
	}
	return c.key.collection
}

func (c *ListController[T]) Offset() int {
	if c == nil {
		return 0
	}
	return c.key.offset
}

func (c *ListController[T]) Alive() bool {
	return c != nil && c.scope.alive()
}

// Close ends the controller's lifetime: in-flight requests are canceled and
// any later result is dropped.
func (c *ListController[T]) Close() {
	if c == nil {
		return
	}
	c.scope.close()
}

// Run performs the fetch. It is safe to call off the owning goroutine.
func (r *ListRequest[T]) Run(ctx context.Context) ListResult[T] {
	result := ListResult[T]{Collection: r.Collection, Offset: r.Offset, seq: r.seq}
	if r.fetch == nil {
		result.Err = errors.New("list fetcher is not configured")
		return result
	}
	ctx, cancel := r.scope.bind(ctx)
	defer cancel()
	result.Items, result.Err = r.fetch(ctx, r.Collection, r.Offset)
	return result
}
