package eventqueue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoEventQueue/internal/queue"
)

var _ queue.Interface[int] = (*EventQueue[int])(nil)

func TestNewRejectsInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		q, err := New[int](capacity)
		require.Error(t, err, "capacity %d must be rejected", capacity)
		assert.True(t, errors.Is(err, ErrInvalidCapacity))
		assert.Nil(t, q)
	}
}

func TestMustNewPanicsOnInvalidCapacity(t *testing.T) {
	assert.Panics(t, func() { MustNew[int](0) })
	assert.NotPanics(t, func() { MustNew[int](1) })
}

func TestWriteUnderCapacityDoesNotEvict(t *testing.T) {
	q := MustNew[string](4)

	for i, item := range []string{"A", "B", "C", "D"} {
		evicted := q.Write(item)
		assert.False(t, evicted, "write %d is under capacity", i+1)
	}
	assert.Equal(t, 4, q.Len())
}

func TestWriteAtCapacityEvictsOldest(t *testing.T) {
	q := MustNew[string](4)
	for _, item := range []string{"A", "B", "C", "D"} {
		q.Write(item)
	}

	evicted := q.Write("E")
	require.True(t, evicted, "fifth write into capacity 4 must evict")
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, []string{"B", "C", "D", "E"}, q.Items())
}

func TestEvictionFlagPerWrite(t *testing.T) {
	const capacity = 3
	q := MustNew[int](capacity)

	for i := 1; i <= capacity+4; i++ {
		evicted := q.Write(i)
		if i > capacity {
			assert.True(t, evicted, "write %d", i)
		} else {
			assert.False(t, evicted, "write %d", i)
		}
	}
}

func TestDrainAfterOverflowYieldsNewestWindow(t *testing.T) {
	const capacity = 3
	const extra = 4
	q := MustNew[int](capacity)

	for i := 1; i <= capacity+extra; i++ {
		q.Write(i)
	}

	var drained []int
	for {
		v, ok := q.Read()
		if !ok {
			break
		}
		drained = append(drained, v)
	}
	assert.Equal(t, []int{extra + 1, extra + 2, extra + 3}, drained)
	assert.Equal(t, 0, q.Len())
}

func TestFIFOWithinCapacity(t *testing.T) {
	q := MustNew[int](16)
	for i := 0; i < 10; i++ {
		q.Write(i)
	}
	for i := 0; i < 10; i++ {
		v, ok := q.Read()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestReadEmptyReturnsZeroAndFalse(t *testing.T) {
	q := MustNew[int](2)

	v, ok := q.Read()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 0, q.Len())

	q.Write(7)
	_, ok = q.Read()
	require.True(t, ok)

	v, ok = q.Read()
	assert.False(t, ok, "queue drained, read must signal empty again")
	assert.Zero(t, v)
}

func TestZeroValueItemsAreStillValues(t *testing.T) {
	q := MustNew[int](2)
	q.Write(0)

	v, ok := q.Read()
	assert.True(t, ok, "a stored zero is a value, not the empty signal")
	assert.Equal(t, 0, v)
}

func TestCapacityInvariantHoldsUnderBursts(t *testing.T) {
	const capacity = 5
	q := MustNew[int](capacity)

	for i := 0; i < 1000; i++ {
		q.Write(i)
		assert.LessOrEqual(t, q.Len(), capacity)
		if i%3 == 0 {
			q.Read()
		}
		assert.LessOrEqual(t, q.Len(), capacity)
	}
	assert.Equal(t, capacity, q.Cap())
}

func TestPeekDoesNotRemove(t *testing.T) {
	q := MustNew[string](3)

	_, ok := q.Peek()
	assert.False(t, ok)

	q.Write("first")
	q.Write("second")

	for i := 0; i < 3; i++ {
		v, ok := q.Peek()
		require.True(t, ok)
		assert.Equal(t, "first", v)
	}
	assert.Equal(t, 2, q.Len())

	v, ok := q.Read()
	require.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestTakeStablePartition(t *testing.T) {
	q := MustNew[string](8)
	for _, item := range []string{"A", "B", "C", "D"} {
		q.Write(item)
	}

	popped := q.Take(func(s string) bool { return s == "B" || s == "C" })

	assert.Equal(t, []string{"B", "C"}, popped)
	assert.Equal(t, []string{"A", "D"}, q.Items())

	v, ok := q.Read()
	require.True(t, ok)
	assert.Equal(t, "A", v)
	v, ok = q.Read()
	require.True(t, ok)
	assert.Equal(t, "D", v)
	_, ok = q.Read()
	assert.False(t, ok)
}

func TestTakeAdjacentMatches(t *testing.T) {
	// Runs of consecutive matches are where a scan that advances its index
	// after a removal loses elements.
	q := MustNew[int](10)
	for _, v := range []int{1, 2, 4, 6, 3, 8, 8, 5} {
		q.Write(v)
	}

	popped := q.Take(func(v int) bool { return v%2 == 0 })

	assert.Equal(t, []int{2, 4, 6, 8, 8}, popped)
	assert.Equal(t, []int{1, 3, 5}, q.Items())
}

func TestTakeNoneAndAll(t *testing.T) {
	q := MustNew[int](4)
	for _, v := range []int{1, 2, 3} {
		q.Write(v)
	}

	popped := q.Take(func(int) bool { return false })
	assert.Empty(t, popped)
	assert.Equal(t, []int{1, 2, 3}, q.Items())

	popped = q.Take(func(int) bool { return true })
	assert.Equal(t, []int{1, 2, 3}, popped)
	assert.True(t, q.IsEmpty())
	_, ok := q.Read()
	assert.False(t, ok)
}

func TestTakeOnEmptyQueue(t *testing.T) {
	q := MustNew[int](4)
	popped := q.Take(func(int) bool { return true })
	assert.Empty(t, popped)
	assert.Equal(t, 0, q.Len())
}

func TestWriteAfterTakeReusesFreedSlots(t *testing.T) {
	const capacity = 4
	q := MustNew[int](capacity)
	for _, v := range []int{1, 2, 3, 4} {
		q.Write(v)
	}

	q.Take(func(v int) bool { return v%2 == 0 })
	require.Equal(t, []int{1, 3}, q.Items())

	assert.False(t, q.Write(5), "two slots were freed")
	assert.False(t, q.Write(6))
	assert.True(t, q.Write(7), "queue is full again")
	assert.Equal(t, []int{3, 5, 6, 7}, q.Items())
}

func TestHasFindsMatchWithoutMutating(t *testing.T) {
	q := MustNew[int](8)
	for _, v := range []int{10, 11, 12} {
		q.Write(v)
	}

	for i := 0; i < 3; i++ {
		assert.True(t, q.Has(func(v int) bool { return v == 11 }))
		assert.False(t, q.Has(func(v int) bool { return v == 99 }))
	}

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []int{10, 11, 12}, q.Items())

	v, ok := q.Read()
	require.True(t, ok)
	assert.Equal(t, 10, v, "Has must not disturb read order")
}

func TestHasOnEmptyQueue(t *testing.T) {
	q := MustNew[int](2)
	assert.False(t, q.Has(func(int) bool { return true }))
}

func TestClearResets(t *testing.T) {
	const capacity = 3
	q := MustNew[int](capacity)
	for i := 0; i < capacity+2; i++ {
		q.Write(i)
	}

	q.Clear()

	assert.Equal(t, 0, q.Len())
	assert.True(t, q.IsEmpty())
	assert.Equal(t, capacity, q.Cap())
	_, ok := q.Read()
	assert.False(t, ok)

	// The queue is fully usable afterwards, including fresh eviction
	// accounting.
	for i := 0; i < capacity; i++ {
		assert.False(t, q.Write(i))
	}
	assert.True(t, q.Write(capacity))
}

func TestItemsReturnsACopy(t *testing.T) {
	q := MustNew[int](4)
	q.Write(1)
	q.Write(2)

	items := q.Items()
	items[0] = 99

	v, ok := q.Read()
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestInterleavedWriteReadKeepsOrder(t *testing.T) {
	q := MustNew[int](4)
	next := 0
	expect := 0

	for round := 0; round < 500; round++ {
		q.Write(next)
		next++
		if round%2 == 1 {
			v, ok := q.Read()
			require.True(t, ok)
			require.Equal(t, expect, v)
			expect++
		}
	}
}

func TestStructPayloads(t *testing.T) {
	type command struct {
		Name string
		Seq  int
	}

	q := MustNew[command](3)
	q.Write(command{Name: "up", Seq: 1})
	q.Write(command{Name: "down", Seq: 2})
	q.Write(command{Name: "left", Seq: 3})

	evicted := q.Write(command{Name: "right", Seq: 4})
	require.True(t, evicted)

	want := []string{"down", "left", "right"}
	for _, name := range want {
		c, ok := q.Read()
		require.True(t, ok)
		assert.Equal(t, name, c.Name)
	}
	_, ok := q.Read()
	assert.False(t, ok)
}

func TestSingleCapacityQueue(t *testing.T) {
	q := MustNew[int](1)

	assert.False(t, q.Write(1))
	assert.True(t, q.Write(2), "capacity 1 evicts on every additional write")
	assert.True(t, q.Write(3))

	v, ok := q.Read()
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func BenchmarkWriteRead(b *testing.B) {
	q := MustNew[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Write(i)
		q.Read()
	}
}

func BenchmarkWriteEvicting(b *testing.B) {
	q := MustNew[int](1024)
	for i := 0; i < 1024; i++ {
		q.Write(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Write(i)
	}
}

func BenchmarkTakeScan(b *testing.B) {
	q := MustNew[int](1024)
	for j := 0; j < 1024; j++ {
		q.Write(j)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Matches nothing, so each iteration pays the full partition walk
		// over an unchanged queue.
		q.Take(func(v int) bool { return v < 0 })
	}
}
