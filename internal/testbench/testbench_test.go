package testbench

import (
	"testing"
	"time"

	"github.com/i5heu/GoEventQueue/pkg/config"
	"github.com/i5heu/GoEventQueue/pkg/eventqueue"
	"github.com/i5heu/GoEventQueue/pkg/syncqueue"
)

func TestRunTimedTestAccounting(t *testing.T) {
	const capacity = 64
	q := syncqueue.New[int](eventqueue.MustNew[int](capacity))
	sc := config.Scenario{NumProducers: 4, NumConsumers: 2}

	produced, evicted, consumed, elapsed := RunTimedTest(q, sc, 100*time.Millisecond, func(i int) int {
		return i
	})

	if produced == 0 {
		t.Fatal("Expected producers to write at least one message")
	}
	if consumed == 0 {
		t.Fatal("Expected consumers to read at least one message")
	}
	if elapsed < 100*time.Millisecond {
		t.Fatalf("Elapsed %v shorter than the test duration", elapsed)
	}

	// Every produced message was evicted, consumed, or still queued when the
	// counters were sampled. The queue never holds more than its capacity.
	leftover := produced - evicted - consumed
	if leftover < 0 || leftover > capacity {
		t.Fatalf("Accounting off: produced=%d evicted=%d consumed=%d leftover=%d",
			produced, evicted, consumed, leftover)
	}
}

func TestRunTimedTestGeneratorValues(t *testing.T) {
	q := syncqueue.New[string](eventqueue.MustNew[string](16))
	sc := config.Scenario{NumProducers: 1, NumConsumers: 1}

	produced, _, _, _ := RunTimedTest(q, sc, 50*time.Millisecond, func(i int) string {
		return "msg"
	})
	if produced == 0 {
		t.Fatal("Expected at least one message")
	}
}
