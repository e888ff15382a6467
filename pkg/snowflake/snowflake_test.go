package snowflake

import (
	"sync"
	"testing"
)

// 基础测试：能不能生成 ID
func TestGenID(t *testing.T) {
	id := GenID()
	if id <= 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}
}

// 并发测试：多 goroutine 生成
func TestGenRequestID_Concurrent(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 2000
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{}, goroutines*perRoutine)
	)

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				id := GenRequestID()

				mu.Lock()
				if _, exists := ids[id]; exists {
					t.Errorf("duplicate request id: %s", id)
				}
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

// 顺序性测试
func TestGenID_Order(t *testing.T) {
	prev := GenID()
	for i := 0; i < 1000; i++ {
		curr := GenID()
		if curr <= prev {
			t.Fatalf("ids not increasing: prev=%d curr=%d", prev, curr)
		}
		prev = curr
	}
}

func TestInit_RejectsOutOfRangeNode(t *testing.T) {
	if err := Init(1 << 20); err == nil {
		t.Fatal("expected error for node id out of range")
	}
	if err := Init(3); err != nil {
		t.Fatalf("init node 3: %v", err)
	}
}
