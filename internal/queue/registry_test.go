package queue

import (
	"errors"
	"sync"
	"testing"

	"github.com/midani-47/Message-Queues/internal/message"
)

func TestRegistryCreateAndInfo(t *testing.T) {
	r := NewRegistry()
	info, err := r.Create("orders", testConfig(5))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if info.Name != "orders" || info.MaxMessages != 5 || info.MessageCount != 0 {
		t.Fatalf("info: %+v", info)
	}
	if info.Type != message.TypeTransaction {
		t.Fatalf("type: %s", info.Type)
	}
	got, err := r.Info("orders")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if got.Name != "orders" {
		t.Fatalf("lookup info: %+v", got)
	}
}

func TestRegistryCreateDuplicate(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("orders", testConfig(5)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Create("orders", testConfig(5)); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRegistryCreateInvalidName(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"", "my-queue", "my queue", "orders!", "queue/1", "café"} {
		if _, err := r.Create(name, testConfig(5)); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("name %q: expected ErrInvalidName, got %v", name, err)
		}
	}
	for _, name := range []string{"orders", "Orders7", "Q", "0"} {
		if _, err := r.Create(name, testConfig(5)); err != nil {
			t.Fatalf("name %q: %v", name, err)
		}
	}
}

func TestRegistryCreateInvalidConfig(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("orders", Config{MaxMessages: 0, PersistIntervalSeconds: 60, Type: message.TypeTransaction}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("invalid create must not register, len=%d", r.Len())
	}
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("orders", testConfig(5)); err != nil {
		t.Fatalf("create: %v", err)
	}
	st, err := r.Get("orders")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := r.Delete("orders"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.Get("orders"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := r.Delete("orders"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: %v", err)
	}
	// A state handle held across the delete observes the tombstone.
	if _, err := st.Push(message.TypeTransaction, txnPayload(0)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("push on deleted state: %v", err)
	}
	if _, _, err := st.Pull(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("pull on deleted state: %v", err)
	}
	if _, err := st.Info(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("info on deleted state: %v", err)
	}
}

func TestRegistryDeleteThenRecreate(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("orders", testConfig(5)); err != nil {
		t.Fatalf("create: %v", err)
	}
	st, _ := r.Get("orders")
	for i := 0; i < 3; i++ {
		if _, err := st.Push(message.TypeTransaction, txnPayload(i)); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	if err := r.Delete("orders"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	info, err := r.Create("orders", testConfig(9))
	if err != nil {
		t.Fatalf("recreate: %v", err)
	}
	if info.MessageCount != 0 || info.MaxMessages != 9 {
		t.Fatalf("recreated queue must start empty with new config: %+v", info)
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := r.Create(name, testConfig(5)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	infos := r.List()
	if len(infos) != 3 {
		t.Fatalf("list len: %d", len(infos))
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Fatalf("list[%d] = %s, want %s", i, info.Name, want[i])
		}
	}
}

func TestRegistryRestore(t *testing.T) {
	r := NewRegistry()
	src := NewState("orders", testConfig(5))
	if _, err := src.Push(message.TypeTransaction, txnPayload(0)); err != nil {
		t.Fatalf("push: %v", err)
	}
	snap := src.Snapshot()
	if err := r.Restore(snap.Name, snap.Config, snap.Messages, snap.CreatedAt, snap.LastModified); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if err := r.Restore(snap.Name, snap.Config, nil, snap.CreatedAt, snap.LastModified); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate restore: %v", err)
	}
	info, err := r.Info("orders")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.MessageCount != 1 {
		t.Fatalf("restored count: %d", info.MessageCount)
	}
}

func TestRegistryConcurrentCreateDelete(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Create("orders", testConfig(64)); err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			st, err := r.Get("orders")
			if err != nil {
				continue
			}
			_, err = st.Push(message.TypeTransaction, txnPayload(i))
			if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrQueueFull) {
				t.Errorf("push: %v", err)
				return
			}
			_, _, err = st.Pull()
			if err != nil && !errors.Is(err, ErrNotFound) {
				t.Errorf("pull: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 50; i++ {
		if err := r.Delete("orders"); err != nil && !errors.Is(err, ErrNotFound) {
			t.Fatalf("delete: %v", err)
		}
		if _, err := r.Create("orders", testConfig(64)); err != nil && !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("create: %v", err)
		}
	}
	close(stop)
	wg.Wait()
}
