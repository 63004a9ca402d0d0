package hook

import (
	"context"
	"errors"
	"testing"
)

func TestChain_Fire_Empty(t *testing.T) {
	var ch Chain[int]

	if err := ch.Fire(context.Background(), 42); err != nil {
		t.Errorf("Fire() on empty chain = %v, want nil", err)
	}
	if ch.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ch.Len())
	}
}

func TestChain_Fire_RegistrationOrder(t *testing.T) {
	var ch Chain[string]
	var calls []string

	ch.On(func(s string) error {
		calls = append(calls, "sync1:"+s)
		return nil
	})
	ch.On(func(s string) error {
		calls = append(calls, "sync2:"+s)
		return nil
	})

	if err := ch.Fire(context.Background(), "x"); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}

	want := []string{"sync1:x", "sync2:x"}
	if len(calls) != len(want) {
		t.Fatalf("Got %d calls, want %d", len(calls), len(want))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestChain_Fire_SyncBeforeAsync(t *testing.T) {
	var ch Chain[int]
	var calls []string

	// Registered async first; the sync sub-chain must still fire first.
	ch.OnAsync(func(ctx context.Context, n int) error {
		calls = append(calls, "async")
		return nil
	})
	ch.On(func(n int) error {
		calls = append(calls, "sync")
		return nil
	})

	if err := ch.Fire(context.Background(), 1); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}

	if len(calls) != 2 || calls[0] != "sync" || calls[1] != "async" {
		t.Errorf("Call order = %v, want [sync async]", calls)
	}
}

func TestChain_Fire_SameValueToEveryCallback(t *testing.T) {
	var ch Chain[int]
	var seen []int

	for i := 0; i < 3; i++ {
		ch.On(func(n int) error {
			seen = append(seen, n)
			return nil
		})
	}

	if err := ch.Fire(context.Background(), 7); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	for i, n := range seen {
		if n != 7 {
			t.Errorf("callback %d saw %d, want 7", i, n)
		}
	}
}

func TestChain_Fire_ErrorAbortsRemainder(t *testing.T) {
	var ch Chain[int]
	boom := errors.New("boom")
	var afterErr bool

	ch.On(func(n int) error { return boom })
	ch.On(func(n int) error {
		afterErr = true
		return nil
	})
	ch.OnAsync(func(ctx context.Context, n int) error {
		afterErr = true
		return nil
	})

	err := ch.Fire(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Errorf("Fire() error = %v, want %v", err, boom)
	}
	if afterErr {
		t.Error("Callbacks after a failing callback should not run")
	}
}

func TestChain_Fire_AsyncError(t *testing.T) {
	var ch Chain[int]
	boom := errors.New("async boom")
	var syncRan bool

	ch.On(func(n int) error {
		syncRan = true
		return nil
	})
	ch.OnAsync(func(ctx context.Context, n int) error { return boom })

	err := ch.Fire(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Errorf("Fire() error = %v, want %v", err, boom)
	}
	if !syncRan {
		t.Error("Sync sub-chain should have completed before the async error")
	}
}

func TestChain_Len(t *testing.T) {
	var ch Chain[struct{}]

	ch.On(func(struct{}) error { return nil })
	ch.OnAsync(func(context.Context, struct{}) error { return nil })
	ch.On(func(struct{}) error { return nil })

	if ch.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ch.Len())
	}
}

func TestChain_Fire_AsyncReceivesContext(t *testing.T) {
	var ch Chain[int]
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var got any
	ch.OnAsync(func(ctx context.Context, n int) error {
		got = ctx.Value(key{})
		return nil
	})

	if err := ch.Fire(ctx, 1); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if got != "marker" {
		t.Errorf("Async callback context value = %v, want marker", got)
	}
}
