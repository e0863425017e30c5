package module

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestHookCallChainsData(t *testing.T) {
	hooks := NewHookRegistry(testLogger())

	hooks.RegisterFunc("test.hook", "double", "m1", func(_ context.Context, data any) (any, error) {
		return data.(int) * 2, nil
	})
	hooks.RegisterFunc("test.hook", "add_one", "m2", func(_ context.Context, data any) (any, error) {
		return data.(int) + 1, nil
	})

	result, err := hooks.Call(context.Background(), "test.hook", 5)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result != 11 {
		t.Errorf("result = %v, want 11", result)
	}
}

func TestHookCallPriorityOrder(t *testing.T) {
	hooks := NewHookRegistry(testLogger())
	var calls []string

	record := func(name string) HookFunc {
		return func(_ context.Context, data any) (any, error) {
			calls = append(calls, name)
			return data, nil
		}
	}
	hooks.Register("test.hook", HookHandler{Name: "late", Module: "m", Priority: 10, Fn: record("late")})
	hooks.Register("test.hook", HookHandler{Name: "early", Module: "m", Priority: -10, Fn: record("early")})
	hooks.Register("test.hook", HookHandler{Name: "middle", Module: "m", Priority: 0, Fn: record("middle")})

	if _, err := hooks.Call(context.Background(), "test.hook", nil); err != nil {
		t.Fatalf("Call: %v", err)
	}

	want := []string{"early", "middle", "late"}
	if len(calls) != len(want) {
		t.Fatalf("got %d calls, want %d", len(calls), len(want))
	}
	for i, name := range want {
		if calls[i] != name {
			t.Errorf("call %d = %q, want %q", i, calls[i], name)
		}
	}
}

func TestHookCallStopsOnError(t *testing.T) {
	hooks := NewHookRegistry(testLogger())
	wantErr := errors.New("handler failed")
	secondCalled := false

	hooks.RegisterFunc("test.hook", "failing", "m1", func(_ context.Context, data any) (any, error) {
		return nil, wantErr
	})
	hooks.RegisterFunc("test.hook", "after", "m2", func(_ context.Context, data any) (any, error) {
		secondCalled = true
		return data, nil
	})

	_, err := hooks.Call(context.Background(), "test.hook", nil)
	if !errors.Is(err, wantErr) {
		t.Errorf("Call error = %v, want wrapped %v", err, wantErr)
	}
	if secondCalled {
		t.Error("handler after the failing one was still called")
	}
}

func TestHookCallWithoutHandlers(t *testing.T) {
	hooks := NewHookRegistry(testLogger())

	result, err := hooks.Call(context.Background(), "test.unknown", "payload")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result != "payload" {
		t.Errorf("result = %v, want untouched payload", result)
	}
}

func TestHookUnregisterAll(t *testing.T) {
	hooks := NewHookRegistry(testLogger())
	noop := func(_ context.Context, data any) (any, error) { return data, nil }

	hooks.RegisterFunc("test.hook", "h1", "mine", noop)
	hooks.RegisterFunc("test.hook", "h2", "other", noop)
	hooks.RegisterFunc("test.other", "h3", "mine", noop)

	hooks.UnregisterAll("mine")

	if got := hooks.HandlerCount("test.hook"); got != 1 {
		t.Errorf("test.hook handler count = %d, want 1", got)
	}
	if hooks.HasHandlers("test.other") {
		t.Error("test.other still has handlers after UnregisterAll")
	}
}

func TestListHooks(t *testing.T) {
	hooks := NewHookRegistry(testLogger())
	noop := func(_ context.Context, data any) (any, error) { return data, nil }

	hooks.RegisterFunc("a", "h", "m", noop)
	hooks.RegisterFunc("b", "h", "m", noop)

	names := hooks.ListHooks()
	if len(names) != 2 {
		t.Errorf("ListHooks returned %d names, want 2", len(names))
	}
}
