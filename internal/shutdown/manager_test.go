package shutdown

import (
	"slices"
	"syscall"
	"testing"
	"time"

	"exam-points/internal/logger"
)

func TestManager_ReverseOrderOnce(t *testing.T) {
	m := NewManager(logger.Nop())

	var order []int
	for i := range 3 {
		m.Register(Func(func() { order = append(order, i) }))
	}

	m.Shutdown()
	m.Shutdown()

	if want := []int{2, 1, 0}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestManager_StepTimeout(t *testing.T) {
	m := NewManager(logger.Nop())
	m.SetStepTimeout(10 * time.Millisecond)

	block := make(chan struct{})
	defer close(block)
	ran := false
	m.Register(Func(func() { ran = true }))
	m.Register(Func(func() { <-block }))

	finished := make(chan struct{})
	go func() {
		m.Shutdown()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown blocked on a stuck component")
	}
	if !ran {
		t.Error("component after the stuck one did not run")
	}
}

func TestManager_ListenOnSignal(t *testing.T) {
	m := NewManager(logger.Nop())
	called := make(chan struct{})
	m.Register(Func(func() { close(called) }))

	m.Listen(syscall.SIGUSR1)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("send signal: %v", err)
	}

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown not triggered by signal")
	}
}
