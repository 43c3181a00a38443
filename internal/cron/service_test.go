package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

type stubLock struct {
	allow    bool
	acquires int
	releases int
	err      error
}

func (l *stubLock) Acquire(ctx context.Context) (bool, error) {
	l.acquires++
	return l.allow, l.err
}

func (l *stubLock) Release(ctx context.Context) error {
	l.releases++
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test"})
}

func TestNewServiceValidation(t *testing.T) {
	if _, err := NewService(ServiceParams{Lock: &stubLock{}}); err == nil {
		t.Fatal("expected error without logger")
	}
	if _, err := NewService(ServiceParams{Logger: testLogger()}); err == nil {
		t.Fatal("expected error without lock")
	}
}

func TestCycleRunsJobsUnderLock(t *testing.T) {
	job := &stubJob{name: "sweep"}
	failing := &stubJob{name: "broken", err: errors.New("boom")}
	lock := &stubLock{allow: true}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job, failing),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.cycle(context.Background()); err != nil {
		t.Fatalf("cycle: %v", err)
	}

	if job.runs != 1 || failing.runs != 1 {
		t.Fatalf("expected both jobs run once, got %d and %d", job.runs, failing.runs)
	}
	if lock.acquires != 1 || lock.releases != 1 {
		t.Fatalf("lock acquire/release = %d/%d", lock.acquires, lock.releases)
	}
}

func TestCycleSkipsWhenLockHeldElsewhere(t *testing.T) {
	job := &stubJob{name: "sweep"}
	lock := &stubLock{allow: false}

	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Registry: NewRegistry(job),
		Lock:     lock,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.cycle(context.Background()); err != nil {
		t.Fatalf("cycle: %v", err)
	}
	if job.runs != 0 {
		t.Fatalf("job must not run without the lock, ran %d times", job.runs)
	}
	if lock.releases != 0 {
		t.Fatalf("must not release a lock it does not hold, released %d times", lock.releases)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	svc, err := NewService(ServiceParams{
		Logger:   testLogger(),
		Lock:     &stubLock{allow: true},
		Interval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
