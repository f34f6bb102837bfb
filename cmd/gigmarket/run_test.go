package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

type runnerStub struct {
	startErr error
	stopErr  error
	done     chan os.Signal
	stopped  bool
}

func (r *runnerStub) Start(context.Context) error { return r.startErr }

func (r *runnerStub) Stop(context.Context) error {
	r.stopped = true
	return r.stopErr
}

func (r *runnerStub) Done() <-chan os.Signal { return r.done }

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app := &runnerStub{done: make(chan os.Signal)}
	var stderr bytes.Buffer

	if code := run(ctx, app, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, stderr.String())
	}
	if !app.stopped {
		t.Fatal("expected app to be stopped")
	}
}

func TestRunStopsOnShutdownSignal(t *testing.T) {
	app := &runnerStub{done: make(chan os.Signal, 1)}
	app.done <- syscall.SIGTERM

	finished := make(chan int, 1)
	go func() { finished <- run(context.Background(), app, &bytes.Buffer{}) }()

	select {
	case code := <-finished:
		if code != 0 {
			t.Fatalf("expected exit code 0, got %d", code)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after shutdown signal")
	}
}

func TestRunReportsFailures(t *testing.T) {
	var stderr bytes.Buffer
	app := &runnerStub{startErr: errors.New("port in use")}
	if code := run(context.Background(), app, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "port in use") || app.stopped {
		t.Fatalf("start failure must be reported without stop, got %q", stderr.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stderr.Reset()
	app = &runnerStub{stopErr: errors.New("drain timeout"), done: make(chan os.Signal)}
	if code := run(ctx, app, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "drain timeout") {
		t.Fatalf("stop failure must be reported, got %q", stderr.String())
	}
}
