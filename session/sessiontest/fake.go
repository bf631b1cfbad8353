// Package sessiontest provides a scriptable in-memory engine for tests.
package sessiontest

import (
	"context"
	"fmt"
	"sync"

	"github.com/10imaging/serving/session"
)

// RunCall records the arguments of one Engine.Run invocation.
type RunCall struct {
	Feeds   []session.Feed
	Fetches []string
	Targets []string
}

// Fake is a session.Engine test double. Outputs scripts the value returned
// for a fetch name; TargetErrs scripts a failure for a target operation.
// Every Run is recorded.
type Fake struct {
	Outputs    map[string]session.Value
	TargetErrs map[string]error
	RunErr     error
	CloseErr   error

	mu       sync.Mutex
	calls    []RunCall
	graphDef []byte
	config   *session.Config
	closed   bool
}

// New creates a Fake with no scripted outputs.
func New() *Fake {
	return &Fake{
		Outputs:    make(map[string]session.Value),
		TargetErrs: make(map[string]error),
	}
}

// Factory returns a session.Factory that hands out this fake and records
// the graph definition and config it was constructed with.
func (f *Fake) Factory() session.Factory {
	return func(graphDef []byte, cfg *session.Config) (session.Engine, error) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.graphDef = graphDef
		f.config = cfg
		return f, nil
	}
}

// Run records the call, fails if any target is scripted to fail, and
// returns one scripted value per fetch.
func (f *Fake) Run(ctx context.Context, feeds []session.Feed, fetches []string, targets []string) ([]session.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, fmt.Errorf("engine is closed")
	}

	f.calls = append(f.calls, RunCall{
		Feeds:   append([]session.Feed(nil), feeds...),
		Fetches: append([]string(nil), fetches...),
		Targets: append([]string(nil), targets...),
	})

	if f.RunErr != nil {
		return nil, f.RunErr
	}

	for _, target := range targets {
		if err := f.TargetErrs[target]; err != nil {
			return nil, err
		}
	}

	values := make([]session.Value, 0, len(fetches))
	for _, fetch := range fetches {
		v, ok := f.Outputs[fetch]
		if !ok {
			return nil, fmt.Errorf("no output scripted for fetch %q", fetch)
		}
		values = append(values, v)
	}

	return values, nil
}

// Close marks the engine closed.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	return f.CloseErr
}

// Closed reports whether Close has been called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// Calls returns a copy of all recorded Run calls.
func (f *Fake) Calls() []RunCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]RunCall(nil), f.calls...)
}

// TargetCalls counts how many Run calls named the given target operation.
func (f *Fake) TargetCalls(target string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, call := range f.calls {
		for _, t := range call.Targets {
			if t == target {
				n++
			}
		}
	}

	return n
}

// GraphDef returns the graph definition the factory was handed.
func (f *Fake) GraphDef() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.graphDef
}

// Config returns the config the factory was handed.
func (f *Fake) Config() *session.Config {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.config
}
