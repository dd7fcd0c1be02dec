package runner

import (
	"context"
	"time"
)

// Stub pairs an argv prefix with the Result to return for it.
type Stub struct {
	Prefix []string
	Result Result
}

// ScriptedRunner is a Runner for tests that replays stubbed Results instead
// of spawning processes. The stub with the longest matching argv prefix
// wins; unmatched commands succeed with empty output. Every call is
// recorded in order.
type ScriptedRunner struct {
	Stubs []Stub
	Calls [][]string
}

func NewScriptedRunner() *ScriptedRunner {
	return &ScriptedRunner{}
}

var _ Runner = (*ScriptedRunner)(nil)

// Registers a Result for commands starting with the given argv prefix.
func (s *ScriptedRunner) Stub(prefix []string, res Result) *ScriptedRunner {
	s.Stubs = append(s.Stubs, Stub{Prefix: prefix, Result: res})
	return s
}

func (s *ScriptedRunner) Run(_ context.Context, argv []string, _ time.Duration) Result {
	recorded := make([]string, len(argv))
	copy(recorded, argv)
	s.Calls = append(s.Calls, recorded)

	best := -1
	bestLen := -1
	for i, stub := range s.Stubs {
		if len(stub.Prefix) <= bestLen || !hasPrefix(argv, stub.Prefix) {
			continue
		}
		best = i
		bestLen = len(stub.Prefix)
	}
	if best >= 0 {
		return s.Stubs[best].Result
	}
	return Result{Code: 0}
}

// CalledWith reports whether any recorded call starts with the given prefix.
func (s *ScriptedRunner) CalledWith(prefix ...string) bool {
	for _, call := range s.Calls {
		if hasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func hasPrefix(argv, prefix []string) bool {
	if len(prefix) > len(argv) {
		return false
	}
	for i, p := range prefix {
		if argv[i] != p {
			return false
		}
	}
	return true
}
