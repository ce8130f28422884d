// Package engine provides the road-design evaluation engine. It wraps
// zygomys in a sandboxed environment and produces a design.RoadDesign
// from declarative design source.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/ron4870/Sample-Road-Design-Web-App/pkg/design"
)

// EvalError represents a non-fatal error encountered during
// evaluation, such as a parse error or a bad builtin argument.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment so
// evaluation is deterministic and designs never leak between calls.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate produces a RoadDesign from design source.
//
// Return semantics:
//   - On success: design + nil errors + nil error
//   - On parse/eval failure: nil design + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*design.RoadDesign, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalOutcome{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		d, evalErrs, err := e.evaluate(source)
		ch <- evalOutcome{design: d, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate runs the source in a fresh sandbox against a new builder.
func (e *Engine) evaluate(source string) (*design.RoadDesign, []EvalError, error) {
	// Empty source is a valid program describing an empty design.
	if strings.TrimSpace(source) == "" {
		return design.NewRoadDesign(), nil, nil
	}

	// Sandbox mode keeps user code away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	b := newBuilder()
	registerBuiltins(env, b)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygoError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygoError(err), nil
	}

	return b.design, nil, nil
}

// zygoLinePattern matches zygomys messages carrying line information,
// e.g. "Error on line 3: ..." or "line 3: ...".
var zygoLinePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)|^line (\d+):\s*(.*)`)

// parseZygoError converts a zygomys error into EvalError values,
// extracting the line number when the message carries one.
func parseZygoError(err error) []EvalError {
	msg := strings.TrimSpace(err.Error())
	if m := zygoLinePattern.FindStringSubmatch(msg); m != nil {
		lineStr, detail := m[1], m[2]
		if lineStr == "" {
			lineStr, detail = m[3], m[4]
		}
		line, _ := strconv.Atoi(lineStr)
		return []EvalError{{Line: line, Message: strings.TrimSpace(detail)}}
	}
	return []EvalError{{Message: msg}}
}
