package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/ron4870/Sample-Road-Design-Web-App/pkg/design"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalOutcome carries an evaluation result through the worker channel.
type evalOutcome struct {
	design *design.RoadDesign
	errors []EvalError
	err    error
}

// waitWithTimeout waits for a result from ch, returning a timeout
// error if the evaluation exceeds EvalTimeout. A generation counter
// discards stale results: on timeout the goroutine may still be
// running, and whatever it eventually produces must not be mistaken
// for the result of a newer evaluation.
func waitWithTimeout(
	ch <-chan evalOutcome,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
) (*design.RoadDesign, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.design, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
