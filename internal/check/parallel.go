// Package check runs read-only preflight checks for a deploy: the same
// inputs Run would touch, verified without changing anything on disk.
package check

import (
	"sync"
)

const maxWorkers = 8

// Status of a single check.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Result holds the outcome of one check.
type Result struct {
	Name    string
	Status  Status
	Message string
}

// Func performs one check.
type Func func() Result

// Parallel runs checks concurrently using a bounded semaphore of maxWorkers
// goroutines. Results keep the order of checks. onDone (if non-nil) is
// called after each check finishes.
func Parallel(checks []Func, onDone func()) []Result {
	results := make([]Result, len(checks))
	if len(checks) == 0 {
		return results
	}

	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, fn := range checks {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, fn Func) {
			defer wg.Done()
			defer func() { <-sem }()

			results[idx] = fn()
			if onDone != nil {
				onDone()
			}
		}(i, fn)
	}
	wg.Wait()

	return results
}

// Failed reports whether any result is an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusError {
			return true
		}
	}
	return false
}
