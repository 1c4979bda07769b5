package batch

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/alexiusacademia/gosfrc/internal/calibration"
	"github.com/alexiusacademia/gosfrc/internal/residual"
	"golang.org/x/sync/semaphore"
	"gopkg.in/yaml.v3"
)

// Case is one named mix in a batch file.
type Case struct {
	Name          string `yaml:"name"`
	residual.Form `yaml:",inline"`
}

// File is the top-level batch document.
type File struct {
	Profile string `yaml:"profile,omitempty"`
	Cases   []Case `yaml:"cases"`
}

// Parse decodes a YAML (or JSON) batch document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("batch: parse: %w", err)
	}
	if len(f.Cases) == 0 {
		return nil, fmt.Errorf("batch: no cases defined")
	}
	seen := make(map[string]bool, len(f.Cases))
	for i := range f.Cases {
		c := &f.Cases[i]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("batch: duplicate case %q", c.Name)
		}
		seen[c.Name] = true
	}
	return &f, nil
}

// Load reads and parses a batch file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return f, nil
}

// Result is the evaluation of one case. Err is set when the case could not
// be turned into a request or requested no target.
type Result struct {
	Name   string           `json:"name" yaml:"name"`
	Report *residual.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
	Err    error            `json:"-" yaml:"-"`
}

// Run evaluates all cases with up to workers goroutines and returns results
// in case order. A failing case does not stop the others. Cancelling ctx
// stops dispatching new cases and returns ctx.Err().
func Run(ctx context.Context, cases []Case, p calibration.Profile, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(cases))
	sem := semaphore.NewWeighted(int64(workers))

	var wg sync.WaitGroup
	var err error
	for i := range cases {
		if err = ctx.Err(); err != nil {
			break
		}
		if err = sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = evaluate(cases[i], p)
		}(i)
	}
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}

func evaluate(c Case, p calibration.Profile) Result {
	res := Result{Name: c.Name}
	req, err := c.Request()
	if err == nil {
		var rep residual.Report
		rep, err = residual.Evaluate(req, p)
		if err == nil {
			res.Report = &rep
			return res
		}
	}
	res.Err = fmt.Errorf("case %q: %w", c.Name, err)
	res.Error = res.Err.Error()
	return res
}
