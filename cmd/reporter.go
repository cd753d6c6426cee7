package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"

	"github.com/leocov-dev/launchwiz/core"
)

// cliReporter prints pipeline events and draws a progress bar for asset downloads.
// Lines reported while the bar is drawing are held back until Wait so they do not
// interleave with it.
type cliReporter struct {
	out io.Writer

	mu       sync.Mutex
	progress *mpb.Progress
	bar      *mpb.Bar
	total    int
	pending  []string
}

func newCliReporter() *cliReporter {
	return newCliReporterTo(os.Stdout)
}

func newCliReporterTo(out io.Writer) *cliReporter {
	return &cliReporter{out: out}
}

func (r *cliReporter) Report(e core.Event) {
	switch e.Kind {
	case core.EventLog:
		r.println(e.Message)
	case core.EventError:
		r.println("Error: " + e.Message)
	case core.EventProgress:
		if e.Stage == core.StageAssets {
			r.assetProgress(e.Total)
		}
	}
}

func (r *cliReporter) println(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		r.pending = append(r.pending, line)
		return
	}
	fmt.Fprintln(r.out, line)
}

func (r *cliReporter) assetProgress(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		r.progress = mpb.New(mpb.WithOutput(r.out), mpb.WithWidth(40))
		r.total = total
		r.bar = r.progress.AddBar(int64(total),
			mpb.PrependDecorators(
				decor.Name("Assets "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}
	r.bar.Increment()
}

// Wait completes the progress bar, if any, waits for it to finish drawing and then
// prints the held back lines. It must be called once the pipeline has returned.
func (r *cliReporter) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		r.bar.SetTotal(int64(r.total), true)
		r.progress.Wait()
		r.progress = nil
		r.bar = nil
	}
	for _, line := range r.pending {
		fmt.Fprintln(r.out, line)
	}
	r.pending = nil
}
