package view

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"torlife/src/host"
)

//ConsoleOut is the non-interactive viewer
//Start runs the simulation and blocks until it is finished
type ConsoleOut struct {
	d         *host.Driver
	w         io.Writer
	every     int
	steps     int
	startTime time.Time
	done      chan struct{}
	once      sync.Once
}

//NewConsoleOut creates the viewer printing the progress every n steps to w
func NewConsoleOut(w io.Writer, every int) *ConsoleOut {
	if every <= 0 {
		every = 10
	}
	return &ConsoleOut{w: w, every: every, done: make(chan struct{})}
}

func (c *ConsoleOut) Refresh(s host.Snapshot) {
	st := s.Status
	switch st.RunningMode {
	case host.RunningStateFinished:
		c.once.Do(func() {
			totalTime := time.Since(c.startTime).Round(time.Millisecond)
			resultData := map[string]interface{}{
				"Last generation": st.Generation,
				"Total time":      totalTime,
				"Live cells":      st.LiveCells,
				"Average FPS":     fmt.Sprintf("%.0f", st.FPS.Mean),
			}
			_, _ = fmt.Fprintln(c.w, "\nFinished:")
			c.printHashData(resultData)
			close(c.done)
		})
	case host.RunningStateRun:
		c.steps++
		if c.steps%c.every == 0 {
			_, _ = fmt.Fprintf(c.w, "  Generation: %v, live cells: %v\n", st.Generation, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(d *host.Driver) {
	c.d = d
	o := d.Options()
	_, _ = fmt.Fprintln(c.w, "Running configuration:")
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       o.Interval,
		"Max generation": o.MaxSteps,
		"Ticks per step": o.TicksPerFrame,
	})
}

//Start runs the simulation and waits until it is finished
func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
	c.d.Run()
	<-c.done
	return nil
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
