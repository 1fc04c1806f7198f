package host

import (
	"fmt"
	"time"
)

//Options represents the Driver's configurable options
type Options struct {
	Width         int
	Height        int
	Interval      time.Duration
	MaxSteps      int    //0 means no limit
	TicksPerFrame int    //generations calculated per step
	Template      string //template settled at start, empty means the seed pattern
}

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 64
	DefHeight             = 32
	DefTicksPerFrame      = 1
)

var DefaultOptions = Options{
	Width:         DefWidth,
	Height:        DefHeight,
	Interval:      DefSimulationInterval,
	MaxSteps:      DefMaxSteps,
	TicksPerFrame: DefTicksPerFrame,
}

//Validate checks the options can be used to create the Driver
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid dimension %v x %v", o.Width, o.Height)
	}
	if o.TicksPerFrame <= 0 {
		return fmt.Errorf("invalid ticks per frame: %v", o.TicksPerFrame)
	}
	if o.MaxSteps < 0 {
		return fmt.Errorf("invalid max steps: %v", o.MaxSteps)
	}
	if o.Interval < 0 {
		return fmt.Errorf("invalid interval: %v", o.Interval)
	}
	return nil
}

//The driver running status at the concrete moment
type RunningState int

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "do the step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return fmt.Sprintf("RunningState(%d)", int(s))
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	Generation    int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	FPS           FPSStats
}

//Snapshot is a copy of the universe state taken between two commands
type Snapshot struct {
	Width  int
	Height int
	Cells  []byte //one byte per cell, row-major, 0 is dead and 1 is alive
	Status Status
}

//Alive reports whether the cell at row, column is alive
func (s Snapshot) Alive(row int, column int) bool {
	return s.Cells[row*s.Width+column] == 1
}
