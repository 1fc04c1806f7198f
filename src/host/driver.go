package host

import (
	"fmt"
	"sync"
	"time"

	"torlife/src/universe"
)

//Viewer is the interface to any Viewer - the object who can display simulation data or control the driver
type Viewer interface {
	Refresh(s Snapshot)
	Register(d *Driver)
	Start() error
}

/*
	Driver is the single owner of the Universe
	all commands are queued to the control channel and executed one by one by the main loop goroutine,
	so the Universe is never touched concurrently
	command methods return immediately, query methods wait for the main loop
*/
type Driver struct {
	options Options
	u       *universe.Universe
	fps     *FPS
	state   struct {
		Status
		runID int
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

//New creates the Driver and starts its main loop
//stateCh receives the running state updates, can be nil
func New(o *Options, stateCh chan Status) (*Driver, error) {
	if o == nil {
		o = &DefaultOptions
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		options:   *o,
		u:         universe.New(o.Width, o.Height),
		fps:       NewFPS(time.Now()),
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
	}
	if o.Template != "" {
		t, ok := universe.LookupTemplate(o.Template)
		if !ok {
			return nil, fmt.Errorf("unknown template %q", o.Template)
		}
		d.u.Kill()
		d.u.SettleTemplate(t, o.Height/2-1, o.Width/2-1)
	}
	d.updateStatus(0)
	go d.mainLoop()
	return d, nil
}

//Status returns current status represented by Status struct
func (d *Driver) Status() Status {
	d.state.Lock()
	defer d.state.Unlock()
	return d.state.Status
}

//Options returns current configuration represented by Options struct
func (d *Driver) Options() Options {
	d.state.Lock()
	defer d.state.Unlock()
	return d.options
}

//StateCh returns the channel with the running state updates
func (d *Driver) StateCh() chan Status {
	return d.stateCh
}

//RegisterViewer registers the viewer - the driver will call the viewer when the state is changed
func (d *Driver) RegisterViewer(v Viewer) {
	v.Register(d)
	d.submit(func() {
		d.views = append(d.views, v)
		v.Refresh(d.snapshot())
	})
}

//Run starts the simulation, returns immediately
func (d *Driver) Run() {
	d.submit(d.run)
}

//Stop stops the simulation, returns immediately
func (d *Driver) Stop() {
	d.submit(d.stop)
}

//Toggle switches between running and stopped, returns immediately
func (d *Driver) Toggle() {
	d.submit(func() {
		if d.mode() == RunningStateRun {
			d.stop()
		} else {
			d.run()
		}
	})
}

//Step does one step (TicksPerFrame generations), returns immediately
func (d *Driver) Step() {
	d.submit(d.step)
}

//ToggleCell flips the cell at row, column, coordinates outside the universe are ignored
func (d *Driver) ToggleCell(row int, column int) {
	d.submit(func() {
		if row < 0 || column < 0 || row >= d.u.Height() || column >= d.u.Width() {
			return
		}
		d.u.ToggleCell(row, column)
		d.edited()
	})
}

//ClearCells inverts every cell, returns immediately
func (d *Driver) ClearCells() {
	d.submit(func() {
		d.u.ClearCells()
		d.edited()
	})
}

//Kill makes all cells dead and resets the generation counter, returns immediately
func (d *Driver) Kill() {
	d.submit(func() {
		d.u.Kill()
		d.reset()
	})
}

//Resize changes the universe dimension, all cells become dead
func (d *Driver) Resize(width int, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimension %v x %v", width, height)
	}
	d.submit(func() {
		d.u.SetWidth(width)
		d.u.SetHeight(height)
		d.state.Lock()
		d.options.Width, d.options.Height = width, height
		d.state.Unlock()
		d.reset()
	})
	return nil
}

//SettleTemplate settles the named template with its origin at row, column
func (d *Driver) SettleTemplate(name string, row int, column int) error {
	t, ok := universe.LookupTemplate(name)
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	d.submit(func() {
		d.u.SettleTemplate(t, row, column)
		d.edited()
	})
	return nil
}

//Snapshot returns the copy of the current universe state
func (d *Driver) Snapshot() (s Snapshot) {
	d.exec(func() {
		s = d.snapshot()
	})
	return
}

//String renders the current universe as rows of '0' and '1'
func (d *Driver) String() (s string) {
	d.exec(func() {
		s = d.u.String()
	})
	return
}

//Close stops the main loop and the running simulation, returns immediately
func (d *Driver) Close() {
	d.closeOnce.Do(func() {
		close(d.closeCh)
	})
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (d *Driver) mainLoop() {
	for {
		select {
		case cmd := <-d.controlCh:
			cmd()
		case <-d.closeCh:
			return
		}
	}
}

//submit queues the command, the command is dropped when the driver is closed
func (d *Driver) submit(cmd func()) bool {
	select {
	case d.controlCh <- cmd:
		return true
	case <-d.closeCh:
		return false
	}
}

//exec queues the command and waits until it is done
func (d *Driver) exec(cmd func()) bool {
	done := make(chan struct{})
	if !d.submit(func() {
		cmd()
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-d.closeCh:
		return false
	}
}

func (d *Driver) mode() RunningState {
	d.state.Lock()
	defer d.state.Unlock()
	return d.state.RunningMode
}

//switchRunningState switch the state to RunningState
//also writes the new state to the stateCh to signal upper control software
func (d *Driver) switchRunningState(to RunningState) {
	d.state.Lock()
	d.state.RunningMode = to
	st := d.state.Status
	d.state.Unlock()
	if d.stateCh != nil {
		select {
		case d.stateCh <- st:
		case <-d.closeCh:
		}
	}
}

//updateStatus copies the universe counters to the status
func (d *Driver) updateStatus(iterationTime time.Duration) {
	live := d.u.LiveCells()
	d.state.Lock()
	d.state.Generation = d.u.Generation()
	d.state.LiveCells = live
	d.state.IterationTime = iterationTime
	d.state.FPS = d.fps.Stats()
	d.state.Unlock()
}

//run starts the simulation cycle
//the cycle stops on Stop() calling or when the boundary conditions are reached
func (d *Driver) run() {
	if d.mode() == RunningStateRun {
		return
	}
	d.state.Lock()
	d.state.runID++
	id := d.state.runID
	d.state.Unlock()
	d.fps.Reset(time.Now())
	d.switchRunningState(RunningStateRun)
	go d.runLoop(id, d.options.Interval)
}

//runLoop queues one step per interval while the run with id is active
func (d *Driver) runLoop(id int, interval time.Duration) {
	done := make(chan struct{}, 1)
	for d.running(id) {
		if !d.submit(func() {
			if d.running(id) {
				d.step()
			}
			done <- struct{}{}
		}) {
			return
		}
		select {
		case <-done:
		case <-d.closeCh:
			return
		}
		if interval > 0 {
			select {
			case <-time.After(interval):
			case <-d.closeCh:
				return
			}
		}
	}
}

//running reports whether the run with id is still active
func (d *Driver) running(id int) bool {
	d.state.Lock()
	defer d.state.Unlock()
	return d.state.runID == id && d.state.RunningMode == RunningStateRun
}

//stop stops the running cycle
func (d *Driver) stop() {
	if d.mode() == RunningStateRun {
		d.switchRunningState(RunningStateManual)
	}
}

//step calculates TicksPerFrame generations
func (d *Driver) step() {
	rm := d.mode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	maxSteps := d.options.MaxSteps
	limited := func() bool {
		return maxSteps != 0 && d.u.Generation() >= maxSteps
	}
	defer d.refreshView()

	if limited() {
		d.switchRunningState(RunningStateFinished)
		return
	}
	d.switchRunningState(RunningStateStep)
	start := time.Now()
	for i := 0; i < d.options.TicksPerFrame && !limited(); i++ {
		d.u.Tick()
	}
	now := time.Now()
	d.fps.Frame(now)
	d.updateStatus(now.Sub(start))

	if d.u.LiveCells() == 0 || limited() {
		d.switchRunningState(RunningStateFinished)
	} else {
		d.switchRunningState(rm)
	}
}

//edited refreshes the status and views after the cells were changed by the user
func (d *Driver) edited() {
	d.updateStatus(d.Status().IterationTime)
	if d.mode() == RunningStateFinished && d.u.LiveCells() > 0 {
		d.switchRunningState(RunningStateManual)
	}
	d.refreshView()
}

//reset stops the simulation and resets the counters
func (d *Driver) reset() {
	d.updateStatus(0)
	d.switchRunningState(RunningStateManual)
	d.refreshView()
}

func (d *Driver) snapshot() Snapshot {
	return Snapshot{
		Width:  d.u.Width(),
		Height: d.u.Height(),
		Cells:  d.u.Cells(),
		Status: d.Status(),
	}
}

//refreshView calls Refresh event for all registered views
func (d *Driver) refreshView() {
	if len(d.views) == 0 {
		return
	}
	s := d.snapshot()
	for _, v := range d.views {
		v.Refresh(s)
	}
}
