package view

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"torlife/src/host"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	d *host.Driver
	g *gocui.Gui
	k []keyBindings

	mu   sync.Mutex
	last host.Snapshot

	liveFiller string
	deadFiller string
}

var (
	runningStateDescr = map[host.RunningState]string{
		host.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		host.RunningStateStep:     "do the step",
		host.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		host.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

const fieldView = "battlefield"

func NewConsoleUI() (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'p', "P", "Play/Pause", t.cmdPlayPause, ""},
		{'n', "N", "Next step", t.cmdNextRound, ""},
		{'c', "C", "Invert", t.cmdClear, ""},
		{'k', "K", "Kill all", t.cmdKill, ""},
		{'g', "G", "Glider", t.cmdGlider, ""},
		{'f', "F", "Fit to window", t.cmdFit, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", t.cmdMouseClick, fieldView},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			return err
		}
	}
	return nil
}

func (t *ConsoleUI) Register(d *host.Driver) {
	t.d = d
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

//Refresh is called by the driver, it stores the snapshot and schedules the redraw
func (t *ConsoleUI) Refresh(s host.Snapshot) {
	t.mu.Lock()
	t.last = s
	t.mu.Unlock()
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g)
		t.renderConfiguration(g)
		t.renderStatus(g)
		return nil
	})
}

func (t *ConsoleUI) snapshot() host.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View(fieldView)
	if e != nil {
		return
	}
	s := t.snapshot()
	//the entire field is redrawing at once now
	v.Clear()

	crop := false
	maxW, maxH := v.Size()
	if s.Width > maxW || s.Height > maxH {
		crop = true
	}

	var b bytes.Buffer
	for row := 0; row < s.Height; row++ {
		//discard the data outside the view area
		if row >= maxH {
			break
		}
		//line feed char
		if row != 0 {
			b.WriteByte(10)
		}
		if crop && row == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for column := 0; column < s.Width && column < maxW; column++ {
			if s.Alive(row, column) {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	s := t.snapshot().Status
	if v, e := g.View("status"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", s.Generation))
		_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
		_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
		_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		_, _ = fmt.Fprintln(v, t.renderProp("FPS", "%.0f", s.FPS.Latest))
		_, _ = fmt.Fprintln(v, t.renderProp("  avg", "%.0f", s.FPS.Mean))
		_, _ = fmt.Fprintln(v, t.renderProp("  min", "%.0f", s.FPS.Min))
		_, _ = fmt.Fprintln(v, t.renderProp("  max", "%.0f", s.FPS.Max))
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui) {
	if t.d == nil {
		return
	}
	c := t.d.Options()
	if v, e := g.View("configuration"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
		_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
		_, _ = fmt.Fprintln(v, t.renderProp("Ticks per step", "%v", c.TicksPerFrame))
		if c.MaxSteps == 0 {
			_, _ = fmt.Fprintln(v, t.renderProp("Generations", "unlimited"))
		} else {
			_, _ = fmt.Fprintln(v, t.renderProp("Generations", "%v", c.MaxSteps))
		}
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView(fieldView)
		return nil
	}

	if _, err := t.headerLayout(g, 3, "Toroidal \"Life\" simulation"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(g)
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(g)
	}

	if v, err := g.SetView(fieldView, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Universe"
		v.Frame = true
	}
	t.renderField(g)

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			return v, fmt.Errorf("terminal width is too small: %v", maxX)
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdPlayPause(_ *gocui.View) error {
	t.d.Toggle()
	return nil
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.d.Step()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.d.ClearCells()
	return nil
}

func (t *ConsoleUI) cmdKill(_ *gocui.View) error {
	t.d.Kill()
	return nil
}

func (t *ConsoleUI) cmdGlider(_ *gocui.View) error {
	s := t.snapshot()
	return t.d.SettleTemplate("glider", s.Height/2-1, s.Width/2-1)
}

//cmdFit resizes the universe to the field view, all cells become dead
func (t *ConsoleUI) cmdFit(_ *gocui.View) error {
	v, err := t.g.View(fieldView)
	if err != nil {
		return nil
	}
	w, h := v.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	return t.d.Resize(w, h)
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.d.ToggleCell(cy, cx)
	return nil
}
