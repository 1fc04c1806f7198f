package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/integrii/flaggy"
	"github.com/pkg/profile"

	"torlife/src/host"
	"torlife/src/universe"
	"torlife/src/view"
)

type EnvOptions struct {
	interactive bool
	print       bool
	profile     string
	every       int
}

var profiles = map[string]func(p *profile.Profile){
	"cpu": profile.CPUProfile,
	"mem": profile.MemProfileAllocs,
}

func main() {
	eo, o := initOptions()

	if eo.profile != "" {
		defer profile.Start(profiles[eo.profile], profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	d, err := host.New(o, nil)
	if err != nil {
		log.Fatalln(err)
	}
	defer d.Close()

	var v host.Viewer
	if eo.interactive {
		ui, err := view.NewConsoleUI()
		if err != nil {
			log.Fatalln(err)
		}
		v = ui
	} else {
		v = view.NewConsoleOut(os.Stdout, eo.every)
	}
	d.RegisterViewer(v)

	if err := v.Start(); err != nil {
		log.Panicln(err)
	}

	if eo.print {
		fmt.Print(d.String())
	}
}

func initOptions() (eo *EnvOptions, o *host.Options) {
	opts := host.DefaultOptions
	o = &opts
	eo = &EnvOptions{every: 10}

	flaggy.SetName("torlife")
	flaggy.SetDescription("Conway's \"Life\" on a toroidal field")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&o.Width, "x", "width", "Width of a simulation field")
	flaggy.Int(&o.Height, "y", "height", "Height of a simulation field")
	flaggy.Duration(&o.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&o.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps generations, 0 is unlimited (interactive mode only)")
	flaggy.Int(&o.TicksPerFrame, "f", "ticks", "Generations calculated per step")
	flaggy.String(&o.Template, "t", "template", "Template to settle ["+strings.Join(universe.TemplateNames(), "|")+"], the seed pattern is used by default")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.print, "p", "print", "Print the field when the simulation is finished")
	flaggy.Int(&eo.every, "e", "every", "Report the progress every N steps")
	flaggy.String(&eo.profile, "", "profile", "Write the profile to the current directory [cpu|mem]")

	flaggy.Parse()

	if err := o.Validate(); err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	if o.Template != "" {
		if _, ok := universe.LookupTemplate(o.Template); !ok {
			flaggy.ShowHelpAndExit("unknown template")
		}
	}
	if _, ok := profiles[eo.profile]; eo.profile != "" && !ok {
		flaggy.ShowHelpAndExit("unknown profile")
	}
	if !eo.interactive && o.MaxSteps == 0 {
		flaggy.ShowHelpAndExit("maxSteps must be set in non-interactive mode")
	}

	return
}
