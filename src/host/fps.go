package host

import (
	"math"
	"time"
)

//DefFPSWindow is the number of frames the FPS meter keeps
const DefFPSWindow = 100

//FPSStats is the frame-rate summary over the meter window
type FPSStats struct {
	Latest float64
	Mean   float64
	Min    float64
	Max    float64
}

//FPS is the rolling frame-rate meter, it keeps the rates of the last DefFPSWindow frames
type FPS struct {
	then   time.Time
	latest float64
	frames []float64
}

func NewFPS(now time.Time) *FPS {
	return &FPS{then: now, frames: make([]float64, 0, DefFPSWindow)}
}

//Frame records the frame finished at now and returns its rate
//a frame with non-positive duration is not recorded
func (f *FPS) Frame(now time.Time) float64 {
	delta := now.Sub(f.then)
	if delta <= 0 {
		return f.latest
	}
	f.then = now
	f.latest = float64(time.Second) / float64(delta)
	if len(f.frames) == DefFPSWindow {
		copy(f.frames, f.frames[1:])
		f.frames = f.frames[:DefFPSWindow-1]
	}
	f.frames = append(f.frames, f.latest)
	return f.latest
}

//Reset restarts the measuring from now, recorded frames are kept
func (f *FPS) Reset(now time.Time) {
	f.then = now
}

//Stats calculates the summary over the recorded frames
func (f *FPS) Stats() FPSStats {
	if len(f.frames) == 0 {
		return FPSStats{}
	}
	s := FPSStats{Latest: f.latest, Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	for _, r := range f.frames {
		sum += r
		s.Min = math.Min(s.Min, r)
		s.Max = math.Max(s.Max, r)
	}
	s.Mean = sum / float64(len(f.frames))
	return s
}

//Len returns the number of recorded frames
func (f *FPS) Len() int {
	return len(f.frames)
}
