package orion

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

type frame struct {
	Total time.Duration

	GetCurrentTexture time.Duration
	GameUpdate        time.Duration
	GameDraw          time.Duration
}

// FrameProfile records how long the phases of the last frames took.
var FrameProfile frameProfile

type frameProfile struct {
	frameCount int
	frames     [60 * 10]frame

	timeStartFrame             time.Time
	timeStartGameDraw          time.Time
	timeStartGameUpdate        time.Time
	timeStartGetCurrentTexture time.Time
	timeEndFrame               time.Time

	mem runtime.MemStats
}

func (d *frameProfile) StartFrame() {
	d.startFrameAt(time.Now())
}

func (d *frameProfile) startFrameAt(now time.Time) {
	if !d.timeStartFrame.IsZero() {
		d.frames[d.frameCount%len(d.frames)] = frame{
			Total:             now.Sub(d.timeStartFrame),
			GetCurrentTexture: d.timeStartGameUpdate.Sub(d.timeStartGetCurrentTexture),
			GameUpdate:        d.timeStartGameDraw.Sub(d.timeStartGameUpdate),
			GameDraw:          d.timeEndFrame.Sub(d.timeStartGameDraw),
		}

		d.frameCount += 1
	}

	d.timeStartFrame = now
}

func (d *frameProfile) StartGetCurrentTexture() {
	d.timeStartGetCurrentTexture = time.Now()
}

func (d *frameProfile) StartGameUpdate() {
	d.timeStartGameUpdate = time.Now()
}

func (d *frameProfile) StartGameDraw() {
	d.timeStartGameDraw = time.Now()
}

func (d *frameProfile) EndFrame() {
	d.timeEndFrame = time.Now()
}

// average returns the mean of all recorded frames.
func (d *frameProfile) average() frame {
	var avg frame
	var frameCount int

	for _, frame := range d.frames {
		if frame.Total <= 0 {
			continue
		}

		frameCount += 1
		avg.Total += frame.Total
		avg.GetCurrentTexture += frame.GetCurrentTexture
		avg.GameUpdate += frame.GameUpdate
		avg.GameDraw += frame.GameDraw
	}

	if frameCount == 0 {
		return frame{}
	}

	n := time.Duration(frameCount)
	avg.Total /= n
	avg.GetCurrentTexture /= n
	avg.GameUpdate /= n
	avg.GameDraw /= n

	return avg
}

func (d *frameProfile) fps() float64 {
	avg := d.average()
	if avg.Total == 0 {
		return 0
	}

	return 1.0 / avg.Total.Seconds()
}

// logSummary writes the average frame timings and memory statistics
// to the debug log once every len(frames) frames.
func (d *frameProfile) logSummary() {
	if d.frameCount == 0 || d.frameCount%len(d.frames) != 0 {
		return
	}

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	runtime.ReadMemStats(&d.mem)

	lastCycle := (d.mem.NumGC + 255) % 256
	lastCycleDur := time.Duration(d.mem.PauseNs[lastCycle])

	avg := d.average()

	slog.Debug(
		"Frame timings",
		slog.Float64("fps", d.fps()),
		slog.Int("frames", d.frameCount),
		slog.Duration("getCurrentTexture", avg.GetCurrentTexture),
		slog.Duration("update", avg.GameUpdate),
		slog.Duration("draw", avg.GameDraw),
		slog.Uint64("heapObjects", d.mem.HeapObjects),
		slog.Uint64("heapInUse", d.mem.HeapInuse),
		slog.Uint64("gcCycles", uint64(d.mem.NumGC)),
		slog.Duration("gcPause", lastCycleDur),
	)
}
