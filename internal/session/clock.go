package session

import "time"

const tickInterval = time.Second

type clockKind int

const (
	restTick clockKind = iota
	stopwatchTick
)

// clockEvent is what a clock sends back to its owner on every tick. gen identifies the run
// that produced it; the owner drops events whose generation is stale.
type clockEvent struct {
	kind clockKind
	gen  uint64
}

// RestTimer counts down once per second from a fixed period. It does not lock: the owner
// calls every method, including tick, while holding its own lock.
type RestTimer struct {
	sched     Scheduler
	emit      func(clockEvent)
	period    int
	remaining int
	running   bool
	gen       uint64
	handle    Timer
}

func newRestTimer(sched Scheduler, period time.Duration, emit func(clockEvent)) *RestTimer {
	return &RestTimer{sched: sched, emit: emit, period: int(period / time.Second)}
}

// Arm (re)starts the countdown from the full period.
func (t *RestTimer) Arm() {
	t.Stop()
	t.remaining = t.period
	t.running = true
	gen := t.gen
	t.handle = t.sched.Every(tickInterval, func() {
		t.emit(clockEvent{kind: restTick, gen: gen})
	})
}

// Stop cancels the countdown. Ticks already in flight become stale.
func (t *RestTimer) Stop() {
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
	t.running = false
	t.remaining = 0
	t.gen++
}

// tick applies one second. applied is false for a stale event; done reports that the
// countdown just reached zero.
func (t *RestTimer) tick(gen uint64) (applied, done bool) {
	if !t.running || gen != t.gen {
		return false, false
	}
	t.remaining--
	if t.remaining <= 0 {
		t.Stop()
		return true, true
	}
	return true, false
}

func (t *RestTimer) Running() bool  { return t.running }
func (t *RestTimer) Remaining() int { return t.remaining }

// Stopwatch counts up once per second while running. Same locking contract as RestTimer.
type Stopwatch struct {
	sched   Scheduler
	emit    func(clockEvent)
	elapsed int
	running bool
	gen     uint64
	handle  Timer
}

func newStopwatch(sched Scheduler, emit func(clockEvent)) *Stopwatch {
	return &Stopwatch{sched: sched, emit: emit}
}

func (w *Stopwatch) Start() {
	if w.running {
		return
	}
	w.gen++
	w.running = true
	gen := w.gen
	w.handle = w.sched.Every(tickInterval, func() {
		w.emit(clockEvent{kind: stopwatchTick, gen: gen})
	})
}

// Pause stops ticking and keeps the elapsed count.
func (w *Stopwatch) Pause() {
	if w.handle != nil {
		w.handle.Stop()
		w.handle = nil
	}
	w.running = false
	w.gen++
}

// Toggle starts a paused stopwatch or pauses a running one.
func (w *Stopwatch) Toggle() {
	if w.running {
		w.Pause()
		return
	}
	w.Start()
}

// Reset pauses and zeroes the stopwatch.
func (w *Stopwatch) Reset() {
	w.Pause()
	w.elapsed = 0
}

func (w *Stopwatch) tick(gen uint64) bool {
	if !w.running || gen != w.gen {
		return false
	}
	w.elapsed++
	return true
}

func (w *Stopwatch) Running() bool { return w.running }
func (w *Stopwatch) Elapsed() int  { return w.elapsed }
