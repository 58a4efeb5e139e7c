// Package engine implements the Ember runtime core: a single-threaded,
// interrupt-tolerant process engine that owns the widget tree, the
// clip/damage state, the input router and the timer scheduler.
//
// An [Engine] is an explicit context object; multiple independent engines
// can coexist. All tree, clip and timer mutation happens on one
// cooperative execution context through [Engine.RunPass], which never
// blocks and returns the number of work units performed so the caller's
// main loop can decide to idle:
//
//	eng, err := engine.New(engine.Options{Display: fb})
//	if err != nil { ... }
//	for {
//		if eng.RunPass() == 0 {
//			sleepUntilNextTick()
//		}
//	}
//
// The only operations safe to call from interrupt or driver-callback
// context are [Engine.ReportTimeAdvance] and [Engine.ReportPointerSample];
// both write single independently-consistent fields and never touch the
// tree, clip state or timers.
package engine
