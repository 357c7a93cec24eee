package workspace

import (
	"sync/atomic"

	"github.com/dshills/edcore/internal/command"
)

// Subscription is the callback signature a host registers to observe
// state changes on a buffer or view (spec §6 "subscribe(callback) ->
// SubscriptionId"). It is invoked synchronously, on the goroutine that
// executed the command that produced the StateChange.
type Subscription func(command.StateChange)

// subscriptionID is an opaque handle returned by Subscribe, used only to
// Unsubscribe later.
type subscriptionID uint64

var nextSubscriptionID uint64

func newSubscriptionID() subscriptionID {
	return subscriptionID(atomic.AddUint64(&nextSubscriptionID, 1))
}

// dispatcher delivers StateChange notifications to a list of
// Subscriptions sequentially, recovering any subscriber panic so one
// broken callback cannot corrupt command execution for the rest. It is
// grounded in the teacher's internal/event/dispatch.SyncDispatcher, pared
// down to the subset a headless kernel needs: no per-dispatch timeout and
// no context.Context, since core operations have no suspension point
// (spec §5) for a subscriber to hang on. Stats are tracked the same way,
// with sync/atomic counters rather than a mutex.
type dispatcher struct {
	dispatched atomic.Uint64
	panicked   atomic.Uint64
}

// dispatchStats is the subset of the teacher's SyncDispatcherStats this
// trimmed dispatcher still tracks.
type dispatchStats struct {
	Dispatched uint64
	Panicked   uint64
}

func (d *dispatcher) stats() dispatchStats {
	return dispatchStats{Dispatched: d.dispatched.Load(), Panicked: d.panicked.Load()}
}

// dispatch invokes every sub in subs with sc, recovering a panic from any
// one of them and continuing with the rest.
func (d *dispatcher) dispatch(subs []subscriber, sc command.StateChange) {
	for _, s := range subs {
		d.dispatched.Add(1)
		d.invoke(s.fn, sc)
	}
}

func (d *dispatcher) invoke(fn Subscription, sc command.StateChange) {
	defer func() {
		if r := recover(); r != nil {
			d.panicked.Add(1)
		}
	}()
	fn(sc)
}

type subscriber struct {
	id subscriptionID
	fn Subscription
}
