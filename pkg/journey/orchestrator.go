package journey

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/query"
)

type State string

const (
	StateIdle              State = "idle"
	StateOutboundSearching State = "outbound_searching"
	StateOutboundSelected  State = "outbound_selected"
	StateReturnSearching   State = "return_searching"
	StateReturnSelected    State = "return_selected"
)

// Orchestrator drives the outbound/return search flow. Every transition
// holds the mutex end to end, so a transition either fully commits or fully
// rolls back and no observer ever sees a half-applied booking; the only
// state that always changes is the loading flag, cleared in a defer.
type Orchestrator struct {
	client *query.Client

	state   State
	booking ctbs.TripBooking

	outboundRoutes []ctbs.RouteSummary
	returnRoutes   []ctbs.RouteSummary

	loadingOutbound bool
	loadingReturn   bool

	// Last transition failure, empty when the last transition succeeded.
	// Holds error codes, not user-facing text; presentation localises.
	err string

	lock chan struct{}
}

// Snapshot is a deep copy of the orchestrator's observable state, safe to
// hand to a render layer while transitions continue.
type Snapshot struct {
	State   State            `json:"state"`
	Booking ctbs.TripBooking `json:"booking"`

	OutboundRoutes []ctbs.RouteSummary `json:"outbound_routes"`
	ReturnRoutes   []ctbs.RouteSummary `json:"return_routes"`

	LoadingOutbound bool   `json:"loading_outbound"`
	LoadingReturn   bool   `json:"loading_return"`
	Error           string `json:"error,omitempty"`
}

func NewOrchestrator(client *query.Client) *Orchestrator {
	o := &Orchestrator{
		client: client,
		state:  StateIdle,
		lock:   make(chan struct{}, 1),
	}
	o.lock <- struct{}{}

	return o
}

// acquire serialises transitions while staying cancellable: a caller whose
// context dies while another transition is in flight gives up cleanly
// instead of deadlocking.
func (o *Orchestrator) acquire(ctx context.Context) error {
	select {
	case <-o.lock:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) release() {
	o.lock <- struct{}{}
}

// SearchOutbound replaces the outbound route list. Any prior return
// selection and results are cleared first: an outbound change invalidates
// return compatibility regardless of whether the search then succeeds.
func (o *Orchestrator) SearchOutbound(ctx context.Context, params ctbs.RouteSearchParams) error {
	if err := o.acquire(ctx); err != nil {
		return err
	}
	defer o.release()

	o.state = StateOutboundSearching
	o.loadingOutbound = true
	o.err = ""
	o.clearReturnLocked()

	defer func() { o.loadingOutbound = false }()

	response := o.client.GetRoutes(ctx, params)
	if !response.Success {
		o.err = string(response.Error.Code)
		o.state = o.restingStateLocked()
		return response.Error
	}

	o.outboundRoutes = response.Data
	o.state = o.restingStateLocked()

	log.Debug().Int("routes", len(response.Data)).Str("from", params.IDFrom).Str("to", params.IDTo).Msg("Outbound search complete")

	return nil
}

// SelectOutbound records the chosen outbound route together with the search
// parameters it was found with, and clears any return state.
func (o *Orchestrator) SelectOutbound(ctx context.Context, route ctbs.RouteSummary, params ctbs.RouteSearchParams) error {
	if err := o.acquire(ctx); err != nil {
		return err
	}
	defer o.release()

	selection := ctbs.NewOutboundSelection(route, params)

	o.booking.Outbound = &selection
	o.clearReturnLocked()
	o.state = StateOutboundSelected
	o.err = ""

	return nil
}

// SearchReturn searches return routes for the held outbound. The minimum
// return date rule is applied before any network call; a failed validation
// or search leaves the route lists untouched.
func (o *Orchestrator) SearchReturn(ctx context.Context, returnDate string) error {
	if err := o.acquire(ctx); err != nil {
		return err
	}
	defer o.release()

	if o.booking.Outbound == nil {
		o.err = "no_outbound_selected"
		return &NoOutboundError{}
	}

	o.state = StateReturnSearching
	o.loadingReturn = true
	o.err = ""

	defer func() { o.loadingReturn = false }()

	response := o.client.GetRoutesReturn(ctx, *o.booking.Outbound, returnDate)
	if !response.Success {
		o.err = string(response.Error.Code)
		o.state = StateOutboundSelected
		return response.Error
	}

	o.returnRoutes = response.Data
	o.booking.RoundTrip = true
	o.state = StateOutboundSelected

	return nil
}

// SelectReturn stores the chosen return route. It does not build an order;
// that is the order builder's job.
func (o *Orchestrator) SelectReturn(ctx context.Context, route ctbs.RouteSummary) error {
	if err := o.acquire(ctx); err != nil {
		return err
	}
	defer o.release()

	if o.booking.Outbound == nil {
		o.err = "no_outbound_selected"
		return &NoOutboundError{}
	}

	returnRoute := route
	o.booking.Return = &returnRoute
	o.booking.RoundTrip = true
	o.state = StateReturnSelected
	o.err = ""

	return nil
}

// ToggleRoundTrip flips the round-trip flag and returns the new value.
// Disabling it drops the return selection and results.
func (o *Orchestrator) ToggleRoundTrip(ctx context.Context) (bool, error) {
	if err := o.acquire(ctx); err != nil {
		return false, err
	}
	defer o.release()

	o.booking.RoundTrip = !o.booking.RoundTrip

	if !o.booking.RoundTrip {
		o.clearReturnLocked()

		if o.booking.Outbound != nil {
			o.state = StateOutboundSelected
		}
	}

	return o.booking.RoundTrip, nil
}

// ClearSelection resets the whole session back to idle.
func (o *Orchestrator) ClearSelection(ctx context.Context) error {
	if err := o.acquire(ctx); err != nil {
		return err
	}
	defer o.release()

	o.booking = ctbs.TripBooking{}
	o.outboundRoutes = nil
	o.returnRoutes = nil
	o.state = StateIdle
	o.err = ""

	return nil
}

// Snapshot returns a deep copy of the current state.
func (o *Orchestrator) Snapshot(ctx context.Context) (Snapshot, error) {
	if err := o.acquire(ctx); err != nil {
		return Snapshot{}, err
	}
	defer o.release()

	snapshot := Snapshot{
		State:           o.state,
		LoadingOutbound: o.loadingOutbound,
		LoadingReturn:   o.loadingReturn,
		Error:           o.err,
	}

	if err := copier.CopyWithOption(&snapshot.Booking, &o.booking, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy booking for snapshot")
	}
	if err := copier.CopyWithOption(&snapshot.OutboundRoutes, &o.outboundRoutes, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy outbound routes for snapshot")
	}
	if err := copier.CopyWithOption(&snapshot.ReturnRoutes, &o.returnRoutes, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy return routes for snapshot")
	}

	return snapshot, nil
}

// restingStateLocked is the state a finished search settles in: an
// outbound selection that survived the transition keeps its label.
func (o *Orchestrator) restingStateLocked() State {
	if o.booking.Outbound != nil {
		return StateOutboundSelected
	}
	return StateIdle
}

func (o *Orchestrator) clearReturnLocked() {
	o.booking.Return = nil
	o.returnRoutes = nil
}

type NoOutboundError struct{}

func (e *NoOutboundError) Error() string {
	return "journey: return search requires an outbound selection"
}
