package match

import "football-sim/internal/match/vector"

// PlayerState identifies a node in the per-role behavior state machine.
// Common states run one shared handler that branches on position group; the
// rest are owned by a single role and rejected for everyone else.
type PlayerState int

const (
	// common states, valid for every role
	StateInjured PlayerState = iota
	StateRunning
	StateTackling
	StateShooting
	StatePassing
	StateReturning
	StateResting
	StateTakeBall

	// goalkeeper
	GoalkeeperStanding
	GoalkeeperWalking
	GoalkeeperAttentive
	GoalkeeperComingOut
	GoalkeeperPreparingForSave
	GoalkeeperDiving
	GoalkeeperCatching
	GoalkeeperHoldingBall
	GoalkeeperDistributing
	GoalkeeperUnderPressure
	GoalkeeperReturningToGoal
	GoalkeeperSweeping

	// defender
	DefenderStanding
	DefenderWalking
	DefenderHoldingLine
	DefenderMarking
	DefenderCovering
	DefenderPressing
	DefenderIntercepting
	DefenderHeading
	DefenderClearing
	DefenderOffsideTrap
	DefenderTrackingBack

	// midfielder
	MidfielderStanding
	MidfielderWalking
	MidfielderDistributing
	MidfielderSupportingAttack
	MidfielderHoldingPossession
	MidfielderSwitchingPlay
	MidfielderCrossing
	MidfielderPressing
	MidfielderIntercepting
	MidfielderTrackingRunner
	MidfielderCreatingSpace
	MidfielderDistanceShooting

	// forward
	ForwardStanding
	ForwardWalking
	ForwardRunningInBehind
	ForwardCreatingSpace
	ForwardPressing
	ForwardDribbling
	ForwardHeading
	ForwardHoldingUpPlay
	ForwardAssisting
	ForwardOffsideTrapBreaking
)

var stateNames = map[PlayerState]string{
	StateInjured:   "injured",
	StateRunning:   "running",
	StateTackling:  "tackling",
	StateShooting:  "shooting",
	StatePassing:   "passing",
	StateReturning: "returning",
	StateResting:   "resting",
	StateTakeBall:  "take_ball",

	GoalkeeperStanding:         "gk_standing",
	GoalkeeperWalking:          "gk_walking",
	GoalkeeperAttentive:        "gk_attentive",
	GoalkeeperComingOut:        "gk_coming_out",
	GoalkeeperPreparingForSave: "gk_preparing_for_save",
	GoalkeeperDiving:           "gk_diving",
	GoalkeeperCatching:         "gk_catching",
	GoalkeeperHoldingBall:      "gk_holding_ball",
	GoalkeeperDistributing:     "gk_distributing",
	GoalkeeperUnderPressure:    "gk_under_pressure",
	GoalkeeperReturningToGoal:  "gk_returning_to_goal",
	GoalkeeperSweeping:         "gk_sweeping",

	DefenderStanding:     "def_standing",
	DefenderWalking:      "def_walking",
	DefenderHoldingLine:  "def_holding_line",
	DefenderMarking:      "def_marking",
	DefenderCovering:     "def_covering",
	DefenderPressing:     "def_pressing",
	DefenderIntercepting: "def_intercepting",
	DefenderHeading:      "def_heading",
	DefenderClearing:     "def_clearing",
	DefenderOffsideTrap:  "def_offside_trap",
	DefenderTrackingBack: "def_tracking_back",

	MidfielderStanding:          "mid_standing",
	MidfielderWalking:           "mid_walking",
	MidfielderDistributing:      "mid_distributing",
	MidfielderSupportingAttack:  "mid_supporting_attack",
	MidfielderHoldingPossession: "mid_holding_possession",
	MidfielderSwitchingPlay:     "mid_switching_play",
	MidfielderCrossing:          "mid_crossing",
	MidfielderPressing:          "mid_pressing",
	MidfielderIntercepting:      "mid_intercepting",
	MidfielderTrackingRunner:    "mid_tracking_runner",
	MidfielderCreatingSpace:     "mid_creating_space",
	MidfielderDistanceShooting:  "mid_distance_shooting",

	ForwardStanding:            "fwd_standing",
	ForwardWalking:             "fwd_walking",
	ForwardRunningInBehind:     "fwd_running_in_behind",
	ForwardCreatingSpace:       "fwd_creating_space",
	ForwardPressing:            "fwd_pressing",
	ForwardDribbling:           "fwd_dribbling",
	ForwardHeading:             "fwd_heading",
	ForwardHoldingUpPlay:       "fwd_holding_up_play",
	ForwardAssisting:           "fwd_assisting",
	ForwardOffsideTrapBreaking: "fwd_offside_trap_breaking",
}

func (s PlayerState) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// stateOwners maps role-owned states to their group; common states are absent
// and valid everywhere.
var stateOwners = map[PlayerState]PositionGroup{}

func init() {
	for s := GoalkeeperStanding; s <= GoalkeeperSweeping; s++ {
		stateOwners[s] = GroupGoalkeeper
	}
	for s := DefenderStanding; s <= DefenderTrackingBack; s++ {
		stateOwners[s] = GroupDefender
	}
	for s := MidfielderStanding; s <= MidfielderDistanceShooting; s++ {
		stateOwners[s] = GroupMidfielder
	}
	for s := ForwardStanding; s <= ForwardOffsideTrapBreaking; s++ {
		stateOwners[s] = GroupForward
	}
}

// ValidFor reports whether the state may be entered by the given group.
func (s PlayerState) ValidFor(g PositionGroup) bool {
	owner, roleOwned := stateOwners[s]
	return !roleOwned || owner == g
}

// DefaultState is the idle state a role falls back to.
func DefaultState(g PositionGroup) PlayerState {
	switch g {
	case GroupGoalkeeper:
		return GoalkeeperStanding
	case GroupDefender:
		return DefenderStanding
	case GroupMidfielder:
		return MidfielderStanding
	default:
		return ForwardStanding
	}
}

// StateChangeResult is what a handler decided this tick: an optional new
// state, an optional velocity, and events to dispatch.
type StateChangeResult struct {
	State       PlayerState
	HasState    bool
	Velocity    vector.Vector3
	HasVelocity bool
	Events      []Event
}

func toState(s PlayerState) *StateChangeResult {
	return &StateChangeResult{State: s, HasState: true}
}

func toStateWith(s PlayerState, events ...Event) *StateChangeResult {
	return &StateChangeResult{State: s, HasState: true, Events: events}
}

func (r *StateChangeResult) WithVelocity(v vector.Vector3) *StateChangeResult {
	r.Velocity = v
	r.HasVelocity = true
	return r
}

// StateContext is the read-mostly view a handler works against. Handlers may
// draw from the match RNG and mutate only their own player.
type StateContext struct {
	Player      *MatchPlayer
	Match       *MatchContext
	Tick        *GameTickContext
	InStateTime uint64
}

// StateHandler is one FSM node. TryFast is the cheap early-out check;
// ProcessSlow runs only when TryFast keeps the state; Velocity supplies
// movement when no transition fired; ProcessConditions applies fatigue.
type StateHandler interface {
	TryFast(ctx *StateContext) *StateChangeResult
	ProcessSlow(ctx *StateContext) *StateChangeResult
	Velocity(ctx *StateContext) (vector.Vector3, bool)
	ProcessConditions(ctx *StateContext)
}

var stateHandlers = map[PlayerState]StateHandler{}

func registerState(s PlayerState, h StateHandler) {
	stateHandlers[s] = h
}

// processPlayerState runs one FSM step for the player and returns emitted
// events. Transitions apply immediately; movement is applied later by the
// field, after event dispatch.
func processPlayerState(player *MatchPlayer, ctx *MatchContext, tick *GameTickContext) []Event {
	handler, ok := stateHandlers[player.State]
	if !ok {
		player.ChangeState(DefaultState(player.Tactical.Current.Group()))
		return nil
	}

	sctx := &StateContext{
		Player:      player,
		Match:       ctx,
		Tick:        tick,
		InStateTime: player.InStateTime,
	}

	handler.ProcessConditions(sctx)

	result := handler.TryFast(sctx)
	if result == nil {
		result = handler.ProcessSlow(sctx)
	}

	var events []Event
	if result != nil {
		events = result.Events
		if result.HasState {
			next := result.State
			if !next.ValidFor(player.Tactical.Current.Group()) {
				ctx.Logger.Debug().
					Int("player_id", player.ID).
					Str("from", player.State.String()).
					Str("to", next.String()).
					Msg("rejected state transition")
				next = DefaultState(player.Tactical.Current.Group())
			}
			player.ChangeState(next)
		} else {
			player.InStateTime += TickIntervalMs
		}
		if result.HasVelocity {
			player.SetVelocity(result.Velocity)
		}
		return events
	}

	player.InStateTime += TickIntervalMs
	if v, ok := handler.Velocity(sctx); ok {
		player.SetVelocity(v)
	}
	return events
}
