package match

import (
	"testing"

	"football-sim/internal/match/vector"
)

// TestStateOwnership verifies common states are valid everywhere and
// role-owned states only for their role.
func TestStateOwnership(t *testing.T) {
	tests := []struct {
		state PlayerState
		group PositionGroup
		valid bool
	}{
		{StateRunning, GroupGoalkeeper, true},
		{StateRunning, GroupForward, true},
		{StateTackling, GroupDefender, true},
		{GoalkeeperDiving, GroupGoalkeeper, true},
		{GoalkeeperDiving, GroupDefender, false},
		{DefenderMarking, GroupDefender, true},
		{DefenderMarking, GroupMidfielder, false},
		{MidfielderCrossing, GroupMidfielder, true},
		{MidfielderCrossing, GroupForward, false},
		{ForwardRunningInBehind, GroupForward, true},
		{ForwardRunningInBehind, GroupGoalkeeper, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.ValidFor(tt.group); got != tt.valid {
				t.Errorf("%v.ValidFor(%v) = %v, want %v", tt.state, tt.group, got, tt.valid)
			}
		})
	}
}

// TestDefaultStates verifies each role idles in its own standing state.
func TestDefaultStates(t *testing.T) {
	tests := []struct {
		group    PositionGroup
		expected PlayerState
	}{
		{GroupGoalkeeper, GoalkeeperStanding},
		{GroupDefender, DefenderStanding},
		{GroupMidfielder, MidfielderStanding},
		{GroupForward, ForwardStanding},
	}

	for _, tt := range tests {
		if got := DefaultState(tt.group); got != tt.expected {
			t.Errorf("DefaultState(%v) = %v, want %v", tt.group, got, tt.expected)
		}
	}
}

// TestEveryStateHasHandler verifies the registry covers the whole state
// space, so no player can ever strand in an unhandled state.
func TestEveryStateHasHandler(t *testing.T) {
	for s := StateInjured; s <= ForwardOffsideTrapBreaking; s++ {
		if _, ok := stateHandlers[s]; !ok {
			t.Errorf("State %v has no registered handler", s)
		}
	}
}

// TestInvalidTransitionFallsBack verifies a cross-role transition is rejected
// and lands in the role default.
func TestInvalidTransitionFallsBack(t *testing.T) {
	ctx := testContext(1)

	p := testPlayer(1, 1, 12)
	p.SetupOnField(PositionStriker, SideLeft)
	p.OnField = true
	ctx.Players.Add(p)

	// force a state owned by another role; the dive times out and its exit
	// transition is rejected back to the forward default
	p.State = GoalkeeperDiving
	p.InStateTime = 0

	ball := NewBall()
	for i := 0; i < 100; i++ {
		tick := NewGameTickContext(ctx, ball)
		processPlayerState(p, ctx, tick)
	}

	if owner, roleOwned := stateOwners[p.State]; roleOwned && owner != GroupForward {
		t.Errorf("Player stuck in foreign state %v", p.State)
	}
}

// TestRemainAccumulatesStateTime verifies staying in a state advances its
// clock by one tick.
func TestRemainAccumulatesStateTime(t *testing.T) {
	ctx := testContext(1)

	p := testPlayer(1, 1, 12)
	p.SetupOnField(PositionDefenderCenter, SideLeft)
	p.OnField = true
	ctx.Players.Add(p)

	// a far-away ball keeps the defender idle
	ball := NewBall()
	ball.Position = vector.New2D(FieldWidth-10, 10)
	ball.SetOwner(99, 0)

	before := p.State
	tick := NewGameTickContext(ctx, ball)
	processPlayerState(p, ctx, tick)

	if p.State == before && p.InStateTime != TickIntervalMs {
		t.Errorf("Expected in-state time %d after remaining, got %d", TickIntervalMs, p.InStateTime)
	}
}

// TestChangeStateResetsClock verifies transitions zero the state clock.
func TestChangeStateResetsClock(t *testing.T) {
	p := testPlayer(1, 1, 12)
	p.SetupOnField(PositionStriker, SideLeft)
	p.InStateTime = 500

	p.ChangeState(StateRunning)

	if p.State != StateRunning || p.InStateTime != 0 {
		t.Errorf("Expected running with zero clock, got %v at %d", p.State, p.InStateTime)
	}
}
