package match

import (
	"testing"

	"football-sim/internal/match/vector"
)

// TestBallOwnershipProtection verifies an in-flight ball cannot be claimed on
// any tick of the protection window, and becomes claimable right after it.
func TestBallOwnershipProtection(t *testing.T) {
	ctx := testContext(1)
	ball := NewBall()

	claimer := testPlayer(1, 1, 12)
	claimer.SetupOnField(PositionStriker, SideLeft)
	claimer.OnField = true
	claimer.Position = ball.Position
	ctx.Players.Add(claimer)

	ball.Release(vector.Zero(), 99, PassFlightTicks)

	// the claimer stands on the ball for the whole window; no claim may land
	for tick := 1; tick <= PassFlightTicks; tick++ {
		events := &EventCollection{}
		ball.Update(ctx, events)
		for _, e := range events.Events() {
			if e.Kind == EventClaimBall || e.Kind == EventGainBall {
				t.Fatalf("Ball claimed on tick %d of a %d-tick window: %v", tick, PassFlightTicks, e.Kind)
			}
		}
	}
	if ball.InFlight() {
		t.Fatal("Window should be spent after its full tick count")
	}

	events := &EventCollection{}
	ball.Update(ctx, events)
	claimed := false
	for _, e := range events.Events() {
		if e.Kind == EventClaimBall && e.PlayerID == 1 {
			claimed = true
		}
	}
	if !claimed {
		t.Errorf("Expected a claim once protection expired, got %v", events.Events())
	}
}

// TestTackleBlockedDuringFlight verifies a tackle attempt against a protected
// carrier never rolls the duel, so ownership cannot change inside the window.
func TestTackleBlockedDuringFlight(t *testing.T) {
	ctx := testContext(1)
	ball := NewBall()

	carrier := testPlayer(10, 2, 12)
	carrier.SetupOnField(PositionMidfielderCenter, SideRight)
	carrier.OnField = true
	carrier.Position = vector.New2D(400, 270)
	ctx.Players.Add(carrier)

	tackler := testPlayer(1, 1, 18)
	tackler.SetupOnField(PositionDefenderCenter, SideLeft)
	tackler.OnField = true
	tackler.Position = carrier.Position.Add(vector.New2D(3, 0))
	ctx.Players.Add(tackler)

	ball.SetOwner(carrier.ID, GainFlightTicks)

	for tick := 0; ball.InFlight(); tick++ {
		tackler.State = StateTackling
		tackler.InStateTime = 0

		gameTick := NewGameTickContext(ctx, ball)
		events := processPlayerState(tackler, ctx, gameTick)
		for _, e := range events {
			if e.Kind == EventTacklingBall || e.Kind == EventCommitFoul {
				t.Fatalf("Duel rolled on tick %d while ball in flight: %v", tick, e.Kind)
			}
		}

		ball.Update(ctx, &EventCollection{})
		if ball.CurrentOwner != carrier.ID {
			t.Fatalf("Ownership changed on tick %d while protected", tick)
		}
	}
}

// TestBallClaimAfterFlight verifies a loose ball is claimed once protection
// expires, and that taking from an opponent emits a gain.
func TestBallClaimAfterFlight(t *testing.T) {
	tests := []struct {
		name          string
		prevOwnerTeam int
		expected      EventKind
	}{
		{"from teammate", 1, EventClaimBall},
		{"from opponent", 2, EventGainBall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(1)
			ball := NewBall()

			prev := testPlayer(99, tt.prevOwnerTeam, 12)
			prev.SetupOnField(PositionMidfielderCenter, SideRight)
			prev.OnField = true
			prev.Position = vector.New2D(100, 100)
			ctx.Players.Add(prev)

			claimer := testPlayer(1, 1, 12)
			claimer.SetupOnField(PositionStriker, SideLeft)
			claimer.OnField = true
			claimer.Position = ball.Position
			ctx.Players.Add(claimer)

			ball.Release(vector.Zero(), 99, 0)

			events := &EventCollection{}
			ball.Update(ctx, events)

			found := false
			for _, e := range events.Events() {
				if e.Kind == tt.expected && e.PlayerID == 1 {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected %v for player 1, got %v", tt.expected, events.Events())
			}
		})
	}
}

// TestBallClaimOutOfReach verifies a high ball cannot be claimed from the
// ground.
func TestBallClaimOutOfReach(t *testing.T) {
	ctx := testContext(1)
	ball := NewBall()

	claimer := testPlayer(1, 1, 12)
	claimer.SetupOnField(PositionStriker, SideLeft)
	claimer.OnField = true
	claimer.Position = ball.Position
	ctx.Players.Add(claimer)

	ball.Position.Z = 5.0
	ball.Velocity.Z = 0.5 // still climbing, stays airborne this tick

	events := &EventCollection{}
	ball.Update(ctx, events)

	if events.Len() != 0 {
		t.Errorf("Expected no claim on a ball 5m up, got %v", events.Events())
	}
}

// TestBallFollowsOwner verifies an owned ball tracks its owner.
func TestBallFollowsOwner(t *testing.T) {
	ctx := testContext(1)
	ball := NewBall()

	owner := testPlayer(1, 1, 12)
	owner.SetupOnField(PositionStriker, SideLeft)
	owner.OnField = true
	owner.Position = vector.New2D(300, 200)
	owner.Velocity = vector.New2D(1, 0)
	ctx.Players.Add(owner)

	ball.SetOwner(1, 0)
	ball.Update(ctx, &EventCollection{})

	if ball.Position.DistanceTo2D(owner.Position) > 3.0 {
		t.Errorf("Ball at %v too far from owner at %v", ball.Position, owner.Position)
	}
}

// TestGoalDetection verifies goals count only inside the mouth and under the
// crossbar.
func TestGoalDetection(t *testing.T) {
	goals := NewGoalPosition()
	centerY := FieldHeight / 2

	tests := []struct {
		name   string
		pos    vector.Vector3
		isGoal bool
		side   GoalSide
	}{
		{"center of left goal", vector.New2D(-1, centerY), true, GoalSideLeft},
		{"center of right goal", vector.New2D(FieldWidth+1, centerY), true, GoalSideRight},
		{"under the bar", vector.New(0, centerY, 2.0), true, GoalSideLeft},
		{"over the bar", vector.New(0, centerY, 3.0), false, 0},
		{"wide of the mouth", vector.New2D(0, centerY+GoalMouthHalfWidth+1), false, 0},
		{"still in play", vector.New2D(10, centerY), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, ok := goals.IsGoal(tt.pos)
			if ok != tt.isGoal {
				t.Fatalf("IsGoal(%v) = %v, want %v", tt.pos, ok, tt.isGoal)
			}
			if ok && side != tt.side {
				t.Errorf("Expected side %v, got %v", tt.side, side)
			}
		})
	}
}

// TestOverBar verifies the over-bar case is detected separately.
func TestOverBar(t *testing.T) {
	goals := NewGoalPosition()
	pos := vector.New(0, FieldHeight/2, CrossbarHeight+0.5)

	if _, ok := goals.IsGoal(pos); ok {
		t.Error("Ball over the bar must not be a goal")
	}
	if _, ok := goals.IsOverBar(pos); !ok {
		t.Error("Expected over-bar detection")
	}
}

// TestGoalEmittedOnce verifies only one goal event fires per restart.
func TestGoalEmittedOnce(t *testing.T) {
	ctx := testContext(1)
	ball := NewBall()
	ball.PreviousOwner = 7
	ball.Position = vector.New2D(2, FieldHeight/2)
	ball.Velocity = vector.New2D(-3, 0)

	total := 0
	for i := 0; i < 5; i++ {
		events := &EventCollection{}
		ball.Update(ctx, events)
		for _, e := range events.Events() {
			if e.Kind == EventGoal {
				total++
				if e.PlayerID != 7 {
					t.Errorf("Expected scorer 7, got %d", e.PlayerID)
				}
			}
		}
	}
	if total != 1 {
		t.Errorf("Expected exactly one goal event, got %d", total)
	}
}

// TestStandStillRescue verifies a dead ball summons the nearest outfield
// player.
func TestStandStillRescue(t *testing.T) {
	ctx := testContext(1)
	ball := NewBall()

	gk := testPlayer(1, 1, 12)
	gk.SetupOnField(PositionGoalkeeper, SideLeft)
	gk.OnField = true
	gk.Position = ball.Position.Add(vector.New2D(10, 0))
	ctx.Players.Add(gk)

	striker := testPlayer(2, 1, 12)
	striker.SetupOnField(PositionStriker, SideLeft)
	striker.OnField = true
	striker.Position = ball.Position.Add(vector.New2D(50, 0))
	ctx.Players.Add(striker)

	var takeMe []Event
	for i := 0; i < ballStandStillTicks+1; i++ {
		events := &EventCollection{}
		ball.Update(ctx, events)
		for _, e := range events.Events() {
			if e.Kind == EventTakeMe {
				takeMe = append(takeMe, e)
			}
		}
	}

	if len(takeMe) == 0 {
		t.Fatal("Expected a take-me event for a dead ball")
	}
	if takeMe[0].PlayerID != 2 {
		t.Errorf("Expected nearest outfield player 2, keeper must be skipped; got %d", takeMe[0].PlayerID)
	}
}

// TestRollingBallSlowsDown verifies rolling drag bleeds speed to zero.
func TestRollingBallSlowsDown(t *testing.T) {
	ball := NewBall()
	ball.Velocity = vector.New2D(2, 0)

	for i := 0; i < 5000 && ball.Velocity.Norm2D() > 0; i++ {
		ball.integrate()
	}
	if speed := ball.Velocity.Norm2D(); speed != 0 {
		t.Errorf("Expected rolling ball to stop, still moving at %f", speed)
	}
}
