package match

import "testing"

// TestFormationShapes verifies every formation fields eleven with exactly one
// keeper and the advertised group counts.
func TestFormationShapes(t *testing.T) {
	tests := []struct {
		formation FormationType
		def       int
		mid       int
		fwd       int
	}{
		{Formation442, 4, 4, 2},
		{Formation433, 4, 3, 3},
		{Formation451, 4, 5, 1},
		{Formation4231, 4, 5, 1},
		{Formation352, 5, 3, 2},
		{Formation343, 3, 4, 3},
		{Formation4312, 4, 4, 2},
		{Formation4141, 4, 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.formation.String(), func(t *testing.T) {
			tactics := NewTactics(tt.formation)
			if gk := tactics.CountInGroup(GroupGoalkeeper); gk != 1 {
				t.Errorf("Expected 1 keeper, got %d", gk)
			}
			if def := tactics.CountInGroup(GroupDefender); def != tt.def {
				t.Errorf("Expected %d defenders, got %d", tt.def, def)
			}
			if mid := tactics.CountInGroup(GroupMidfielder); mid != tt.mid {
				t.Errorf("Expected %d midfielders, got %d", tt.mid, mid)
			}
			if fwd := tactics.CountInGroup(GroupForward); fwd != tt.fwd {
				t.Errorf("Expected %d forwards, got %d", tt.fwd, fwd)
			}
		})
	}
}

// TestUnknownFormationFallsBack verifies bad input degrades to 4-4-2.
func TestUnknownFormationFallsBack(t *testing.T) {
	tactics := NewTactics(FormationType(99))
	if tactics.Formation != Formation442 {
		t.Errorf("Expected fallback to 4-4-2, got %v", tactics.Formation)
	}
}

// TestBasePositionMirroring verifies right-side coordinates mirror around the
// field center.
func TestBasePositionMirroring(t *testing.T) {
	for pos := PositionGoalkeeper; pos <= PositionStriker; pos++ {
		left := BasePosition(pos, SideLeft)
		right := BasePosition(pos, SideRight)
		if left.X+right.X != FieldWidth {
			t.Errorf("%v: left x %f and right x %f do not mirror", pos, left.X, right.X)
		}
		if left.Y != right.Y {
			t.Errorf("%v: y must not change with side", pos)
		}
	}
}

// TestGenerateWaypointsInBounds verifies every patrol point stays on the
// pitch for both sides.
func TestGenerateWaypointsInBounds(t *testing.T) {
	for pos := PositionGoalkeeper; pos <= PositionStriker; pos++ {
		for _, side := range []PlayerSide{SideLeft, SideRight} {
			for i, wp := range GenerateWaypoints(pos, side) {
				if wp.X < 0 || wp.X > FieldWidth || wp.Y < 0 || wp.Y > FieldHeight {
					t.Errorf("%v side %v waypoint %d out of bounds: %v", pos, side, i, wp)
				}
			}
		}
	}
}

// TestWaypointAdvance verifies the manager advances past reached waypoints
// and wraps around.
func TestWaypointAdvance(t *testing.T) {
	wm := NewWaypointManager(GenerateWaypoints(PositionMidfielderCenter, SideLeft))
	if !wm.HasWaypoints() {
		t.Fatal("Expected waypoints for a midfielder")
	}

	first, ok := wm.CurrentWaypoint(BasePosition(PositionGoalkeeper, SideLeft))
	if !ok {
		t.Fatal("Expected a current waypoint")
	}

	// standing on the target advances to the next one
	next, _ := wm.CurrentWaypoint(first)
	if next == first {
		t.Error("Expected advance past a reached waypoint")
	}

	// cycling through all waypoints wraps back
	seen := map[int]bool{}
	pos := next
	for i := 0; i < len(wm.Waypoints)*2; i++ {
		seen[wm.Current] = true
		pos, _ = wm.CurrentWaypoint(pos)
	}
	if len(seen) != len(wm.Waypoints) {
		t.Errorf("Expected to visit all %d waypoints, saw %d", len(wm.Waypoints), len(seen))
	}
}

// TestTacticalRegenerate verifies a side swap rebuilds the route and re-syncs
// to the nearest waypoint.
func TestTacticalRegenerate(t *testing.T) {
	tp := NewTacticalPosition(PositionForwardCenter, SideLeft)
	leftFirst := tp.Waypoints.Waypoints[0]

	playerPos := BasePosition(PositionForwardCenter, SideRight)
	tp.Regenerate(SideRight, playerPos)

	rightFirst := tp.Waypoints.Waypoints[0]
	if leftFirst == rightFirst {
		t.Error("Expected mirrored waypoints after side swap")
	}
	if tp.Waypoints.Current < 0 || tp.Waypoints.Current >= len(tp.Waypoints.Waypoints) {
		t.Errorf("Current waypoint index %d out of range", tp.Waypoints.Current)
	}
}
