package match

import "football-sim/internal/match/vector"

// PlayerSide is which half a team defends. The left side attacks toward
// x = FieldWidth; sides swap at half time.
type PlayerSide int

const (
	SideLeft PlayerSide = iota
	SideRight
)

func (s PlayerSide) Opposite() PlayerSide {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func (s PlayerSide) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// AttackDirection is +1 when the side attacks toward growing x.
func (s PlayerSide) AttackDirection() float64 {
	if s == SideLeft {
		return 1.0
	}
	return -1.0
}

type PositionGroup int

const (
	GroupGoalkeeper PositionGroup = iota
	GroupDefender
	GroupMidfielder
	GroupForward
)

func (g PositionGroup) String() string {
	switch g {
	case GroupGoalkeeper:
		return "GK"
	case GroupDefender:
		return "DEF"
	case GroupMidfielder:
		return "MID"
	default:
		return "FWD"
	}
}

type PositionType int

const (
	PositionGoalkeeper PositionType = iota
	PositionDefenderLeft
	PositionDefenderCenterLeft
	PositionDefenderCenter
	PositionDefenderCenterRight
	PositionDefenderRight
	PositionWingbackLeft
	PositionWingbackRight
	PositionDefensiveMidfielder
	PositionMidfielderLeft
	PositionMidfielderCenterLeft
	PositionMidfielderCenter
	PositionMidfielderCenterRight
	PositionMidfielderRight
	PositionAttackingMidfielderLeft
	PositionAttackingMidfielderCenter
	PositionAttackingMidfielderRight
	PositionForwardLeft
	PositionForwardCenter
	PositionForwardRight
	PositionStriker
)

func (p PositionType) Group() PositionGroup {
	switch p {
	case PositionGoalkeeper:
		return GroupGoalkeeper
	case PositionDefenderLeft, PositionDefenderCenterLeft, PositionDefenderCenter,
		PositionDefenderCenterRight, PositionDefenderRight,
		PositionWingbackLeft, PositionWingbackRight:
		return GroupDefender
	case PositionDefensiveMidfielder, PositionMidfielderLeft, PositionMidfielderCenterLeft,
		PositionMidfielderCenter, PositionMidfielderCenterRight, PositionMidfielderRight,
		PositionAttackingMidfielderLeft, PositionAttackingMidfielderCenter,
		PositionAttackingMidfielderRight:
		return GroupMidfielder
	default:
		return GroupForward
	}
}

func (p PositionType) String() string {
	names := [...]string{
		"GK", "DL", "DCL", "DC", "DCR", "DR", "WBL", "WBR", "DM",
		"ML", "MCL", "MC", "MCR", "MR", "AML", "AMC", "AMR",
		"FL", "FC", "FR", "ST",
	}
	if int(p) < len(names) {
		return names[p]
	}
	return "?"
}

// positionCoordinates are the left-side base coordinates; right-side teams
// mirror x around the field center.
var positionCoordinates = map[PositionType]vector.Vector3{
	PositionGoalkeeper:                vector.New2D(30, 272.5),
	PositionDefenderLeft:              vector.New2D(150, 100),
	PositionDefenderCenterLeft:        vector.New2D(140, 200),
	PositionDefenderCenter:            vector.New2D(140, 272.5),
	PositionDefenderCenterRight:       vector.New2D(140, 345),
	PositionDefenderRight:             vector.New2D(150, 445),
	PositionWingbackLeft:              vector.New2D(210, 80),
	PositionWingbackRight:             vector.New2D(210, 465),
	PositionDefensiveMidfielder:       vector.New2D(250, 272.5),
	PositionMidfielderLeft:            vector.New2D(330, 110),
	PositionMidfielderCenterLeft:      vector.New2D(320, 210),
	PositionMidfielderCenter:          vector.New2D(320, 272.5),
	PositionMidfielderCenterRight:     vector.New2D(320, 335),
	PositionMidfielderRight:           vector.New2D(330, 435),
	PositionAttackingMidfielderLeft:   vector.New2D(420, 150),
	PositionAttackingMidfielderCenter: vector.New2D(420, 272.5),
	PositionAttackingMidfielderRight:  vector.New2D(420, 395),
	PositionForwardLeft:               vector.New2D(520, 180),
	PositionForwardCenter:             vector.New2D(520, 272.5),
	PositionForwardRight:              vector.New2D(520, 365),
	PositionStriker:                   vector.New2D(560, 272.5),
}

// BasePosition is the formation coordinate for a position on the given side.
func BasePosition(p PositionType, side PlayerSide) vector.Vector3 {
	base, ok := positionCoordinates[p]
	if !ok {
		base = vector.New2D(FieldWidth/2, FieldHeight/2)
	}
	if side == SideRight {
		base.X = FieldWidth - base.X
	}
	return base
}

// waypointOffsets are patrol offsets per group in the attack-forward frame:
// positive dx is toward the opponent goal.
var waypointOffsets = map[PositionGroup][]vector.Vector3{
	GroupGoalkeeper: {
		vector.New2D(0, 0),
	},
	GroupDefender: {
		vector.New2D(0, 0),
		vector.New2D(60, 0),
		vector.New2D(20, 30),
		vector.New2D(20, -30),
	},
	GroupMidfielder: {
		vector.New2D(0, 0),
		vector.New2D(110, 0),
		vector.New2D(60, 25),
		vector.New2D(-40, 0),
		vector.New2D(60, -25),
	},
	GroupForward: {
		vector.New2D(60, 0),
		vector.New2D(140, -35),
		vector.New2D(160, 0),
		vector.New2D(140, 35),
		vector.New2D(0, 0),
	},
}

// GenerateWaypoints builds the patrol route for a position on the given side.
func GenerateWaypoints(p PositionType, side PlayerSide) []vector.Vector3 {
	base := BasePosition(p, side)
	dir := side.AttackDirection()
	offsets := waypointOffsets[p.Group()]
	waypoints := make([]vector.Vector3, 0, len(offsets))
	for _, off := range offsets {
		wp := vector.New2D(base.X+off.X*dir, base.Y+off.Y)
		wp.X = clampFloat(wp.X, 10, FieldWidth-10)
		wp.Y = clampFloat(wp.Y, 10, FieldHeight-10)
		waypoints = append(waypoints, wp)
	}
	return waypoints
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WaypointReachedThreshold is the arrival radius for waypoint patrol.
const WaypointReachedThreshold = 25.0

// WaypointManager tracks progress along a patrol route.
type WaypointManager struct {
	Waypoints []vector.Vector3
	Current   int
}

func NewWaypointManager(waypoints []vector.Vector3) WaypointManager {
	return WaypointManager{Waypoints: waypoints}
}

func (w *WaypointManager) HasWaypoints() bool {
	return len(w.Waypoints) > 0
}

// CurrentWaypoint returns the active target, advancing past any waypoint the
// player has already reached.
func (w *WaypointManager) CurrentWaypoint(pos vector.Vector3) (vector.Vector3, bool) {
	if len(w.Waypoints) == 0 {
		return vector.Zero(), false
	}
	if w.Current >= len(w.Waypoints) {
		w.Current = 0
	}
	if pos.DistanceTo2D(w.Waypoints[w.Current]) < WaypointReachedThreshold {
		w.Current = (w.Current + 1) % len(w.Waypoints)
	}
	return w.Waypoints[w.Current], true
}

// Reset re-syncs to the waypoint nearest the player, used after routes are
// regenerated on a side swap.
func (w *WaypointManager) Reset(pos vector.Vector3) {
	if len(w.Waypoints) == 0 {
		w.Current = 0
		return
	}
	best, bestDist := 0, pos.DistanceTo2D(w.Waypoints[0])
	for i := 1; i < len(w.Waypoints); i++ {
		if d := pos.DistanceTo2D(w.Waypoints[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	w.Current = best
}

type TacticalStyle int

const (
	StyleBalanced TacticalStyle = iota
	StyleAttacking
	StyleDefensive
	StylePossession
	StyleCounterattack
	StyleWingPlay
	StyleCompact
)

func (s TacticalStyle) String() string {
	switch s {
	case StyleAttacking:
		return "attacking"
	case StyleDefensive:
		return "defensive"
	case StylePossession:
		return "possession"
	case StyleCounterattack:
		return "counterattack"
	case StyleWingPlay:
		return "wing_play"
	case StyleCompact:
		return "compact"
	default:
		return "balanced"
	}
}

type FormationType int

const (
	Formation442 FormationType = iota
	Formation433
	Formation451
	Formation4231
	Formation352
	Formation343
	Formation4312
	Formation4141
)

var formationNames = map[FormationType]string{
	Formation442:  "4-4-2",
	Formation433:  "4-3-3",
	Formation451:  "4-5-1",
	Formation4231: "4-2-3-1",
	Formation352:  "3-5-2",
	Formation343:  "3-4-3",
	Formation4312: "4-3-1-2",
	Formation4141: "4-1-4-1",
}

func (f FormationType) String() string {
	if n, ok := formationNames[f]; ok {
		return n
	}
	return "4-4-2"
}

var formationPositions = map[FormationType][11]PositionType{
	Formation442: {
		PositionGoalkeeper,
		PositionDefenderLeft, PositionDefenderCenterLeft, PositionDefenderCenterRight, PositionDefenderRight,
		PositionMidfielderLeft, PositionMidfielderCenterLeft, PositionMidfielderCenterRight, PositionMidfielderRight,
		PositionForwardLeft, PositionForwardRight,
	},
	Formation433: {
		PositionGoalkeeper,
		PositionDefenderLeft, PositionDefenderCenterLeft, PositionDefenderCenterRight, PositionDefenderRight,
		PositionMidfielderCenterLeft, PositionMidfielderCenter, PositionMidfielderCenterRight,
		PositionForwardLeft, PositionStriker, PositionForwardRight,
	},
	Formation451: {
		PositionGoalkeeper,
		PositionDefenderLeft, PositionDefenderCenterLeft, PositionDefenderCenterRight, PositionDefenderRight,
		PositionMidfielderLeft, PositionMidfielderCenterLeft, PositionMidfielderCenter, PositionMidfielderCenterRight, PositionMidfielderRight,
		PositionStriker,
	},
	Formation4231: {
		PositionGoalkeeper,
		PositionDefenderLeft, PositionDefenderCenterLeft, PositionDefenderCenterRight, PositionDefenderRight,
		PositionDefensiveMidfielder, PositionMidfielderCenter,
		PositionAttackingMidfielderLeft, PositionAttackingMidfielderCenter, PositionAttackingMidfielderRight,
		PositionStriker,
	},
	Formation352: {
		PositionGoalkeeper,
		PositionDefenderCenterLeft, PositionDefenderCenter, PositionDefenderCenterRight,
		PositionWingbackLeft, PositionMidfielderCenterLeft, PositionMidfielderCenter, PositionMidfielderCenterRight, PositionWingbackRight,
		PositionForwardLeft, PositionForwardRight,
	},
	Formation343: {
		PositionGoalkeeper,
		PositionDefenderCenterLeft, PositionDefenderCenter, PositionDefenderCenterRight,
		PositionMidfielderLeft, PositionMidfielderCenterLeft, PositionMidfielderCenterRight, PositionMidfielderRight,
		PositionForwardLeft, PositionStriker, PositionForwardRight,
	},
	Formation4312: {
		PositionGoalkeeper,
		PositionDefenderLeft, PositionDefenderCenterLeft, PositionDefenderCenterRight, PositionDefenderRight,
		PositionMidfielderCenterLeft, PositionMidfielderCenter, PositionMidfielderCenterRight,
		PositionAttackingMidfielderCenter,
		PositionForwardLeft, PositionForwardRight,
	},
	Formation4141: {
		PositionGoalkeeper,
		PositionDefenderLeft, PositionDefenderCenterLeft, PositionDefenderCenterRight, PositionDefenderRight,
		PositionDefensiveMidfielder,
		PositionMidfielderLeft, PositionMidfielderCenterLeft, PositionMidfielderCenterRight, PositionMidfielderRight,
		PositionStriker,
	},
}

var formationStyles = map[FormationType]TacticalStyle{
	Formation442:  StyleBalanced,
	Formation433:  StyleAttacking,
	Formation451:  StyleDefensive,
	Formation4231: StylePossession,
	Formation352:  StyleWingPlay,
	Formation343:  StyleAttacking,
	Formation4312: StylePossession,
	Formation4141: StyleCompact,
}

// Tactics is a team's match setup.
type Tactics struct {
	Formation FormationType
}

func NewTactics(f FormationType) *Tactics {
	if _, ok := formationPositions[f]; !ok {
		f = Formation442
	}
	return &Tactics{Formation: f}
}

// Positions lists the 11 starting positions, goalkeeper first.
func (t *Tactics) Positions() [11]PositionType {
	return formationPositions[t.Formation]
}

func (t *Tactics) Style() TacticalStyle {
	return formationStyles[t.Formation]
}

func (t *Tactics) CountInGroup(g PositionGroup) int {
	n := 0
	for _, p := range t.Positions() {
		if p.Group() == g {
			n++
		}
	}
	return n
}

// TacticalPosition binds a player to a formation slot and its patrol route.
type TacticalPosition struct {
	Current   PositionType
	Waypoints WaypointManager
}

func NewTacticalPosition(p PositionType, side PlayerSide) TacticalPosition {
	return TacticalPosition{
		Current:   p,
		Waypoints: NewWaypointManager(GenerateWaypoints(p, side)),
	}
}

// Regenerate rebuilds the route for a new side and re-syncs patrol progress.
func (tp *TacticalPosition) Regenerate(side PlayerSide, playerPos vector.Vector3) {
	tp.Waypoints = NewWaypointManager(GenerateWaypoints(tp.Current, side))
	tp.Waypoints.Reset(playerPos)
}
