package match

import (
	"math"

	"football-sim/internal/match/vector"
)

// BallMetadata is the per-tick read-only ball view handlers work against.
type BallMetadata struct {
	Position      vector.Vector3
	Velocity      vector.Vector3
	IsOwned       bool
	CurrentOwner  int
	PreviousOwner int
	InFlight         bool
	OwnerTeamID      int
	OnLeftHalf       bool
	NotifiedReceiver int
}

type pairKey struct {
	A, B int
}

func makePairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{A: a, B: b}
}

// GameTickContext snapshots positions, pairwise distances and ball metadata
// at the start of a tick so every handler in the tick sees the same world.
type GameTickContext struct {
	Ball BallMetadata

	players    map[int]PlayerLite
	onFieldIDs []int
	distances  map[pairKey]float64
	ballDist   map[int]float64
}

func NewGameTickContext(ctx *MatchContext, ball *Ball) *GameTickContext {
	tick := &GameTickContext{
		players:   make(map[int]PlayerLite, 36),
		distances: make(map[pairKey]float64, 256),
		ballDist:  make(map[int]float64, 22),
	}

	onField := ctx.Players.OnField()
	for _, p := range onField {
		tick.players[p.ID] = p.Lite()
		tick.onFieldIDs = append(tick.onFieldIDs, p.ID)
		tick.ballDist[p.ID] = p.Position.DistanceTo2D(ball.Position)
	}
	for i := 0; i < len(onField); i++ {
		for j := i + 1; j < len(onField); j++ {
			key := makePairKey(onField[i].ID, onField[j].ID)
			tick.distances[key] = onField[i].Position.DistanceTo2D(onField[j].Position)
		}
	}

	ownerTeam := NoOwner
	if owner := ctx.Players.ByID(ball.CurrentOwner); owner != nil {
		ownerTeam = owner.TeamID
	}
	tick.Ball = BallMetadata{
		Position:         ball.Position,
		Velocity:         ball.Velocity,
		IsOwned:          ball.Owned(),
		CurrentOwner:     ball.CurrentOwner,
		PreviousOwner:    ball.PreviousOwner,
		InFlight:         ball.InFlight(),
		OwnerTeamID:      ownerTeam,
		OnLeftHalf:       ball.Position.X < FieldWidth/2,
		NotifiedReceiver: ball.notifiedReceiver,
	}
	return tick
}

// Player returns the tick-start snapshot of an on-field player.
func (t *GameTickContext) Player(id int) (PlayerLite, bool) {
	p, ok := t.players[id]
	return p, ok
}

// OnFieldIDs is the canonical-order id list of active players.
func (t *GameTickContext) OnFieldIDs() []int {
	return t.onFieldIDs
}

// Distance is the tick-start pitch-plane distance between two players.
func (t *GameTickContext) Distance(a, b int) float64 {
	if a == b {
		return 0
	}
	if d, ok := t.distances[makePairKey(a, b)]; ok {
		return d
	}
	return math.Inf(1)
}

// DistanceToBall is the tick-start distance from a player to the ball.
func (t *GameTickContext) DistanceToBall(id int) float64 {
	if d, ok := t.ballDist[id]; ok {
		return d
	}
	return math.Inf(1)
}
