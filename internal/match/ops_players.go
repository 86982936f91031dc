package match

import (
	"math"
	"sort"
)

// PlayersOps is the entry point of the chaining player query API:
//
//	ctx.Players().Opponents().Nearby(50)
type PlayersOps struct {
	ctx *StateContext
}

func (c *StateContext) Players() PlayersOps {
	return PlayersOps{ctx: c}
}

// PlayerQuery is an ordered, filterable view over on-field players. Order is
// the canonical processing order until a distance sort is applied, so results
// are deterministic.
type PlayerQuery struct {
	ctx   *StateContext
	items []PlayerLite
}

func (o PlayersOps) query(filter func(PlayerLite) bool) PlayerQuery {
	q := PlayerQuery{ctx: o.ctx}
	for _, id := range o.ctx.Tick.OnFieldIDs() {
		if id == o.ctx.Player.ID {
			continue
		}
		if lite, ok := o.ctx.Tick.Player(id); ok && filter(lite) {
			q.items = append(q.items, lite)
		}
	}
	return q
}

// Teammates excludes the acting player.
func (o PlayersOps) Teammates() PlayerQuery {
	teamID := o.ctx.Player.TeamID
	return o.query(func(p PlayerLite) bool { return p.TeamID == teamID })
}

func (o PlayersOps) Opponents() PlayerQuery {
	teamID := o.ctx.Player.TeamID
	return o.query(func(p PlayerLite) bool { return p.TeamID != teamID })
}

func (o PlayersOps) All() PlayerQuery {
	return o.query(func(PlayerLite) bool { return true })
}

func (q PlayerQuery) All() []PlayerLite {
	return q.items
}

func (q PlayerQuery) Count() int {
	return len(q.items)
}

// InGroup keeps only players of one position group.
func (q PlayerQuery) InGroup(g PositionGroup) PlayerQuery {
	out := PlayerQuery{ctx: q.ctx}
	for _, p := range q.items {
		if p.Group() == g {
			out.items = append(out.items, p)
		}
	}
	return out
}

// Nearby returns players within radius of the acting player, nearest first;
// equal distances order by id.
func (q PlayerQuery) Nearby(radius float64) []PlayerLite {
	self := q.ctx.Player.ID
	type entry struct {
		p PlayerLite
		d float64
	}
	entries := make([]entry, 0, len(q.items))
	for _, p := range q.items {
		if d := q.ctx.Tick.Distance(self, p.ID); d <= radius {
			entries = append(entries, entry{p: p, d: d})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].d != entries[j].d {
			return entries[i].d < entries[j].d
		}
		return entries[i].p.ID < entries[j].p.ID
	})
	out := make([]PlayerLite, len(entries))
	for i, e := range entries {
		out[i] = e.p
	}
	return out
}

// Exists reports whether any matching player is within radius.
func (q PlayerQuery) Exists(radius float64) bool {
	self := q.ctx.Player.ID
	for _, p := range q.items {
		if q.ctx.Tick.Distance(self, p.ID) <= radius {
			return true
		}
	}
	return false
}

// Nearest returns the closest matching player; ties resolve by lower id.
func (q PlayerQuery) Nearest() (PlayerLite, bool) {
	self := q.ctx.Player.ID
	var best PlayerLite
	bestDist := math.Inf(1)
	found := false
	for _, p := range q.items {
		d := q.ctx.Tick.Distance(self, p.ID)
		if d < bestDist || (d == bestDist && found && p.ID < best.ID) {
			best, bestDist, found = p, d, true
		}
	}
	return best, found
}

// NearestToBall returns the matching player closest to the ball.
func (q PlayerQuery) NearestToBall() (PlayerLite, bool) {
	var best PlayerLite
	bestDist := math.Inf(1)
	found := false
	for _, p := range q.items {
		d := q.ctx.Tick.DistanceToBall(p.ID)
		if d < bestDist || (d == bestDist && found && p.ID < best.ID) {
			best, bestDist, found = p, d, true
		}
	}
	return best, found
}

// WithBall returns the matching player who currently owns the ball.
func (q PlayerQuery) WithBall() (PlayerLite, bool) {
	meta := q.ctx.Tick.Ball
	if !meta.IsOwned {
		return PlayerLite{}, false
	}
	for _, p := range q.items {
		if p.ID == meta.CurrentOwner {
			return p, true
		}
	}
	return PlayerLite{}, false
}

// Goalkeeper returns the matching goalkeeper, if on the field.
func (q PlayerQuery) Goalkeeper() (PlayerLite, bool) {
	for _, p := range q.items {
		if p.Group() == GroupGoalkeeper {
			return p, true
		}
	}
	return PlayerLite{}, false
}
