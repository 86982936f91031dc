package api

import (
	"encoding/json"
	"image/png"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"football-sim/internal/config"
	"football-sim/internal/league"
	"football-sim/internal/match"
	"football-sim/internal/replay"
	"football-sim/internal/squadgen"
	"football-sim/internal/store"
)

// resultCacheSize bounds how many raw results stay in memory for replay and
// position queries. Older matches can still be re-simulated from their seed.
const resultCacheSize = 16

// routerHandlers holds the handler dependencies for the router.
type routerHandlers struct {
	store *store.Store
	hub   *WebSocketHub
	sim   config.SimConfig

	// simMu serializes simulations; the engine is single-threaded and one
	// match saturates a core anyway.
	simMu sync.Mutex

	cacheMu     sync.RWMutex
	resultCache map[uint]*match.MatchResultRaw
	cacheOrder  []uint
}

func newRouterHandlers(st *store.Store, hub *WebSocketHub, sim config.SimConfig) *routerHandlers {
	return &routerHandlers{
		store:       st,
		hub:         hub,
		sim:         sim,
		resultCache: make(map[uint]*match.MatchResultRaw),
	}
}

// teamRequest describes one side of a simulation request.
type teamRequest struct {
	TeamID    int     `json:"team_id"`
	Name      string  `json:"name"`
	Formation string  `json:"formation"`
	Quality   float64 `json:"quality"`
}

type simulateRequest struct {
	Home teamRequest `json:"home"`
	Away teamRequest `json:"away"`
	Seed int64       `json:"seed"`
}

var formationsByName = map[string]match.FormationType{
	"4-4-2":   match.Formation442,
	"4-3-3":   match.Formation433,
	"4-5-1":   match.Formation451,
	"4-2-3-1": match.Formation4231,
	"3-5-2":   match.Formation352,
	"3-4-3":   match.Formation343,
	"4-3-1-2": match.Formation4312,
	"4-1-4-1": match.Formation4141,
}

func parseFormation(name string) match.FormationType {
	if f, ok := formationsByName[name]; ok {
		return f
	}
	return match.Formation442
}

func (h *routerHandlers) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Home.Name == "" || req.Away.Name == "" {
		writeError(w, "both team names are required", http.StatusBadRequest)
		return
	}
	if req.Home.TeamID == 0 {
		req.Home.TeamID = 1
	}
	if req.Away.TeamID == 0 {
		req.Away.TeamID = 2
	}
	if req.Home.TeamID == req.Away.TeamID {
		writeError(w, "teams must have distinct ids", http.StatusBadRequest)
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = h.sim.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	h.simMu.Lock()
	defer h.simMu.Unlock()

	squadRng := rand.New(rand.NewSource(seed))
	home := squadgen.Generate(squadgen.Config{
		TeamID:        req.Home.TeamID,
		TeamName:      req.Home.Name,
		Formation:     parseFormation(req.Home.Formation),
		BaseQuality:   req.Home.Quality,
		FirstPlayerID: 1,
	}, squadRng)
	away := squadgen.Generate(squadgen.Config{
		TeamID:        req.Away.TeamID,
		TeamName:      req.Away.Name,
		Formation:     parseFormation(req.Away.Formation),
		BaseQuality:   req.Away.Quality,
		FirstPlayerID: 101,
	}, squadRng)

	engine := match.NewEngine(match.PlayConfig{
		Seed:              seed,
		HalfDurationMs:    h.sim.HalfDurationMs,
		Logger:            log.Logger,
		TickObserver:      h.hub.SnapshotObserver(0),
		ObserveEveryTicks: h.sim.ObserveEveryTicks,
	})

	started := time.Now()
	result := engine.Play(home, away)
	elapsed := time.Since(started)

	rec, err := h.store.SaveResult(result)
	if err != nil {
		log.Error().Err(err).Msg("save result failed")
		writeError(w, "failed to persist result", http.StatusInternalServerError)
		return
	}

	h.cacheResult(rec.ID, result)
	RecordSimulation(elapsed, rec.HomeGoals+rec.AwayGoals)
	h.hub.BroadcastFinal(rec.ID, rec.HomeGoals, rec.AwayGoals)

	log.Info().
		Uint("match_id", rec.ID).
		Int64("seed", seed).
		Int("home_goals", rec.HomeGoals).
		Int("away_goals", rec.AwayGoals).
		Dur("elapsed", elapsed).
		Msg("match simulated")

	writeJSON(w, rec)
}

func (h *routerHandlers) cacheResult(id uint, result *match.MatchResultRaw) {
	h.cacheMu.Lock()
	defer h.cacheMu.Unlock()
	h.resultCache[id] = result
	h.cacheOrder = append(h.cacheOrder, id)
	for len(h.cacheOrder) > resultCacheSize {
		oldest := h.cacheOrder[0]
		h.cacheOrder = h.cacheOrder[1:]
		delete(h.resultCache, oldest)
	}
}

func (h *routerHandlers) cachedResult(id uint) *match.MatchResultRaw {
	h.cacheMu.RLock()
	defer h.cacheMu.RUnlock()
	return h.resultCache[id]
}

func (h *routerHandlers) handleRecentMatches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recs, err := h.store.RecentMatches(limit)
	if err != nil {
		writeError(w, "failed to list matches", http.StatusInternalServerError)
		return
	}
	writeJSON(w, recs)
}

func (h *routerHandlers) handleMatchByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, "invalid match id", http.StatusBadRequest)
		return
	}
	rec, err := h.store.MatchByID(uint(id))
	if err != nil {
		writeError(w, "match not found", http.StatusNotFound)
		return
	}
	writeJSON(w, rec)
}

// handleMatchPositions serves the ball and player positions at one timestamp.
// Only recently simulated matches are queryable; position samples are not
// persisted.
func (h *routerHandlers) handleMatchPositions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, "invalid match id", http.StatusBadRequest)
		return
	}
	result := h.cachedResult(uint(id))
	if result == nil {
		writeError(w, "positions no longer cached for this match", http.StatusNotFound)
		return
	}

	atMs, _ := strconv.ParseUint(r.URL.Query().Get("t"), 10, 64)

	players := make(map[int][2]float64)
	for pid := range result.PositionData.Players {
		if pos, ok := result.PositionData.PlayerPositionAt(pid, atMs); ok {
			players[pid] = [2]float64{pos.X, pos.Y}
		}
	}
	resp := map[string]interface{}{
		"t":       atMs,
		"players": players,
	}
	if ball, ok := result.PositionData.BallPositionAt(atMs); ok {
		resp["ball"] = [3]float64{ball.X, ball.Y, ball.Z}
	}
	writeJSON(w, resp)
}

// handleMatchFrame renders a PNG still of a cached match at one timestamp.
func (h *routerHandlers) handleMatchFrame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeError(w, "invalid match id", http.StatusBadRequest)
		return
	}
	result := h.cachedResult(uint(id))
	if result == nil {
		writeError(w, "positions no longer cached for this match", http.StatusNotFound)
		return
	}

	atMs, _ := strconv.ParseUint(r.URL.Query().Get("t"), 10, 64)
	img, err := replay.Frame{}.Render(result, atMs)
	if err != nil {
		writeError(w, "failed to render frame", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		log.Warn().Err(err).Msg("frame encode failed")
	}
}

func (h *routerHandlers) handleTable(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.AllMatches()
	if err != nil {
		writeError(w, "failed to load matches", http.StatusInternalServerError)
		return
	}

	seen := make(map[int]string)
	results := make([]league.Result, 0, len(recs))
	for _, rec := range recs {
		seen[rec.HomeTeamID] = rec.HomeName
		seen[rec.AwayTeamID] = rec.AwayName
		results = append(results, league.Result{
			HomeTeamID: rec.HomeTeamID,
			AwayTeamID: rec.AwayTeamID,
			HomeGoals:  rec.HomeGoals,
			AwayGoals:  rec.AwayGoals,
		})
	}
	teams := make([]league.Team, 0, len(seen))
	for id, name := range seen {
		teams = append(teams, league.Team{ID: id, Name: name})
	}
	writeJSON(w, league.Table(teams, results))
}

func (h *routerHandlers) handlePlayerSeason(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "invalid player id", http.StatusBadRequest)
		return
	}
	stats, err := h.store.SeasonStats(id)
	if err != nil {
		writeError(w, "no stats for player", http.StatusNotFound)
		return
	}
	writeJSON(w, stats)
}

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
