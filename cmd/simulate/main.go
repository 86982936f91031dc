// Command simulate runs one match from the command line and prints the
// result. Useful for quick experiments and for checking that a seed
// reproduces.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"football-sim/internal/match"
	"football-sim/internal/replay"
	"football-sim/internal/squadgen"
)

func main() {
	var (
		seed      = flag.Int64("seed", 0, "match seed; 0 picks one from the clock")
		homeName  = flag.String("home", "Home FC", "home team name")
		awayName  = flag.String("away", "Away United", "away team name")
		homeForm  = flag.String("home-formation", "4-4-2", "home formation")
		awayForm  = flag.String("away-formation", "4-3-3", "away formation")
		halfMins  = flag.Uint64("half-minutes", 45, "virtual minutes per half")
		framePath = flag.String("frame", "", "write a PNG frame of the final whistle to this path")
		frameAt   = flag.Uint64("frame-at", 0, "frame timestamp in ms; 0 means full time")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	rng := rand.New(rand.NewSource(*seed))
	home := squadgen.Generate(squadgen.Config{
		TeamID: 1, TeamName: *homeName,
		Formation:     parseFormation(*homeForm),
		FirstPlayerID: 1,
	}, rng)
	away := squadgen.Generate(squadgen.Config{
		TeamID: 2, TeamName: *awayName,
		Formation:     parseFormation(*awayForm),
		FirstPlayerID: 101,
	}, rng)

	engine := match.NewEngine(match.PlayConfig{
		Seed:           *seed,
		HalfDurationMs: *halfMins * 60 * 1000,
		Logger:         logger,
	})

	started := time.Now()
	result := engine.Play(home, away)
	elapsed := time.Since(started)

	printResult(result, elapsed)

	if *framePath != "" {
		at := *frameAt
		if at == 0 {
			at = result.MatchTimeMs
		}
		if err := (replay.Frame{}).SavePNG(result, at, *framePath); err != nil {
			fmt.Fprintf(os.Stderr, "frame: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("frame written to %s\n", *framePath)
	}
}

func parseFormation(name string) match.FormationType {
	formations := map[string]match.FormationType{
		"4-4-2":   match.Formation442,
		"4-3-3":   match.Formation433,
		"4-5-1":   match.Formation451,
		"4-2-3-1": match.Formation4231,
		"3-5-2":   match.Formation352,
		"3-4-3":   match.Formation343,
		"4-3-1-2": match.Formation4312,
		"4-1-4-1": match.Formation4141,
	}
	if f, ok := formations[name]; ok {
		return f
	}
	fmt.Fprintf(os.Stderr, "unknown formation %q, using 4-4-2\n", name)
	return match.Formation442
}

func printResult(result *match.MatchResultRaw, elapsed time.Duration) {
	home := result.Score.ByTeam(result.HomeSquad.TeamID)
	away := result.Score.ByTeam(result.AwaySquad.TeamID)

	fmt.Printf("%s %d - %d %s  (seed %d, simulated in %s)\n",
		result.HomeSquad.TeamName, home.Goals, away.Goals, result.AwaySquad.TeamName,
		result.Seed, elapsed.Round(time.Millisecond))
	fmt.Printf("played %dm +%ds stoppage, %d substitutions\n",
		result.MatchTimeMs/60000, result.AdditionalTimeMs/1000, len(result.Substitutions))

	for _, side := range []*match.TeamScore{home, away} {
		for _, d := range side.Details {
			if d.Kind != match.StatGoal {
				continue
			}
			marker := ""
			if d.AutoGoal {
				marker = " (og)"
			}
			fmt.Printf("  %3d' goal: player %d%s\n", d.TimeMs/60000, d.PlayerID, marker)
		}
	}

	type rated struct {
		id     int
		rating float64
	}
	var ratings []rated
	for id, stats := range result.PlayerStats {
		ratings = append(ratings, rated{id, stats.Rating})
	}
	sort.Slice(ratings, func(i, j int) bool {
		if ratings[i].rating != ratings[j].rating {
			return ratings[i].rating > ratings[j].rating
		}
		return ratings[i].id < ratings[j].id
	})

	fmt.Println("top ratings:")
	for i, r := range ratings {
		if i >= 5 {
			break
		}
		stats := result.PlayerStats[r.id]
		fmt.Printf("  %5.2f  player %d (%s) goals=%d assists=%d tackles=%d\n",
			r.rating, r.id, stats.Position, stats.Goals, stats.Assists, stats.Tackles)
	}
}
