package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/cricklet/chessboard/internal/game"
	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
)

type Totals struct {
	Games    int
	Plies    int
	Captures int
	Stuck    int
}

// playout plays one game of random legal moves. A game ends early when the
// side to move has no moves.
func playout(r *rand.Rand, maxPlies int, totals *Totals) Error {
	b := game.NewStandardBoard()
	for ply := 0; ply < maxPlies; ply++ {
		moves := game.AllLegalMoves(b)
		if len(moves) == 0 {
			totals.Stuck++
			break
		}

		move := moves[r.Intn(len(moves))]
		outcome, err := b.ApplyMove(move.From, move.To)
		if err != nil {
			return Errorf("ply %v %v in %v: %w", ply, move, game.FenString(b), err)
		}
		if err := b.Validate(); !IsNil(err) {
			return Errorf("ply %v %v in %v: %w", ply, move, game.FenString(b), err)
		}

		totals.Plies++
		if outcome.Type.Captures() {
			totals.Captures++
		}
	}
	totals.Games++
	return NilError
}

func main() {
	games := flag.Int("games", 1000, "number of games to play")
	plies := flag.Int("plies", 200, "maximum plies per game")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	profilePath := flag.String("profile", "", "write a cpu profile into this directory")
	flag.Parse()

	if *profilePath != "" {
		defer profile.Start(profile.ProfilePath(*profilePath)).Stop()
	}

	r := rand.New(rand.NewSource(*seed))
	totals := Totals{}
	bar := progressbar.Default(int64(*games), "playout")

	start := time.Now()
	for i := 0; i < *games; i++ {
		if err := playout(r, *plies, &totals); !IsNil(err) {
			fmt.Fprintln(os.Stderr, "seed", *seed, "game", i, err)
			os.Exit(1)
		}
		bar.Add(1)
	}
	elapsed := time.Since(start)

	fmt.Printf("%v games, %v plies, %v captures, %v without moves in %v (seed %v)\n",
		humanize.Comma(int64(totals.Games)),
		humanize.Comma(int64(totals.Plies)),
		humanize.Comma(int64(totals.Captures)),
		humanize.Comma(int64(totals.Stuck)),
		elapsed.Round(time.Millisecond),
		*seed)
	if elapsed > 0 {
		fmt.Printf("%v plies/s\n", humanize.Comma(int64(float64(totals.Plies)/elapsed.Seconds())))
	}
}
