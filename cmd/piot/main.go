// piot replays a game from a starting position and a move list, printing
// the resulting position and movetext. Unlike the dropped perft tool, it
// does not search or time anything — it only exercises the public replay
// surface (FEN decode/encode, SAN/PMN push, terminal status).
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/herohde/piotchess/pkg/chess"
	"github.com/herohde/piotchess/pkg/chess/fen"
	"github.com/herohde/piotchess/pkg/chess/pmn"
)

var version = build.NewVersion(0, 1, 0)

var (
	position = flag.String("fen", "", "Start position (default: standard opening)")
	moves    = flag.String("moves", "", "Space-separated SAN or PMN moves to replay")
	notation = flag.String("notation", "san", "Move notation of -moves: 'san' or 'pmn'")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	logw.Infof(ctx, "piot %v", version)

	var g *chess.Game
	if *position == "" {
		g = chess.NewGame()
	} else {
		gs, err := fen.Decode(*position)
		if err != nil {
			logw.Exitf(ctx, "invalid fen %q: %v", *position, err)
		}
		g = chess.NewGameFromState(gs)
	}

	for _, tok := range strings.Fields(*moves) {
		if err := replay(g, tok, *notation); err != nil {
			logw.Exitf(ctx, "invalid move %q: %v", tok, err)
		}
	}

	fmt.Println(fen.Encode(g.State()))
	fmt.Println(g.State().Movetext())

	if result := g.GameOver(); result != chess.NoResult {
		fmt.Printf("game over: %v\n", result)
	} else if g.FiftyMoveClaimable() {
		fmt.Println("draw claimable: fifty-move rule")
	} else if g.ThreefoldClaimable() {
		fmt.Println("draw claimable: threefold repetition")
	}
}

func replay(g *chess.Game, tok, notation string) error {
	switch notation {
	case "pmn":
		mover, ok := movingKindFor(g, tok)
		if !ok {
			return chess.KindError(chess.InvalidSAN, "cannot determine moving piece for %q", tok)
		}
		from, to, promotion, err := pmn.Decode(tok, mover)
		if err != nil {
			return err
		}
		_, err = g.PushSquares(from, to, promotion)
		return err
	default:
		_, err := g.PushSAN(tok)
		return err
	}
}

// movingKindFor looks up the piece standing on the PMN pair's from-square,
// needed to disambiguate a plain destination glyph from an implied queen
// promotion (pkg/chess/pmn.Decode).
func movingKindFor(g *chess.Game, pair string) (chess.Kind, bool) {
	from, err := pmn.FromSquare(pair)
	if err != nil {
		return chess.NoKind, false
	}
	p, ok := g.State().Board.PieceAt(from)
	if !ok {
		return chess.NoKind, false
	}
	return p.Kind, true
}
