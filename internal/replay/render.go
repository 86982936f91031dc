// Package replay renders still frames of a finished match from its recorded
// position samples.
package replay

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"football-sim/internal/match"
)

// Frame renders the pitch at one match timestamp.
type Frame struct {
	// Scale is pixels per field unit; 1.0 yields an 840x545 image.
	Scale float64
}

// playerRadius and ballRadius are in field units.
const (
	playerRadius = 6.0
	ballRadius   = 3.5
)

// Render draws the frame for the given match time. Players without a sample
// at or before t (bench players early in the match) are skipped.
func (f Frame) Render(result *match.MatchResultRaw, atMs uint64) (image.Image, error) {
	if result == nil || result.PositionData == nil {
		return nil, fmt.Errorf("no position data to render")
	}
	scale := f.Scale
	if scale <= 0 {
		scale = 1.0
	}

	w := int(match.FieldWidth * scale)
	h := int(match.FieldHeight * scale)
	dc := gg.NewContext(w, h)

	drawPitch(dc, scale)

	homeIDs := make(map[int]bool, len(result.HomeSquad.Main))
	for _, id := range result.HomeSquad.Main {
		homeIDs[id] = true
	}
	for _, id := range result.HomeSquad.Substitutes {
		homeIDs[id] = true
	}

	for id, samples := range result.PositionData.Players {
		if len(samples) == 0 {
			continue
		}
		pos, ok := result.PositionData.PlayerPositionAt(id, atMs)
		if !ok {
			continue
		}
		if homeIDs[id] {
			dc.SetRGB(0.85, 0.2, 0.2)
		} else {
			dc.SetRGB(0.2, 0.3, 0.85)
		}
		dc.DrawCircle(pos.X*scale, pos.Y*scale, playerRadius*scale)
		dc.Fill()
	}

	if ball, ok := result.PositionData.BallPositionAt(atMs); ok {
		dc.SetRGB(1, 1, 1)
		dc.DrawCircle(ball.X*scale, ball.Y*scale, ballRadius*scale)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.DrawCircle(ball.X*scale, ball.Y*scale, ballRadius*scale)
		dc.Stroke()
	}

	return dc.Image(), nil
}

// SavePNG renders the frame and writes it to path.
func (f Frame) SavePNG(result *match.MatchResultRaw, atMs uint64, path string) error {
	img, err := f.Render(result, atMs)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("write frame %q: %w", path, err)
	}
	return nil
}

func drawPitch(dc *gg.Context, scale float64) {
	dc.SetRGB(0.13, 0.45, 0.2)
	dc.Clear()

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2 * scale)

	w := match.FieldWidth * scale
	h := match.FieldHeight * scale

	// touchlines and halfway line
	dc.DrawRectangle(0, 0, w, h)
	dc.Stroke()
	dc.DrawLine(w/2, 0, w/2, h)
	dc.Stroke()
	dc.DrawCircle(w/2, h/2, 60*scale)
	dc.Stroke()

	// penalty areas
	depth := match.PenaltyAreaDepth * scale
	top := (match.FieldHeight/2 - match.PenaltyAreaHalfWidth) * scale
	height := 2 * match.PenaltyAreaHalfWidth * scale
	dc.DrawRectangle(0, top, depth, height)
	dc.Stroke()
	dc.DrawRectangle(w-depth, top, depth, height)
	dc.Stroke()
}
