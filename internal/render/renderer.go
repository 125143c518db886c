// Package render draws still frames of the arena for overlays and
// thumbnails. The renderer consumes snapshots only; it never touches the
// live session.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/fogleman/gg"

	"rallyball/internal/game"
)

var (
	colorBackground = color.RGBA{12, 12, 28, 255}
	colorGrid       = color.RGBA{30, 30, 45, 255}
	colorPaddle     = color.RGBA{235, 235, 245, 255}
	colorBall       = color.RGBA{255, 214, 90, 255}
	colorBlock      = color.RGBA{90, 160, 255, 255}
	colorBlockEdge  = color.RGBA{160, 205, 255, 255}
	colorText       = color.RGBA{235, 235, 245, 255}
	colorDim        = color.RGBA{120, 120, 140, 255}
)

// Renderer rasterizes snapshots at arena resolution.
type Renderer struct {
	width    int
	height   int
	fontPath string
}

// NewRenderer creates a renderer at the arena's native resolution.
func NewRenderer() *Renderer {
	return &Renderer{
		width:    int(game.ArenaWidth),
		height:   int(game.ArenaHeight),
		fontPath: getFontPath(),
	}
}

// RenderPNG draws the snapshot and returns encoded PNG bytes.
func (r *Renderer) RenderPNG(snap game.Snapshot) ([]byte, error) {
	dc := gg.NewContext(r.width, r.height)

	r.drawBackground(dc)
	r.drawCenterLine(dc)
	r.drawBlocks(dc, snap.Blocks)
	r.drawPaddles(dc, snap)
	r.drawBall(dc, snap)
	r.drawScoreboard(dc, snap)
	r.drawOverlay(dc, snap)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawBackground(dc *gg.Context) {
	dc.SetColor(colorBackground)
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	dc.Fill()
}

func (r *Renderer) drawCenterLine(dc *gg.Context) {
	dc.SetColor(colorGrid)
	dc.SetLineWidth(3)

	x := float64(r.width) / 2
	dashLen := 24.0
	for y := 0.0; y < float64(r.height); y += dashLen * 2 {
		dc.DrawLine(x, y, x, y+dashLen)
		dc.Stroke()
	}
}

func (r *Renderer) drawPaddles(dc *gg.Context, snap game.Snapshot) {
	dc.SetColor(colorPaddle)
	dc.DrawRectangle(game.PaddleMargin, snap.PaddleL.Y, game.PaddleWidth, game.PaddleHeight)
	dc.Fill()
	dc.DrawRectangle(game.ArenaWidth-game.PaddleMargin-game.PaddleWidth, snap.PaddleR.Y,
		game.PaddleWidth, game.PaddleHeight)
	dc.Fill()
}

func (r *Renderer) drawBall(dc *gg.Context, snap game.Snapshot) {
	// Shadow
	dc.SetColor(color.RGBA{0, 0, 0, 128})
	dc.DrawCircle(snap.Ball.X, snap.Ball.Y+4, game.BallHalf)
	dc.Fill()

	dc.SetColor(colorBall)
	dc.DrawCircle(snap.Ball.X, snap.Ball.Y, game.BallHalf)
	dc.Fill()

	// Spin marker visualizes the rotation telemetry during clutch play.
	if snap.RotationDelta != 0 {
		angle := snap.RotationDelta * math.Pi / 180
		dc.SetColor(colorBackground)
		dc.DrawCircle(
			snap.Ball.X+math.Cos(angle)*game.BallHalf*0.5,
			snap.Ball.Y+math.Sin(angle)*game.BallHalf*0.5,
			2)
		dc.Fill()
	}
}

func (r *Renderer) drawBlocks(dc *gg.Context, blocks []game.BlockSnapshot) {
	for _, b := range blocks {
		x := b.X - game.BlockWidth/2
		y := b.Y - game.BlockHeight/2

		dc.SetColor(colorBlock)
		dc.DrawRectangle(x, y, game.BlockWidth, game.BlockHeight)
		dc.Fill()

		dc.SetColor(colorBlockEdge)
		dc.SetLineWidth(2)
		dc.DrawRectangle(x, y, game.BlockWidth, game.BlockHeight)
		dc.Stroke()
	}
}

func (r *Renderer) drawScoreboard(dc *gg.Context, snap game.Snapshot) {
	cx := float64(r.width) / 2

	dc.SetColor(colorText)
	if err := dc.LoadFontFace(r.fontPath, 48); err == nil {
		dc.DrawStringAnchored(fmt.Sprintf("%d", snap.ScoreLeft), cx-80, 48, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%d", snap.ScoreRight), cx+80, 48, 0.5, 0.5)
	}

	dc.SetColor(colorDim)
	if err := dc.LoadFontFace(r.fontPath, 20); err == nil {
		dc.DrawStringAnchored(snap.P1Name, cx-200, 48, 1.0, 0.5)
		dc.DrawStringAnchored(snap.P2Name, cx+200, 48, 0.0, 0.5)

		if snap.Deuce {
			dc.DrawStringAnchored("DEUCE", cx, 84, 0.5, 0.5)
		}
	}
}

// drawOverlay renders phase-specific banners over the playfield.
func (r *Renderer) drawOverlay(dc *gg.Context, snap game.Snapshot) {
	cx := float64(r.width) / 2
	cy := float64(r.height) / 2

	switch snap.Phase {
	case "countdown":
		dc.SetColor(colorText)
		if err := dc.LoadFontFace(r.fontPath, 96); err == nil {
			dc.DrawStringAnchored(fmt.Sprintf("%d", snap.CountdownRemaining), cx, cy-80, 0.5, 0.5)
		}
	case "paused":
		dc.SetColor(color.RGBA{0, 0, 0, 150})
		dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
		dc.Fill()
		dc.SetColor(colorText)
		if err := dc.LoadFontFace(r.fontPath, 64); err == nil {
			dc.DrawStringAnchored("PAUSED", cx, cy, 0.5, 0.5)
		}
	case "game_over":
		dc.SetColor(colorText)
		if err := dc.LoadFontFace(r.fontPath, 64); err == nil {
			winner := snap.P1Name
			if snap.ScoreRight > snap.ScoreLeft {
				winner = snap.P2Name
			}
			dc.DrawStringAnchored(fmt.Sprintf("%s WINS", winner), cx, cy-80, 0.5, 0.5)
		}
	}
}

// getFontPath resolves the UI font, preferring the FONT_PATH override.
func getFontPath() string {
	if p := os.Getenv("FONT_PATH"); p != "" {
		return p
	}

	candidates := []string{
		"./assets/fonts/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return candidates[0]
}
