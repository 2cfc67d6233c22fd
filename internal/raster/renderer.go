package raster

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/physgen/gravgen/internal/config"
	"github.com/physgen/gravgen/internal/scenario"
)

// Renderer draws the task stills and animation frames. All placement math
// comes from the Mapper; this layer only puts pixels on a canvas.
type Renderer struct {
	mapper *Mapper
	radius float64 // ball radius, pixels
	ballR  int
	ballG  int
	ballB  int
	visual config.VisualConfig
}

func NewRenderer(mapper *Mapper, ball config.BallConfig, visual config.VisualConfig) *Renderer {
	r, g, b := 220, 60, 60
	if len(ball.Color) == 3 {
		r, g, b = ball.Color[0], ball.Color[1], ball.Color[2]
	}
	return &Renderer{
		mapper: mapper,
		radius: float64(ball.Radius),
		ballR:  r,
		ballG:  g,
		ballB:  b,
		visual: visual,
	}
}

// Frame renders one plain animation frame with the ball center at the
// given pixel position.
func (r *Renderer) Frame(px, py float64) image.Image {
	dc := r.newCanvas()
	r.drawBall(dc, px, py)
	return dc.Image()
}

// Initial renders the "before" still: the ball at its starting placement,
// annotated with the scenario parameters.
func (r *Renderer) Initial(px, py float64, sc scenario.Scenario) image.Image {
	dc := r.newCanvas()
	r.drawBall(dc, px, py)
	if r.visual.ShowVelocityArrow && sc.Velocity != 0 {
		r.drawVelocityArrow(dc, px, py, sc.Velocity)
	}
	if r.visual.ShowGravityArrow {
		r.drawGravityArrow(dc, sc.Gravity)
	}
	r.drawCaption(dc, fmt.Sprintf("h0 = %.1f m   v0 = %+.1f m/s", sc.Height, sc.Velocity))
	return dc.Image()
}

// Final renders the "after" still: the ball at the selected final
// placement, with no initial-condition arrows.
func (r *Renderer) Final(px, py float64, sc scenario.Scenario) image.Image {
	dc := r.newCanvas()
	r.drawBall(dc, px, py)
	if r.visual.ShowGravityArrow {
		r.drawGravityArrow(dc, sc.Gravity)
	}
	return dc.Image()
}

func (r *Renderer) newCanvas() *gg.Context {
	dc := gg.NewContext(r.mapper.Width, r.mapper.Height)

	dc.SetRGB255(235, 245, 255)
	dc.Clear()

	if r.visual.ShowGround {
		groundY := r.mapper.GroundY()
		dc.SetRGB255(160, 130, 90)
		dc.DrawRectangle(0, groundY, float64(r.mapper.Width), float64(r.mapper.Height)-groundY)
		dc.Fill()
		dc.SetRGB255(100, 80, 50)
		dc.SetLineWidth(3)
		dc.DrawLine(0, groundY, float64(r.mapper.Width), groundY)
		dc.Stroke()
	}

	if r.visual.ShowHeightMarkers {
		r.drawHeightMarkers(dc)
	}

	return dc
}

func (r *Renderer) drawHeightMarkers(dc *gg.Context) {
	dc.SetRGB255(120, 120, 130)
	dc.SetLineWidth(1)
	topMeters := (r.mapper.GroundY() / r.mapper.Scale) * 1.2
	for h := 5.0; h < topMeters; h += 5.0 {
		_, py := r.mapper.ToPixels(0, r.mapper.GroundHeight+h)
		if py < 0 {
			break
		}
		dc.DrawLine(0, py, 14, py)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%.0f m", h), 18, py, 0, 0.4)
	}
}

func (r *Renderer) drawBall(dc *gg.Context, px, py float64) {
	dc.SetRGB255(r.ballR, r.ballG, r.ballB)
	dc.DrawCircle(px, py, r.radius)
	dc.Fill()
	dc.SetRGB255(r.ballR/2, r.ballG/2, r.ballB/2)
	dc.SetLineWidth(2)
	dc.DrawCircle(px, py, r.radius)
	dc.Stroke()
}

func (r *Renderer) drawVelocityArrow(dc *gg.Context, px, py, velocity float64) {
	// Arrow length tracks speed but stays readable.
	length := velocity * r.mapper.Scale * 0.3
	if length > 120 {
		length = 120
	}
	if length < -120 {
		length = -120
	}
	tipY := py - length

	dc.SetRGB255(30, 140, 40)
	dc.SetLineWidth(3)
	dc.DrawLine(px, py, px, tipY)
	dc.Stroke()

	head := 8.0
	if velocity < 0 {
		head = -8.0
	}
	dc.DrawLine(px, tipY, px-6, tipY+head)
	dc.DrawLine(px, tipY, px+6, tipY+head)
	dc.Stroke()

	dc.DrawStringAnchored(fmt.Sprintf("%+.1f m/s", velocity), px+12, (py+tipY)/2, 0, 0.4)
}

func (r *Renderer) drawGravityArrow(dc *gg.Context, gravity float64) {
	x := float64(r.mapper.Width) - 50
	top := 40.0
	bottom := top + 60

	dc.SetRGB255(70, 70, 180)
	dc.SetLineWidth(3)
	dc.DrawLine(x, top, x, bottom)
	dc.DrawLine(x, bottom, x-6, bottom-8)
	dc.DrawLine(x, bottom, x+6, bottom-8)
	dc.Stroke()

	dc.DrawStringAnchored(fmt.Sprintf("g = %.1f m/s2", gravity), x, bottom+16, 0.5, 0.5)
}

func (r *Renderer) drawCaption(dc *gg.Context, text string) {
	dc.SetRGB255(40, 40, 40)
	dc.DrawStringAnchored(text, 10, float64(r.mapper.Height)-14, 0, 0.5)
}
