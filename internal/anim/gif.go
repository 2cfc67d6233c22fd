package anim

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

func encodeGIF(frames []image.Image, path string, fps int) error {
	// GIF delays are in hundredths of a second; round so the default
	// 15 fps maps to 7 rather than a truncated 6.
	delay := (100 + fps/2) / fps
	if delay < 2 {
		delay = 2
	}

	out := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		bounds := frame.Bounds()
		paletted := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, bounds, frame, bounds.Min)
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gif.EncodeAll(f, out)
}
