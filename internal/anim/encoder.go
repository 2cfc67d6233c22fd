package anim

import (
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fogleman/gg"
)

// Encoder packages a rendered frame sequence into a video artifact.
// Encoding is a soft capability: when no encoder is usable the task still
// gets valid stills and simply no video.
type Encoder interface {
	Name() string
	Extension() string
	Encode(frames []image.Image, path string) error
}

// NewEncoder picks the best usable encoder: ffmpeg when it is on PATH,
// otherwise the stdlib GIF fallback. The choice is made once, not per
// task.
func NewEncoder(fps int) Encoder {
	ff := &FFmpegEncoder{FPS: fps}
	if ff.Available() {
		return ff
	}
	return &GIFEncoder{FPS: fps}
}

// FFmpegEncoder shells out to ffmpeg: frames are written as PNGs to a
// scratch directory and packed into an mp4.
type FFmpegEncoder struct {
	FPS int
}

func (e *FFmpegEncoder) Name() string      { return "ffmpeg" }
func (e *FFmpegEncoder) Extension() string { return ".mp4" }

func (e *FFmpegEncoder) Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

func (e *FFmpegEncoder) Encode(frames []image.Image, path string) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}

	tmpDir, err := os.MkdirTemp("", "gravgen_frames_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	for i, frame := range frames {
		framePath := filepath.Join(tmpDir, fmt.Sprintf("frame_%04d.png", i))
		if err := gg.SavePNG(framePath, frame); err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
	}

	cmd := exec.Command("ffmpeg",
		"-y",
		"-framerate", fmt.Sprintf("%d", e.FPS),
		"-i", filepath.Join(tmpDir, "frame_%04d.png"),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, out)
	}
	return nil
}

// GIFEncoder is the dependency-free fallback.
type GIFEncoder struct {
	FPS int
}

func (e *GIFEncoder) Name() string      { return "gif" }
func (e *GIFEncoder) Extension() string { return ".gif" }

func (e *GIFEncoder) Encode(frames []image.Image, path string) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to encode")
	}
	return encodeGIF(frames, path, e.FPS)
}
