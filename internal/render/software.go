package render

import (
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/ivlev/shotmaster/internal/config"
)

// SoftwareEngine is the built-in reference engine. It renders a
// deterministic synthetic frame per camera and frame number, scales it
// by the resolution percentage and writes PNG, JPEG or TIFF output.
// OPEN_EXR is not supported and fails per invocation. With Slate set,
// a QR tag encoding camera, engine and frame is stamped into the
// bottom-right corner so output files stay traceable to their shot.
type SoftwareEngine struct {
	Slate bool
}

// NewSoftwareEngine returns an engine with slate burn-ins enabled.
func NewSoftwareEngine() *SoftwareEngine {
	return &SoftwareEngine{Slate: true}
}

func (e *SoftwareEngine) RenderStill(ctx context.Context, cfg config.RenderConfig, outBase string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := e.renderFrame(cfg, cfg.FrameStart)
	if err != nil {
		return err
	}
	return e.writeImage(img, cfg.FileFormat, outBase+config.ExtFor(cfg.FileFormat))
}

func (e *SoftwareEngine) RenderAnimation(ctx context.Context, cfg config.RenderConfig, outBase string) error {
	if cfg.FrameEnd < cfg.FrameStart {
		return fmt.Errorf("empty frame range %d..%d", cfg.FrameStart, cfg.FrameEnd)
	}
	for frame := cfg.FrameStart; frame <= cfg.FrameEnd; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := e.renderFrame(cfg, frame)
		if err != nil {
			return err
		}
		path := fmt.Sprintf("%s_%04d%s", outBase, frame, config.ExtFor(cfg.FileFormat))
		if err := e.writeImage(img, cfg.FileFormat, path); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return nil
}

func (e *SoftwareEngine) RenderPreview(ctx context.Context, cfg config.RenderConfig) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.renderFrame(cfg, cfg.FrameStart)
}

// renderFrame draws the synthetic frame at full resolution, then scales
// to the percentage-reduced output size.
func (e *SoftwareEngine) renderFrame(cfg config.RenderConfig, frame int) (*image.RGBA, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", cfg.Width, cfg.Height)
	}

	h := fnv.New32a()
	h.Write([]byte(cfg.CameraName))
	h.Write([]byte(cfg.Engine))
	seed := h.Sum32()

	full := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	baseR := uint8(seed >> 16)
	baseG := uint8(seed >> 8)
	baseB := uint8(seed)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			full.SetRGBA(x, y, color.RGBA{
				R: baseR + uint8((x*255)/cfg.Width),
				G: baseG + uint8((y*255)/cfg.Height),
				B: baseB + uint8(frame),
				A: 255,
			})
		}
	}

	if e.Slate {
		if err := e.stampSlate(full, cfg, frame); err != nil {
			return nil, err
		}
	}

	pct := cfg.Percentage
	if pct <= 0 || pct > 100 {
		pct = 100
	}
	if pct == 100 {
		return full, nil
	}

	outW := cfg.Width * pct / 100
	outH := cfg.Height * pct / 100
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	scaled := image.NewRGBA(image.Rect(0, 0, outW, outH))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), full, full.Bounds(), xdraw.Over, nil)
	return scaled, nil
}

// stampSlate draws the QR shot tag into the bottom-right corner.
func (e *SoftwareEngine) stampSlate(dst *image.RGBA, cfg config.RenderConfig, frame int) error {
	tag := fmt.Sprintf("%s|%s|%d", cfg.CameraName, cfg.Engine, frame)
	qr, err := qrcode.New(tag, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("slate: %w", err)
	}

	size := dst.Bounds().Dy() / 8
	if size < 32 {
		size = 32
	}
	tile := qr.Image(size)
	b := dst.Bounds()
	target := image.Rect(b.Max.X-size-8, b.Max.Y-size-8, b.Max.X-8, b.Max.Y-8)
	xdraw.Draw(dst, target, tile, tile.Bounds().Min, xdraw.Over)
	return nil
}

func (e *SoftwareEngine) writeImage(img image.Image, format, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case config.FormatJPEG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	case config.FormatTIFF:
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case config.FormatEXR:
		err = fmt.Errorf("format %s not supported by the software engine", format)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
