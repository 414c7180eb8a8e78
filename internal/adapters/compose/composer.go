package compose

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/astropost/internal/ports"
	"github.com/mitchellh/go-wordwrap"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	Width  = 1080
	Height = 1350

	titleSize       = 110
	bodySize        = 75
	margin          = 80
	wrapColumns     = 22
	lineSpacing     = 20
	titleBodyGap    = 60
	overlayAlpha    = 128
	defaultOutput   = "generated_posts"
	timestampLayout = "20060102_150405"
)

type Config struct {
	OutputDir string
	// FontPath points at a TTF/OTF file. Go Regular is used when it is empty or unreadable.
	FontPath string
}

type Composer struct {
	outputDir string
	font      *opentype.Font
	now       func() time.Time
}

var _ ports.ImageComposer = (*Composer)(nil)

func NewComposer(cfg Config, logger logrus.FieldLogger) (*Composer, error) {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = defaultOutput
	}

	parsed, err := loadFont(cfg.FontPath)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("font_path", cfg.FontPath).Warn("falling back to the built-in font")
		}
		parsed, err = opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("parse built-in font: %w", err)
		}
	}

	return &Composer{outputDir: outputDir, font: parsed, now: time.Now}, nil
}

func loadFont(path string) (*opentype.Font, error) {
	if strings.TrimSpace(path) == "" {
		return opentype.Parse(goregular.TTF)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return parsed, nil
}

// Compose renders title and body over the source photo and writes a PNG post image.
func (c *Composer) Compose(ctx context.Context, sourcePath, body, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	src, err := decodeImage(sourcePath)
	if err != nil {
		return "", err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.CatmullRom.Scale(canvas, canvas.Bounds(), src, portraitCrop(src.Bounds()), draw.Src, nil)
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.NRGBA{A: overlayAlpha}), image.Point{}, draw.Over)

	if err := c.drawText(canvas, body, title); err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return c.write(canvas, title)
}

func decodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode source image: %w", err)
	}
	return img, nil
}

// portraitCrop returns the centred sub-rectangle of b with the post aspect ratio.
func portraitCrop(b image.Rectangle) image.Rectangle {
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return b
	}

	if srcW*Height > srcH*Width {
		cropW := srcH * Width / Height
		left := b.Min.X + (srcW-cropW)/2
		return image.Rect(left, b.Min.Y, left+cropW, b.Max.Y)
	}

	cropH := srcW * Height / Width
	top := b.Min.Y + (srcH-cropH)/2
	return image.Rect(b.Min.X, top, b.Max.X, top+cropH)
}

func (c *Composer) drawText(canvas *image.RGBA, body, title string) error {
	titleFace, err := c.face(titleSize)
	if err != nil {
		return err
	}
	defer titleFace.Close()

	bodyFace, err := c.face(bodySize)
	if err != nil {
		return err
	}
	defer bodyFace.Close()

	lines := strings.Split(wordwrap.WrapString(strings.TrimSpace(body), wrapColumns), "\n")

	titleMetrics := titleFace.Metrics()
	bodyMetrics := bodyFace.Metrics()
	titleHeight := (titleMetrics.Ascent + titleMetrics.Descent).Ceil()
	bodyLine := (bodyMetrics.Ascent + bodyMetrics.Descent).Ceil()
	bodyHeight := len(lines)*(bodyLine+lineSpacing) - lineSpacing

	startY := (Height - (titleHeight + 40 + bodyHeight)) / 2

	drawer := &font.Drawer{Dst: canvas, Src: image.White, Face: titleFace}
	titleWidth := drawer.MeasureString(title).Round()
	drawer.Dot = fixed.P((Width-titleWidth)/2, startY+titleMetrics.Ascent.Ceil())
	drawer.DrawString(title)

	drawer.Face = bodyFace
	y := startY + titleHeight + titleBodyGap + bodyMetrics.Ascent.Ceil()
	for _, line := range lines {
		drawer.Dot = fixed.P(margin, y)
		drawer.DrawString(line)
		y += bodyLine + lineSpacing
	}

	return nil
}

func (c *Composer) face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create %.0fpt face: %w", size, err)
	}
	return face, nil
}

func (c *Composer) write(canvas image.Image, title string) (string, error) {
	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("post_%s_%s.png", strings.ReplaceAll(title, " ", "_"), c.now().Format(timestampLayout))
	target := filepath.Join(c.outputDir, name)

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create post image: %w", err)
	}

	if err := png.Encode(file, canvas); err != nil {
		_ = file.Close()
		return "", errors.Join(fmt.Errorf("encode post image: %w", err), os.Remove(target))
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close post image: %w", err)
	}

	return target, nil
}
