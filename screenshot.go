package oktay2d

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// imageSource is implemented by contexts backed by an ebiten image.
type imageSource interface {
	Image() *ebiten.Image
}

// Screenshot queues a labeled screenshot to be captured at the end of the
// next RenderFrame. The PNG is written to ScreenshotDir with a timestamped
// filename. Only contexts backed by an ebiten image can be captured.
func (r *Renderer) Screenshot(label string) {
	r.screenshotQueue = append(r.screenshotQueue, label)
}

// flushScreenshots writes one PNG per queued label.
func (r *Renderer) flushScreenshots() {
	if len(r.screenshotQueue) == 0 {
		return
	}
	defer func() { r.screenshotQueue = r.screenshotQueue[:0] }()

	src, ok := r.ctx.(imageSource)
	if !ok || src.Image() == nil {
		Logger().Warn("screenshot: context has no backing image", "queued", len(r.screenshotQueue))
		return
	}
	if err := os.MkdirAll(r.ScreenshotDir, 0o755); err != nil {
		Logger().Warn("screenshot: mkdir", "dir", r.ScreenshotDir, "err", err)
		return
	}

	screen := src.Image()
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		cr, cg, cb, ca := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if ca > 0 && ca < 255 {
			cr = uint8(min(int(cr)*255/int(ca), 255))
			cg = uint8(min(int(cg)*255/int(ca), 255))
			cb = uint8(min(int(cb)*255/int(ca), 255))
		}
		img.Pix[i] = cr
		img.Pix[i+1] = cg
		img.Pix[i+2] = cb
		img.Pix[i+3] = ca
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range r.screenshotQueue {
		path := filepath.Join(r.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			Logger().Warn("screenshot: write", "err", err)
		}
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
