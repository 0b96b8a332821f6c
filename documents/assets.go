package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

const maxAssetBytes = 10 << 20

// AssetLoadError reports a logo or picture that could not be used.
// Renderers fall back to text-only layout when they get one.
type AssetLoadError struct {
	Ref string
	Err error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("asset %q: %v", e.Ref, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// Asset is a decoded image re-encoded in a format the PDF writer reads.
type Asset struct {
	Ref       string
	Data      []byte
	ImageType string // PNG or JPG
	Width     int
	Height    int
}

// AspectRatio is height over width.
func (a *Asset) AspectRatio() float64 {
	if a.Width == 0 {
		return 1
	}
	return float64(a.Height) / float64(a.Width)
}

// AssetLoader resolves image references to local files under BaseDir or to http(s) URLs.
type AssetLoader struct {
	baseDir  string
	client   *http.Client
	maxWidth uint
}

func NewAssetLoader(baseDir string, client *http.Client) *AssetLoader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &AssetLoader{
		baseDir:  baseDir,
		client:   client,
		maxWidth: 800,
	}
}

// Load fetches and normalizes one image. Every failure is an *AssetLoadError.
func (l *AssetLoader) Load(ctx context.Context, ref string) (*Asset, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, &AssetLoadError{Ref: ref, Err: errors.New("empty reference")}
	}

	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		raw, err = l.fetch(ctx, ref)
	} else {
		raw, err = l.readLocal(ref)
	}
	if err != nil {
		return nil, &AssetLoadError{Ref: ref, Err: err}
	}

	asset, err := l.normalize(raw)
	if err != nil {
		return nil, &AssetLoadError{Ref: ref, Err: err}
	}
	asset.Ref = ref
	return asset, nil
}

func (l *AssetLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
}

// readLocal only reads inside the base directory.
func (l *AssetLoader) readLocal(ref string) ([]byte, error) {
	if l.baseDir == "" {
		return nil, errors.New("no assets directory configured")
	}
	path := filepath.Join(l.baseDir, filepath.Clean("/"+filepath.ToSlash(ref)))

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, maxAssetBytes))
}

// normalize decodes the image, downscales wide pictures and re-encodes it.
func (l *AssetLoader) normalize(raw []byte) (*Asset, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if uint(img.Bounds().Dx()) > l.maxWidth {
		img = resize.Resize(l.maxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	imageType := "PNG"
	if format == "jpeg" {
		imageType = "JPG"
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	} else {
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return &Asset{
		Data:      buf.Bytes(),
		ImageType: imageType,
		Width:     img.Bounds().Dx(),
		Height:    img.Bounds().Dy(),
	}, nil
}
