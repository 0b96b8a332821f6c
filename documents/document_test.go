package documents

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testShop() *structs.ShopConfig {
	return &structs.ShopConfig{
		Name:              "La Cave du Vigneron",
		Currency:          "€",
		MinGiftCardAmount: decimal.NewFromInt(10),
		LogoPath:          "logo.png",
		ContactLines: []string{
			"La Cave du Vigneron",
			"12 rue des Vendanges, 21200 Beaune",
			"03 80 00 00 00",
			"boutique@cave-du-vigneron.fr",
		},
		Disclaimer: "Carte valable un an à compter de sa date d'émission. Non remboursable, non échangeable contre des espèces.",
	}
}

func testLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false)))
}

// testRenderer writes uncompressed documents so tests can look for drawn text.
func testRenderer(t *testing.T, assetsDir string) *Renderer {
	t.Helper()
	r := NewRenderer(testShop(), NewAssetLoader(assetsDir, nil), testLogger())
	r.compress = false
	return r
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 114, G: 28, B: 44, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeAsset(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}
