package documents

import (
	"context"

	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
)

const ContentTypePDF = "application/pdf"

// RenderedDocument is a generated file ready to attach or download. It is never persisted.
type RenderedDocument struct {
	Filename    string
	ContentType string
	Content     []byte
	Pages       int
}

// Renderer draws the shop's printable documents.
type Renderer struct {
	shop     *structs.ShopConfig
	assets   *AssetLoader
	logger   *gecho.Logger
	compress bool
}

func NewRenderer(shop *structs.ShopConfig, assets *AssetLoader, logger *gecho.Logger) *Renderer {
	return &Renderer{
		shop:     shop,
		assets:   assets,
		logger:   logger,
		compress: true,
	}
}

// loadOptional loads an asset that the document can do without; failures are logged and nil is returned.
func (r *Renderer) loadOptional(ctx context.Context, ref, purpose string) *Asset {
	if ref == "" || r.assets == nil {
		return nil
	}

	asset, err := r.assets.Load(ctx, ref)
	if err != nil {
		r.logger.Warn("Optional asset unavailable, rendering without it",
			gecho.Field("purpose", purpose),
			gecho.Field("error", err),
		)
		return nil
	}
	return asset
}

// fitWidth scales an asset to the given width keeping its proportions.
func fitWidth(asset *Asset, width float64) (float64, float64) {
	return width, width * asset.AspectRatio()
}

// fitHeight scales an asset to the given height keeping its proportions.
func fitHeight(asset *Asset, height float64) (float64, float64) {
	return height / asset.AspectRatio(), height
}
