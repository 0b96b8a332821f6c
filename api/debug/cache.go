package debug

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (drm *DebugRoutesManager) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := drm.cacheService.DeletePattern(r.Context(), "*"); err != nil {
		drm.logger.Error("Failed to clear cache", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Cache clear failed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Cache cleared"),
		gecho.Send(),
	)
}
