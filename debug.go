package geoplot

import (
	"context"
	"log/slog"
	"time"
)

// debugLogInterval is the number of frames between two stats lines.
const debugLogInterval = 120

// frameStats holds per-frame timing and draw metrics of the viewer.
type frameStats struct {
	basemapTime  time.Duration
	layersTime   time.Duration
	overlayTime  time.Duration
	tilesDrawn   int
	tilesMissing int
	painters     int
	batches      int
}

func (s frameStats) total() time.Duration {
	return s.basemapTime + s.layersTime + s.overlayTime
}

// debugLog logs the stats of every debugLogInterval-th frame at debug level.
func debugLog(log *slog.Logger, frame int, stats frameStats) {
	if frame%debugLogInterval != 0 || !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	log.Debug("frame stats",
		"frame", frame,
		"basemap", stats.basemapTime,
		"layers", stats.layersTime,
		"overlay", stats.overlayTime,
		"total", stats.total(),
		"tiles_drawn", stats.tilesDrawn,
		"tiles_missing", stats.tilesMissing,
		"painters", stats.painters,
		"batches", stats.batches,
	)
}
