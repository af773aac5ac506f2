package terrain

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
)

type regionKey struct {
	rx, ry int32
}

// Engine answers surface-height queries against loaded heightmap regions.
// Thread-safe: regions are loaded once before serving and never modified.
type Engine struct {
	regions map[regionKey]*Region
}

// NewEngine creates an empty engine (no regions loaded).
func NewEngine() *Engine {
	return &Engine{regions: make(map[regionKey]*Region)}
}

// LoadHeightmaps loads all .hgz files from the given directory.
// File naming convention: "<regionX>_<regionY>.hgz".
func (e *Engine) LoadHeightmaps(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading heightmap dir %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".hgz" {
			continue
		}

		var rx, ry int32
		base := name[:len(name)-len(ext)]
		if _, err := fmt.Sscanf(base, "%d_%d", &rx, &ry); err != nil {
			slog.Warn("skip heightmap file (bad name)", "file", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("reading heightmap %s: %w", name, err)
		}

		region, err := LoadRegion(data)
		if err != nil {
			return fmt.Errorf("parsing heightmap %s: %w", name, err)
		}

		e.regions[regionKey{rx, ry}] = region
		loaded++
	}

	slog.Info("heightmaps loaded", "regions", loaded, "dir", dir)
	return nil
}

// IsLoaded returns true if any heightmap regions are loaded.
func (e *Engine) IsLoaded() bool {
	return len(e.regions) > 0
}

// HeightAt returns the terrain surface height at world position (x, y).
// Returns false if no region is loaded there or the cell has no surface.
func (e *Engine) HeightAt(x, y float64) (float64, bool) {
	rx := int32(math.Floor(x / RegionSpan))
	ry := int32(math.Floor(y / RegionSpan))

	region, ok := e.regions[regionKey{rx, ry}]
	if !ok {
		return 0, false
	}

	cx := int(math.Floor((x - float64(rx)*RegionSpan) / CellSize))
	cy := int(math.Floor((y - float64(ry)*RegionSpan) / CellSize))
	return region.at(cx, cy)
}
