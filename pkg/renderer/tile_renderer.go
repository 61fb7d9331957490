package renderer

import (
	"image"
	"math"

	"github.com/df07/go-sphere-marcher/pkg/geometry"
	"github.com/df07/go-sphere-marcher/pkg/integrator"
)

// TileRenderer shades the pixels of individual tiles using an integrator
type TileRenderer struct {
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given integrator
func NewTileRenderer(integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{integrator: integratorInst}
}

// PixelAngles returns the ray direction for pixel (x, y). Pitch falls by
// vfov/height per row from the top edge; yaw rises by hfov/width per column
// from the left edge.
func PixelAngles(camera geometry.Camera, x, y, width, height int) (pitch, yaw float64) {
	vfov := camera.VFov(width, height)
	pitch = camera.Pitch + vfov/2 - float64(y)*(vfov/float64(height))
	yaw = camera.Yaw - camera.HFov/2 + float64(x)*(camera.HFov/float64(width))
	return pitch, yaw
}

// RenderTileBounds shades the pixels within bounds into frame. With a block
// size above one, only the top-left pixel of each block is shaded and its
// color fills the block.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, camera geometry.Camera, blockSize int, frame *Frame) RenderStats {
	blockSize = max(1, blockSize)
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y += blockSize {
		for x := bounds.Min.X; x < bounds.Max.X; x += blockSize {
			pitch, yaw := PixelAngles(camera, x, y, frame.Width, frame.Height)
			result := tr.integrator.RayColor(camera.Position, pitch, yaw)

			stats.SampledPixels++
			stats.TotalSteps += result.Steps
			if result.Hit {
				stats.Hits++
			} else {
				stats.Misses++
			}

			for by := y; by < min(y+blockSize, bounds.Max.Y); by++ {
				for bx := x; bx < min(x+blockSize, bounds.Max.X); bx++ {
					frame.Set(bx, by, result.Color)
				}
			}
		}
	}

	stats.finalize()
	return stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image in row-major order
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// log2Ceil returns the number of halvings needed to bring n down to 1
func log2Ceil(n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(n))))
}
