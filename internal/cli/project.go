package cli

import (
	"fmt"

	"github.com/ctessum/geom/proj"

	"github.com/katalvlaran/cartogram/geometry"
)

// DefaultSourceProjection describes plain longitude/latitude input.
const DefaultSourceProjection = "+proj=longlat +datum=WGS84"

// projectCollection reprojects every ring of c from src to dst (PROJ.4
// strings) and recomputes the bounding box. Flow areas are planar, so
// geographic input should be taken to an equal-area projection first.
func projectCollection(c *collection, src, dst string) error {
	srcSR, err := proj.Parse(src)
	if err != nil {
		return fmt.Errorf("source projection %q: %w", src, err)
	}
	dstSR, err := proj.Parse(dst)
	if err != nil {
		return fmt.Errorf("target projection %q: %w", dst, err)
	}
	tr, err := srcSR.NewTransform(dstSR)
	if err != nil {
		return fmt.Errorf("projection transform: %w", err)
	}

	var all []geometry.Ring
	for ri := range c.regions {
		for _, tagged := range c.regions[ri].Rings {
			for n, p := range tagged.Ring {
				x, y, err := tr(p.X, p.Y)
				if err != nil {
					return fmt.Errorf("feature %d point (%g,%g): %w", ri, p.X, p.Y, err)
				}
				tagged.Ring[n] = geometry.Point{X: x, Y: y}
			}
			all = append(all, tagged.Ring)
		}
	}
	if bbox, ok := geometry.BoundsOf(all); ok {
		c.bbox = bbox
	}

	return nil
}
