package main

import (
	"fmt"

	"github.com/gogpu/gg"

	"wavegrid/internal/shade"
	"wavegrid/internal/wave"
)

// render paints one cell-sized square per vertex, viewed from above with
// row 0 at the top. The caller closes the returned context.
func render(sim *wave.Simulator, palette *shade.Palette, light wave.Vec3, cell int) (*gg.Context, error) {
	if cell < 1 {
		return nil, fmt.Errorf("cell size %d must be positive", cell)
	}
	rows, cols := sim.RowCount(), sim.ColumnCount()
	dc := gg.NewContext(cols*cell, rows*cell)
	size := float64(cell)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			c := palette.Shade(sim.Height(i, j), sim.Normal(sim.Index(i, j)), light)
			dc.SetRGB(c.R, c.G, c.B)
			dc.DrawRectangle(float64(j)*size, float64(i)*size, size, size)
			if err := dc.Fill(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("filling cell %d,%d: %w", i, j, err)
			}
		}
	}
	return dc, nil
}

func snapshot(path string, sim *wave.Simulator, palette *shade.Palette, light wave.Vec3, cell int) error {
	dc, err := render(sim, palette, light, cell)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
