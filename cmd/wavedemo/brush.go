package main

// gridOffset is a row/column displacement from a brush center.
type gridOffset struct {
	di, dj int
}

// footprint returns the offsets of every cell within radius of the center,
// center first.
func footprint(radius int) []gridOffset {
	if radius < 0 {
		radius = 0
	}
	cells := make([]gridOffset, 0, (2*radius+1)*(2*radius+1))
	cells = append(cells, gridOffset{})
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if (x != 0 || y != 0) && x*x+y*y <= r2 {
				cells = append(cells, gridOffset{di: y, dj: x})
			}
		}
	}
	return cells
}
