package feed

// Position place un élément du fil dans une grille en colonnes.
type Position struct {
	Column int     `json:"column"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Positioned est une projection du fil avec sa position calculée.
type Positioned struct {
	Projection
	Position Position `json:"position"`
}

// Layout range les éléments en colonnes façon masonry : chaque élément va
// dans la colonne actuellement la plus courte (la plus à gauche en cas
// d'égalité), puis sa hauteur s'ajoute à celle de la colonne. Glouton et
// déterministe. Renvoie les éléments positionnés et les hauteurs finales
// des colonnes.
func Layout(items []Projection, columns int, containerWidth float64) ([]Positioned, []float64) {
	if columns <= 0 || containerWidth <= 0 {
		return nil, nil
	}

	columnWidth := containerWidth / float64(columns)
	heights := make([]float64, columns)
	positioned := make([]Positioned, 0, len(items))

	for _, item := range items {
		column := shortestColumn(heights)

		itemHeight := float64(item.Height)
		if itemHeight <= 0 {
			itemHeight = DefaultDimension
		}

		positioned = append(positioned, Positioned{
			Projection: item,
			Position: Position{
				Column: column,
				X:      columnWidth * float64(column),
				Y:      heights[column],
				Width:  columnWidth,
				Height: itemHeight,
			},
		})
		heights[column] += itemHeight
	}

	return positioned, heights
}

func shortestColumn(heights []float64) int {
	shortest := 0
	for i, h := range heights {
		if h < heights[shortest] {
			shortest = i
		}
	}
	return shortest
}
