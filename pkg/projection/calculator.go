package projection

import "math"

// ThrowRange returns the closest and farthest throw distance that fills an
// image of the given width with a lens whose ratio spans [minRatio, maxRatio].
// Throw = width * ratio.
func ThrowRange(imageWidthFeet, minRatio, maxRatio float64) (nearest, farthest float64) {
	if minRatio > maxRatio {
		minRatio, maxRatio = maxRatio, minRatio
	}
	if imageWidthFeet <= 0 || minRatio <= 0 {
		return 0, 0
	}
	return imageWidthFeet * minRatio, imageWidthFeet * maxRatio
}

// RatioFor returns the throw ratio needed for a throw distance and width
func RatioFor(throwFeet, imageWidthFeet float64) float64 {
	if imageWidthFeet <= 0 || throwFeet <= 0 {
		return 0
	}
	return throwFeet / imageWidthFeet
}

// Diagonal returns the image diagonal for a width and height-per-width ratio
func Diagonal(widthFeet, heightPerWidth float64) float64 {
	if widthFeet <= 0 {
		return 0
	}
	return widthFeet * math.Sqrt(1+heightPerWidth*heightPerWidth)
}

// WidthForDiagonal is the inverse of Diagonal
func WidthForDiagonal(diagonalFeet, heightPerWidth float64) float64 {
	if diagonalFeet <= 0 {
		return 0
	}
	return diagonalFeet / math.Sqrt(1+heightPerWidth*heightPerWidth)
}
