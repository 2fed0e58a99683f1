package geom

import "math"

// hexConst is the regular hexagon area coefficient: A = (3√3/2)·s².
const hexConst = 2.598076211353316 // 3·√3/2

// HexArea returns the area of a regular hexagon with the given side length.
func HexArea(side float64) float64 {
	return hexConst * side * side
}

// SideForArea returns the side length of a regular hexagon with the given
// area. It is the exact inverse of HexArea.
func SideForArea(area float64) float64 {
	return math.Sqrt(area / hexConst)
}

// AxialToXY converts axial hex coordinates (q, r) to Cartesian meters for a
// pointy-top hexagon lattice with the given side length.
func AxialToXY(q, r int, side float64) Point {
	return Point{
		X: side * math.Sqrt(3) * (float64(q) + float64(r)/2.0),
		Y: side * 1.5 * float64(r),
	}
}

// HexagonVertices returns the six vertices of a regular pointy-top hexagon
// centered at center, at angles 30°+60°·k, in counterclockwise order.
func HexagonVertices(center Point, side float64) Polygon {
	vertices := make([]Point, 6)
	for k := 0; k < 6; k++ {
		angle := (30.0 + 60.0*float64(k)) * math.Pi / 180.0
		vertices[k] = Point{
			X: center.X + side*math.Cos(angle),
			Y: center.Y + side*math.Sin(angle),
		}
	}
	return Polygon{Vertices: vertices}
}
