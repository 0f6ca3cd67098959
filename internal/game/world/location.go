package world

// Point is a position on the province map grid.
type Point struct {
	X, Y int
}

// Location is a named place the player can stand at. CitySeed packs the
// location's map point; SkySeed drives distant mountain generation.
type Location struct {
	Name     string
	Climate  ClimateKind
	CitySeed uint32
	SkySeed  uint32
}

// Province groups locations. Provinces with an animated land feature record
// its map position so distant skies can pick a size variant by distance.
type Province struct {
	Name            string
	HasAnimatedLand bool
	AnimLandPoint   Point
	Locations       []Location
}

// LocalCityPoint unpacks a city seed into its map point: the high 16 bits
// hold X, the low 16 bits Y.
func LocalCityPoint(seed uint32) Point {
	return Point{
		X: int(seed >> 16),
		Y: int(seed & 0xFFFF),
	}
}

// MapDistance is the executable's approximation of distance between two map
// points: the larger axis delta plus a quarter of the smaller.
func MapDistance(a, b Point) int {
	dx := absInt(a.X - b.X)
	dy := absInt(a.Y - b.Y)
	if dx > dy {
		return dx + dy/4
	}
	return dy + dx/4
}

// MapPoint returns the location's position on the province map.
func (l Location) MapPoint() Point {
	return LocalCityPoint(l.CitySeed)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
