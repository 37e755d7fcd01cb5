package rules

import "github.com/battlesnakeio/snake/game"

// scriptedRand replays a fixed list of draws, each reduced into range.
type scriptedRand struct {
	values []int32
	next   int
}

func (r *scriptedRand) Int31n(n int32) int32 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

func points(coords ...int32) []game.Point {
	out := make([]game.Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, game.Point{X: coords[i], Y: coords[i+1]})
	}
	return out
}
