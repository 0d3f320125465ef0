package hand

// Street names an action or dealing round.
type Street string

const (
	BlindsAntes Street = "BLINDSANTES"

	Preflop Street = "PREFLOP"
	Flop    Street = "FLOP"
	Turn    Street = "TURN"
	River   Street = "RIVER"

	Third   Street = "THIRD"
	Fourth  Street = "FOURTH"
	Fifth   Street = "FIFTH"
	Sixth   Street = "SIXTH"
	Seventh Street = "SEVENTH"

	Deal      Street = "DEAL"
	DrawOne   Street = "DRAWONE"
	DrawTwo   Street = "DRAWTWO"
	DrawThree Street = "DRAWTHREE"
)

// Base is the dealing family of a game.
type Base string

const (
	Hold Base = "hold"
	Stud Base = "stud"
	Draw Base = "draw"
)

// Layout groups a game's streets by role.
type Layout struct {
	Action    []Street
	Hole      []Street
	Community []Street
	All       []Street
}

// DefaultLayout returns the usual street layout for a base. Draw games
// with a single draw pass draws = 1.
func DefaultLayout(base Base, draws int) Layout {
	switch base {
	case Stud:
		deal := []Street{Third, Fourth, Fifth, Sixth, Seventh}
		return Layout{
			Action: append([]Street{BlindsAntes}, deal...),
			Hole:   deal,
			All:    append([]Street{BlindsAntes}, deal...),
		}
	case Draw:
		if draws < 1 || draws > 3 {
			draws = 3
		}
		deal := []Street{Deal, DrawOne, DrawTwo, DrawThree}[:draws+1]
		return Layout{
			Action: append([]Street{BlindsAntes}, deal...),
			Hole:   deal,
			All:    append([]Street{BlindsAntes}, deal...),
		}
	default:
		return Layout{
			Action:    []Street{BlindsAntes, Preflop, Flop, Turn, River},
			Hole:      []Street{Preflop},
			Community: []Street{Flop, Turn, River},
			All:       []Street{BlindsAntes, Preflop, Flop, Turn, River},
		}
	}
}
