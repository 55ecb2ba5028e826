package model

// Owner is one of the two sides sharing the board.
type Owner string

const (
	Red   Owner = "red"
	Black Owner = "black"
)

func (o Owner) Opponent() Owner {
	if o == Red {
		return Black
	}
	return Red
}

// forward is the row delta of a man's move.
func (o Owner) forward() int {
	if o == Red {
		return 1
	}
	return -1
}

func (o Owner) promotionRow() int {
	if o == Red {
		return BoardSize - 1
	}
	return 0
}

func (o Owner) String() string {
	return string(o)
}
