package game

// PublicMon is the visible half of one revealed opponent slot: everything
// both players can see, with all hidden attributes left to the belief model.
type PublicMon struct {
	Slot    int
	Species string
	HP      float64
	Status  Status
	Boosts  Boosts
}

// OpponentPublic is the complete visible opponent state at a decision point.
type OpponentPublic struct {
	ActiveSlot int
	Mons       []PublicMon
	TeamSize   int
}

// ActiveIndex returns the position of the active slot within Mons, or -1.
func (o *OpponentPublic) ActiveIndex() int {
	for i, m := range o.Mons {
		if m.Slot == o.ActiveSlot {
			return i
		}
	}
	return -1
}
