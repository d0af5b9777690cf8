package token

const (
	Cell rune = -(iota + 1)
	Continuation
	Blank
	Invalid
)
