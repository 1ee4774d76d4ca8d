package trick

import "errors"

var (
	ErrNoCards       = errors.New("no cards played")
	ErrMixedSuits    = errors.New("cards span more than one suit")
	ErrWrongShape    = errors.New("cards do not match the required shape")
	ErrWrongCount    = errors.New("wrong number of cards")
	ErrWrongSuit     = errors.New("cards do not follow suit")
	ErrOutOfTurn     = errors.New("not this player's turn")
	ErrTrickComplete = errors.New("trick is complete")
)
