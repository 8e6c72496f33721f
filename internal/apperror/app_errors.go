package apperror

import "errors"

// authorization errors.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrNotInRoom          = errors.New("client is not in a room")
	ErrNotAPlayer         = errors.New("not a player")
	ErrAdminRequired      = errors.New("admin privileges required")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrPlayerLimitReached = errors.New("player limit reached")
	ErrNotEnoughPlayers   = errors.New("not enough players")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrNotYourTurn        = errors.New("it's not your turn")
)

// referential and rule errors.
var (
	ErrCardNotInHand      = errors.New("card not in hand")
	ErrPawnNotFound       = errors.New("pawn not found")
	ErrInvalidSeat        = errors.New("invalid seat")
	ErrMissingPawns       = errors.New("not enough pawns for card")
	ErrInvalidImpliedType = errors.New("invalid implied card type")
	ErrStartBlocked       = errors.New("start cell is blocked")
	ErrPathBlocked        = errors.New("path is blocked by a pieu")
	ErrUnknownAction      = errors.New("unknown action")
)

// ErrDrawPileEmpty - the draw pile cannot cover a deal.
var ErrDrawPileEmpty = errors.New("draw pile empty")
