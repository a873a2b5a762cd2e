package boarddto

// DropRequest is a widget drop: piece dragged from one square to another.
type DropRequest struct {
	From      string `json:"from" validate:"required,len=2"`
	To        string `json:"to" validate:"required,len=2"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,oneof=q r b n"`
}

// DropResponse carries the widget's commit/revert decision.
type DropResponse struct {
	Applied bool      `json:"applied"`
	Board   BoardView `json:"board"`
}

// Websocket frame types.
const (
	FrameDrop   = "drop"
	FrameReset  = "reset"
	FrameResult = "result"
	FrameError  = "error"
)

// Frame is a client to server websocket message.
type Frame struct {
	Type      string `json:"type" validate:"required,oneof=drop reset"`
	From      string `json:"from,omitempty" validate:"omitempty,len=2"`
	To        string `json:"to,omitempty" validate:"omitempty,len=2"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,oneof=q r b n"`
}

// Reply answers exactly one Frame.
type Reply struct {
	Type    string       `json:"type"`
	Applied bool         `json:"applied"`
	Board   *BoardView   `json:"board,omitempty"`
	Error   *DomainError `json:"error,omitempty"`
}
