package boarddto

// Token is the round piece marker: initials on an accent-colored disc.
type Token struct {
	Label      string `json:"label"`
	Background string `json:"background"`
	Tooltip    string `json:"tooltip,omitempty"`
}

// Piece is one occupied square of the board view.
type Piece struct {
	Square string `json:"square"`
	Code   string `json:"code"` // "wK", "bP", ...
	Slot   string `json:"slot"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	Token  Token  `json:"token"`
}

// BoardStyle is passed through to the board widget untouched.
type BoardStyle struct {
	BorderRadius      int    `json:"border_radius"`
	LightSquare       string `json:"light_square"`
	DarkSquare        string `json:"dark_square"`
	AnimationDuration int    `json:"animation_duration_ms"`
	BoardWidth        int    `json:"board_width"`
}

// HistoryEntry is one applied move in display form.
type HistoryEntry struct {
	Side     string `json:"side"`
	Notation string `json:"notation"`
	Text     string `json:"text"`
}

// BoardView is everything the widget needs to draw a session.
type BoardView struct {
	ID           string           `json:"id,omitempty"`
	FEN          string           `json:"fen"`
	Turn         string           `json:"turn"`
	TurnText     string           `json:"turn_text,omitempty"`
	Pieces       []Piece          `json:"pieces"`
	Overrides    map[string]Token `json:"overrides"`
	Style        BoardStyle       `json:"style"`
	History      []HistoryEntry   `json:"history"`
	HistoryEmpty string           `json:"history_empty,omitempty"`
	LastFrom     string           `json:"last_from,omitempty"`
	LastTo       string           `json:"last_to,omitempty"`
}

// LegendSide lists one side's characters grouped by piece letter.
type LegendSide struct {
	Side string `json:"side"`
	Text string `json:"text"`
}

type LegendResponse struct {
	Title    string       `json:"title"`
	Sides    []LegendSide `json:"sides"`
	Observer string       `json:"observer"`
}

type HistoryResponse struct {
	Entries   []HistoryEntry `json:"entries"`
	EmptyText string         `json:"empty_text,omitempty"`
}
