package websocket

// Message is a client request. Move coordinates are pointers so that a legal
// index of zero is distinguishable from an absent field.
type Message struct {
	Type string `json:"type"`

	// join
	BoardSize int    `json:"boardSize,omitempty"`
	Mode      string `json:"mode,omitempty"`

	// move: classic sends index, ultimate sends local+cell
	Index *int `json:"index,omitempty"`
	Local *int `json:"local,omitempty"`
	Cell  *int `json:"cell,omitempty"`
}

// initResponse is sent once, personally, right after a successful join.
type initResponse struct {
	Type        string `json:"type"`
	PlayerIndex int    `json:"playerIndex"`
	Game        any    `json:"game"`
	Players     int    `json:"players"`
}

// stateResponse carries the full game state after every mutation; the client
// holds no state of its own and re-renders from each one.
type stateResponse struct {
	Type    string `json:"type"`
	Game    any    `json:"game"`
	Players int    `json:"players"`
}

type errorResponse struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}
