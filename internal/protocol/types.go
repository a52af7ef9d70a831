package protocol

// Direction represents paddle movement direction
type Direction int

const (
	DirStop Direction = 0
	DirUp   Direction = 1
	DirDown Direction = 2
)

// Side identifies a player's half of the court
type Side int

const (
	SideNone  Side = 0
	SideLeft  Side = 1
	SideRight Side = 2
)

// String returns the label shown to players for a side
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "P1"
	case SideRight:
		return "P2"
	}
	return "none"
}

// MessageType identifies a spectator feed message
type MessageType string

const (
	MsgHello      MessageType = "hello"
	MsgMatchState MessageType = "state"
	MsgWinner     MessageType = "winner"
)

// Message is the wrapper for all spectator feed messages.
// Exactly one payload field is set, matching Type.
type Message struct {
	Type   MessageType  `json:"type"`
	Hello  *Hello       `json:"hello,omitempty"`
	State  *MatchState  `json:"state,omitempty"`
	Winner *WinnerState `json:"winner,omitempty"`
}

// Hello is sent once to a spectator right after it connects
type Hello struct {
	SpectatorID string `json:"spectatorId"`
}

// BallState represents the ball's position and velocity
type BallState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
}

// PaddleState is a paddle rectangle, top-left anchored
type PaddleState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MatchState is a read-only snapshot of a match, taken once per frame
type MatchState struct {
	Tick        int         `json:"tick"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Ball        BallState   `json:"ball"`
	Left        PaddleState `json:"left"`
	Right       PaddleState `json:"right"`
	LeftScore   int         `json:"leftScore"`
	RightScore  int         `json:"rightScore"`
	Running     bool        `json:"running"`
	PointsToWin int         `json:"pointsToWin"`
	Winner      Side        `json:"winner"`
}

// WinnerState announces the end of a game
type WinnerState struct {
	Side       Side `json:"side"`
	LeftScore  int  `json:"leftScore"`
	RightScore int  `json:"rightScore"`
}
