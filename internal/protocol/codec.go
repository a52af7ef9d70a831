package protocol

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a message for the spectator feed
func Encode(msg *Message) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s message: %w", msg.Type, err)
	}
	return data, nil
}

// Decode parses a spectator feed message and checks that its payload
// matches its type
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	switch msg.Type {
	case MsgHello:
		if msg.Hello == nil {
			return nil, fmt.Errorf("hello message without payload")
		}
	case MsgMatchState:
		if msg.State == nil {
			return nil, fmt.Errorf("state message without payload")
		}
	case MsgWinner:
		if msg.Winner == nil {
			return nil, fmt.Errorf("winner message without payload")
		}
	default:
		return nil, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return &msg, nil
}

// StateMessage wraps a snapshot in a message envelope
func StateMessage(state MatchState) *Message {
	return &Message{Type: MsgMatchState, State: &state}
}

// WinnerMessage builds the announcement sent when a game finishes
func WinnerMessage(state MatchState) *Message {
	return &Message{
		Type: MsgWinner,
		Winner: &WinnerState{
			Side:       state.Winner,
			LeftScore:  state.LeftScore,
			RightScore: state.RightScore,
		},
	}
}
