package stego

// State is a step of the linear encode/decode protocol.
type State int

const (
	StateStart State = iota
	StateMagic
	StateNameLen
	StateName
	StatePayloadLen
	StatePayload
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateMagic:
		return "magic"
	case StateNameLen:
		return "name length"
	case StateName:
		return "name"
	case StatePayloadLen:
		return "payload length"
	case StatePayload:
		return "payload"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
