package domain

type MessageType string

const (
	MessageSteps   MessageType = "steps"
	MessageWater   MessageType = "water"
	MessageWeight  MessageType = "weight"
	MessageGeneral MessageType = "general"
)

// Message is one line of feedback. Messages are computed on demand and never stored.
type Message struct {
	Type     MessageType
	Text     string
	Achieved bool
}
