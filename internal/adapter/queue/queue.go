package queue

// Subjects published by the assistant core. Subscribers must tolerate
// duplicate delivery.
const (
	SubjectVoiceLogged    = "voice.logged"
	SubjectReorderCreated = "reorder.created"
)

// MessageQueue defines the interface for a message queue adapter
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}
