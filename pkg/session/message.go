package session

import "time"

// DefaultMessageLimit is the number of messages a session keeps.
const DefaultMessageLimit = 50

// Level is the severity of a user-visible message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is one entry of the session's message log.
type Message struct {
	Level Level     `json:"level" yaml:"level"`
	Text  string    `json:"text" yaml:"text"`
	Time  time.Time `json:"time" yaml:"time"`
}

// String formats the message as "[15:04:05] text".
func (m Message) String() string {
	return "[" + m.Time.Format("15:04:05") + "] " + m.Text
}

// messageLog keeps the newest limit messages.
type messageLog struct {
	limit int
	items []Message
}

func newMessageLog(limit int) *messageLog {
	return &messageLog{limit: limit}
}

func (l *messageLog) add(m Message) {
	l.items = append(l.items, m)
	if over := len(l.items) - l.limit; over > 0 {
		l.items = append(l.items[:0], l.items[over:]...)
	}
}

func (l *messageLog) all() []Message {
	out := make([]Message, len(l.items))
	copy(out, l.items)
	return out
}

func (l *messageLog) last() (Message, bool) {
	if len(l.items) == 0 {
		return Message{}, false
	}
	return l.items[len(l.items)-1], true
}
