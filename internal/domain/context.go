package domain

import "time"

type CommandContext struct {
	Source    string
	Message   string
	Timestamp time.Time
}

func NewCommandContext(source, message string) *CommandContext {
	return &CommandContext{
		Source:    source,
		Message:   message,
		Timestamp: time.Now(),
	}
}
