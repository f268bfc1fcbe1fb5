package domain

type CommandType string

const (
	CommandLoad    CommandType = "load"
	CommandPick    CommandType = "pick"
	CommandNext    CommandType = "next"
	CommandKey     CommandType = "key"
	CommandFacets  CommandType = "facets"
	CommandStatus  CommandType = "status"
	CommandPoster  CommandType = "poster"
	CommandHelp    CommandType = "help"
	CommandQuit    CommandType = "quit"
	CommandUnknown CommandType = "unknown"
)

func (c CommandType) String() string {
	return string(c)
}

func (c CommandType) IsValid() bool {
	switch c {
	case CommandLoad, CommandPick, CommandNext, CommandKey, CommandFacets,
		CommandStatus, CommandPoster, CommandHelp, CommandQuit, CommandUnknown:
		return true
	default:
		return false
	}
}
