package rules

type Level int

const (
	LevelDefault Level = iota
	Debug
	LevelInfo
	Warning
	Error
	Unknown
)

func (e Level) String() string {
	switch e {
	case Debug:
		return "debug"
	case LevelInfo:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

func GetLevelFromName(name string) Level {
	switch name {
	case "", "default":
		return LevelDefault
	case "debug":
		return Debug
	case "info":
		return LevelInfo
	case "warning":
		return Warning
	case "error":
		return Error
	default:
		return Unknown
	}
}
