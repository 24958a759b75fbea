package command

// Constraint is the rule of command
type Constraint struct {
	Arity int // number of arguments, it is possible to use -N to say >= N
	Flags Flag
}

// Check reports whether argc, the command name included, satisfies the arity
func (c Constraint) Check(argc int) bool {
	if c.Arity > 0 {
		return argc == c.Arity
	}
	return argc >= -c.Arity
}

// Flag is the command flag reported by COMMAND
type Flag int

// Command flags
const (
	CmdReadOnly Flag = 1 << iota
	CmdAdmin
	CmdNoScript
	CmdLoading
	CmdStale
	CmdSkipMonitor
	CmdFast

	numFlags = iota
)

// String returns the string representation of flag
func (f Flag) String() string {
	switch f {
	case CmdReadOnly:
		return "readonly"
	case CmdAdmin:
		return "admin"
	case CmdNoScript:
		return "noscript"
	case CmdLoading:
		return "loading"
	case CmdStale:
		return "stale"
	case CmdSkipMonitor:
		return "skip_monitor"
	case CmdFast:
		return "fast"
	}
	return ""
}

// flags parse sflags to flags
// This is the meaning of the flags:
//
//	r: read command, never touches any state.
//	a: admin command.
//	s: command not allowed in scripts.
//	l: allow command while loading.
//	t: allow command while serving stale data.
//	M: do not feed the command to monitors.
//	F: fast command, O(1) and never blocks.
func flags(s string) Flag {
	flags := Flag(0)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'r':
			flags |= CmdReadOnly
		case 'a':
			flags |= CmdAdmin
		case 's':
			flags |= CmdNoScript
		case 'l':
			flags |= CmdLoading
		case 't':
			flags |= CmdStale
		case 'M':
			flags |= CmdSkipMonitor
		case 'F':
			flags |= CmdFast
		default:
			panic("Unsupported command flag")
		}
	}
	return flags
}

func parseFlags(flags Flag) []string {
	var s []string
	for i := uint(0); i < numFlags; i++ {
		f := Flag(1 << i)
		if f&flags != 0 {
			s = append(s, f.String())
		}
	}
	return s
}
