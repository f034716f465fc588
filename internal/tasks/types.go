package tasks

const (
	// ArgsMarker marks where trailing arguments are spliced into a
	// forwarding command's fixed argument list.
	ArgsMarker = "{args}"
	// CwdMarker is replaced by the absolute working directory at dispatch.
	CwdMarker = "{cwd}"
)

// Command is a statically configured external invocation template.
type Command struct {
	Name        string
	Description string
	Program     string
	Args        []string
	ForwardArgs bool
}

// NeedsCwd reports whether any fixed argument references the working directory.
func (c Command) NeedsCwd() bool {
	for _, arg := range c.Args {
		if containsMarker(arg, CwdMarker) {
			return true
		}
	}
	return false
}

// Request is one runtime dispatch input. Args keep caller order.
type Request struct {
	Name string
	Args []string
}

func (c Command) clone() Command {
	out := c
	out.Args = append([]string(nil), c.Args...)
	return out
}

// ParseRequest splits argv (without the program name) into a request. It
// reports false when no command name was given.
func ParseRequest(argv []string) (Request, bool) {
	if len(argv) == 0 {
		return Request{}, false
	}
	return Request{Name: argv[0], Args: append([]string(nil), argv[1:]...)}, true
}
