package commands

// Registry is an immutable, ordered view over the commands of one load.
// It is replaced wholesale when the command file is reloaded.
type Registry struct {
	commands []Command
	byID     map[string]int
}

// NewRegistry copies cmds into a new registry. Later changes to cmds are not visible.
func NewRegistry(cmds []Command) *Registry {
	r := &Registry{
		commands: make([]Command, len(cmds)),
		byID:     make(map[string]int, len(cmds)),
	}
	for i, cmd := range cmds {
		r.commands[i] = cmd.Clone()
		if _, dup := r.byID[cmd.ID]; !dup {
			r.byID[cmd.ID] = i
		}
	}
	return r
}

// All returns the commands in file order.
func (r *Registry) All() []Command {
	out := make([]Command, len(r.commands))
	for i, cmd := range r.commands {
		out[i] = cmd.Clone()
	}
	return out
}

// Len returns the number of commands.
func (r *Registry) Len() int {
	return len(r.commands)
}

// ByID finds a command by its load-time id.
func (r *Registry) ByID(id string) (Command, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Command{}, false
	}
	return r.commands[i].Clone(), true
}

// ByName finds a command by exact name. With duplicate names the first one in file order wins.
func (r *Registry) ByName(name string) (Command, error) {
	for _, cmd := range r.commands {
		if cmd.Name == name {
			return cmd.Clone(), nil
		}
	}
	return Command{}, &UnknownCommandError{Name: name}
}

// Names returns the display names, parallel to All.
func (r *Registry) Names() []string {
	names := make([]string, len(r.commands))
	for i, cmd := range r.commands {
		names[i] = cmd.Name
	}
	return names
}
