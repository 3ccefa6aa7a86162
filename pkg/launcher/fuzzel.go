package launcher

// NewFuzzel runs fuzzel. The default args already carry --dmenu.
func NewFuzzel(args []string) *Pipe {
	p := NewPipe("fuzzel", "fuzzel", args)
	p.prompt = func(prompt string) []string { return []string{"--prompt", prompt + "> "} }
	return p
}
