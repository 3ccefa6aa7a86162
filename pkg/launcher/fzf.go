package launcher

// NewFzf runs fzf in the current terminal.
func NewFzf(args []string) *Pipe {
	p := NewPipe("fzf", "fzf", args)
	p.prompt = func(prompt string) []string { return []string{"--prompt", prompt + "> "} }
	p.stderr = true
	return p
}
