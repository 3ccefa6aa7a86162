package launcher

// NewRofi runs rofi in dmenu mode.
func NewRofi(args []string) *Pipe {
	p := NewPipe("rofi", "rofi", args)
	p.prompt = func(prompt string) []string { return []string{"-p", prompt, "-dmenu"} }
	return p
}
