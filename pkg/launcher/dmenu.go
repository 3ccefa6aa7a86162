package launcher

func NewDmenu(args []string) *Pipe {
	p := NewPipe("dmenu", "dmenu", args)
	p.prompt = func(prompt string) []string { return []string{"-p", prompt} }
	return p
}
