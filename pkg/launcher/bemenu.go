package launcher

func NewBemenu(args []string) *Pipe {
	p := NewPipe("bemenu", "bemenu", args)
	p.prompt = func(prompt string) []string { return []string{"-p", prompt} }
	return p
}
