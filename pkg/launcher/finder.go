package launcher

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
)

// Finder is an in-process terminal picker that needs no external program.
type Finder struct {
	find func(options []string, prompt string) (int, error)
}

func NewFinder() *Finder {
	return &Finder{find: func(options []string, prompt string) (int, error) {
		return fuzzyfinder.Find(
			options,
			func(i int) string { return options[i] },
			fuzzyfinder.WithPromptString(prompt+"> "),
		)
	}}
}

func (f *Finder) Name() string {
	return "finder"
}

func (f *Finder) Show(options []string, prompt string) (string, error) {
	if len(options) == 0 {
		return "", ErrCancelled
	}

	idx, err := f.find(options, prompt)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("select command: %w", err)
	}
	return options[idx], nil
}
