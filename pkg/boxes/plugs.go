package boxes

import "github.com/matzehuels/apg/pkg/box"

// Plug registration only fails on duplicate names or after attachment,
// neither of which can happen inside a constructor.

func mustInput(b *box.Box, name string, h box.UpdateHandler) *box.InputPlug {
	p, err := b.NewInputPlug(name, h)
	if err != nil {
		panic(err)
	}
	return p
}

func mustOutput(b *box.Box, name string) *box.OutputPlug {
	p, err := b.NewOutputPlug(name)
	if err != nil {
		panic(err)
	}
	return p
}
