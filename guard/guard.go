package guard

import (
	"github.com/jmp75/rdotnet"
	"github.com/jmp75/rdotnet/errors"
)

// Guard holds one protection token for one foreign object. A guard is a
// single-goroutine scoped value: acquire, defer Release, do the copy.
// Guards may nest freely; each releases exactly the token it acquired, in
// any order.
type Guard struct {
	prot     rdotnet.Protector
	token    rdotnet.ProtectToken
	released bool
}

// Acquire protects h with the foreign collector and returns the guard.
func Acquire(p rdotnet.Protector, h rdotnet.Handle) (*Guard, error) {
	tok, err := p.Protect(h)
	if err != nil {
		return nil, errors.ProtectFailed(err)
	}
	return &Guard{prot: p, token: tok}, nil
}

// Release returns the protection token to the foreign collector. It is
// idempotent; only the first call unprotects.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.prot.Unprotect(g.token)
}

// With runs fn with h protected, releasing the protection on every exit
// path, including a panic inside fn.
func With(p rdotnet.Protector, h rdotnet.Handle, fn func() error) error {
	g, err := Acquire(p, h)
	if err != nil {
		return err
	}
	defer g.Release()
	return fn()
}
