package checks

import (
	"github.com/aretw0/markcheck/pkg/domain"
)

// Chain threads a State through successive checks and remembers the first
// error. Once an error is recorded every further call is a no-op.
//
//	err := checks.Ex(root).CheckBody().CheckTag("p", checks.WithIndex(1)).HasEqualText().Err()
//
// A Chain value is immutable: branching from a shared prefix is safe.
//
//	body := checks.Ex(root).CheckBody()
//	body.HasEqualAttr()
//	body.CheckTag("h1").HasEqualText()
type Chain struct {
	state *domain.State
	err   error
}

// Ex starts a chain at root.
func Ex(root *domain.State) Chain {
	return Chain{state: root}
}

// State returns the state reached by the last successful check.
func (c Chain) State() *domain.State { return c.state }

// Err returns the error that stopped the chain, or nil.
func (c Chain) Err() error { return c.err }

// Outcome classifies the error that stopped the chain.
func (c Chain) Outcome() domain.Outcome { return domain.Classify(c.err) }

// Then applies an arbitrary check.
func (c Chain) Then(check func(*domain.State) (*domain.State, error)) Chain {
	if c.err != nil {
		return c
	}
	next, err := check(c.state)
	if err != nil {
		return Chain{state: c.state, err: err}
	}
	return Chain{state: next}
}

func (c Chain) CheckDoctype(opts ...Option) Chain {
	return c.Then(func(s *domain.State) (*domain.State, error) { return CheckDoctype(s, opts...) })
}

func (c Chain) CheckHTML(opts ...Option) Chain {
	return c.Then(func(s *domain.State) (*domain.State, error) { return CheckHTML(s, opts...) })
}

func (c Chain) CheckHead(opts ...Option) Chain {
	return c.Then(func(s *domain.State) (*domain.State, error) { return CheckHead(s, opts...) })
}

func (c Chain) CheckBody(opts ...Option) Chain {
	return c.Then(func(s *domain.State) (*domain.State, error) { return CheckBody(s, opts...) })
}

func (c Chain) CheckTag(name string, opts ...Option) Chain {
	return c.Then(func(s *domain.State) (*domain.State, error) { return CheckTag(s, name, opts...) })
}

func (c Chain) HasCode(text string, opts ...Option) Chain {
	return c.Then(func(s *domain.State) (*domain.State, error) { return HasCode(s, text, opts...) })
}

func (c Chain) HasEqualText(opts ...Option) Chain {
	return c.Then(func(s *domain.State) (*domain.State, error) { return HasEqualText(s, opts...) })
}

func (c Chain) HasEqualAttr(opts ...Option) Chain {
	return c.Then(func(s *domain.State) (*domain.State, error) { return HasEqualAttr(s, opts...) })
}
