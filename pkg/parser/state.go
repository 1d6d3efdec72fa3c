package parser

import "errors"

// SaveState pushes the cursor, indentation level and output length (plus
// the grammar's own state, if it keeps any) onto the state stack.
func (p *Parser) SaveState() {
	s := state{
		index:     p.index,
		level:     p.level,
		outputLen: len(p.output),
		undoLen:   len(p.undo),
	}
	if p.ext != nil {
		s.ext = p.ext.SaveState()
	}
	p.states = append(p.states, s)
}

// RestoreState pops the most recent saved state and rolls the parser back
// to it. Output appended since the save is discarded and tokens rewritten
// in place are put back.
func (p *Parser) RestoreState() {
	s := p.pop("RestoreState")
	for i := len(p.undo) - 1; i >= s.undoLen; i-- {
		u := p.undo[i]
		if u.pos < len(p.output) {
			p.output[u.pos] = u.tok
		}
	}
	p.undo = p.undo[:s.undoLen]
	p.index = s.index
	p.level = s.level
	p.output = p.output[:s.outputLen]
	if p.ext != nil {
		p.ext.RestoreState(s.ext)
	}
}

// ForgetState pops the most recent saved state, keeping everything done
// since.
func (p *Parser) ForgetState() {
	p.pop("ForgetState")
	// Undo entries are kept while an enclosing save point may need them.
	if len(p.states) == 0 {
		p.undo = p.undo[:0]
	}
}

func (p *Parser) pop(op string) state {
	n := len(p.states)
	if n == 0 {
		invariant("%s called without a saved state", op)
	}
	s := p.states[n-1]
	p.states = p.states[:n-1]
	return s
}

// Try runs fn inside a save point. If fn fails the parser is rolled back
// and Try reports false; otherwise the save point is dropped and Try
// reports true. fn must leave the state stack as it found it.
func (p *Parser) Try(fn func() error) bool {
	ok, _ := p.try(fn, func(error) bool { return true })
	return ok
}

// TryErr is Try for alternatives that can fail for reasons other than a
// mismatch. Grammar errors and ErrBacktrack roll back and report false;
// any other error rolls back too but is returned to the caller.
func (p *Parser) TryErr(fn func() error) (bool, error) {
	return p.try(fn, IsBacktrack)
}

func (p *Parser) try(fn func() error, backtrack func(error) bool) (bool, error) {
	p.SaveState()
	depth := len(p.states)
	err := fn()
	if len(p.states) != depth {
		invariant("state stack depth changed from %d to %d inside Try", depth, len(p.states))
	}
	if err != nil {
		p.RestoreState()
		if backtrack(err) {
			return false, nil
		}
		return false, err
	}
	p.ForgetState()
	return true, nil
}

// IsBacktrack reports whether err only signals that an alternative did not
// match.
func IsBacktrack(err error) bool {
	if errors.Is(err, ErrBacktrack) {
		return true
	}
	_, ok := AsParseError(err)
	return ok
}

// Depth returns the number of saved states.
func (p *Parser) Depth() int {
	return len(p.states)
}

// savePoint returns the output length recorded by the most recent save, or
// zero when nothing is saved.
func (p *Parser) savePoint() int {
	if n := len(p.states); n > 0 {
		return p.states[n-1].outputLen
	}
	return 0
}
