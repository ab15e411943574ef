package model

// Program is the root artifact produced by the builder. It is immutable
// after construction and shared by every stream bound to one filter-config
// instance — no per-program mutable state beyond what's written here at
// build time.
type Program struct {
	RequestRules  []Rule
	ResponseRules []Rule
	RequestBools  *BooleanProgram
	ResponseBools *BooleanProgram

	// Err is set when the config failed to build. A non-nil Err means
	// every runtime invocation of this Program is a no-op bypass.
	Err error
}

// Ready reports whether the Program built successfully and may be applied
// to streams.
func (p *Program) Ready() bool {
	return p.Err == nil
}

// BooleanProgramFor returns the boolean variable table for dir.
func (p *Program) BooleanProgramFor(dir Direction) *BooleanProgram {
	if dir == Request {
		return p.RequestBools
	}
	return p.ResponseBools
}

// RulesFor returns the rule list for dir, in configuration order.
func (p *Program) RulesFor(dir Direction) []Rule {
	if dir == Request {
		return p.RequestRules
	}
	return p.ResponseRules
}
