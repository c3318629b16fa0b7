// Package policy decides which runtime errors abort a run and which only
// abort the current statement.
package policy

import (
	"fmt"
	"sort"

	"github.com/thomasrohde/badbasic/pkg/diagnostics"
)

// Eligible lists the runtime codes a policy may mark recoverable. Lex,
// parse, I/O and config errors are always fatal.
var Eligible = []string{
	diagnostics.EUnsupportedOp,
	diagnostics.EUnbound,
	diagnostics.EFnArgs,
	diagnostics.EUnknownFn,
}

// Policy holds the set of recoverable diagnostic codes.
type Policy struct {
	recoverable map[string]bool
}

// File is the policy section of a config file.
type File struct {
	Recover []string `toml:"recover" yaml:"recover"`
	Fatal   []string `toml:"fatal" yaml:"fatal"`
}

// CanRecover reports whether code may be listed as recoverable.
func CanRecover(code string) bool {
	for _, c := range Eligible {
		if c == code {
			return true
		}
	}
	return false
}

// IsRecoverable reports whether a runtime error with this code only aborts
// the statement that raised it.
func (p *Policy) IsRecoverable(code string) bool {
	if p == nil {
		return false
	}
	return p.recoverable[code]
}

// Recoverable returns the recoverable codes in sorted order.
func (p *Policy) Recoverable() []string {
	if p == nil {
		return nil
	}
	codes := make([]string, 0, len(p.recoverable))
	for c := range p.recoverable {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Build creates a policy from a config section. A nil Recover list keeps
// the default recoverable set; Fatal overrides recover.
func Build(f File) (*Policy, error) {
	codes := f.Recover
	if codes == nil {
		codes = defaultRecoverable
	}

	recoverable := make(map[string]bool)
	for _, code := range codes {
		if !CanRecover(code) {
			return nil, fmt.Errorf("policy: %s cannot be made recoverable", code)
		}
		recoverable[code] = true
	}
	for _, code := range f.Fatal {
		if !diagnostics.IsKnown(code) {
			return nil, fmt.Errorf("policy: unknown diagnostic code %s", code)
		}
		delete(recoverable, code)
	}
	return &Policy{recoverable: recoverable}, nil
}

var defaultRecoverable = []string{diagnostics.EUnknownFn}

// Default returns the stock policy: only unknown function calls are
// recoverable.
func Default() *Policy {
	p, _ := Build(File{})
	return p
}

// Strict returns a policy under which every runtime error is fatal.
func Strict() *Policy {
	return &Policy{recoverable: make(map[string]bool)}
}
