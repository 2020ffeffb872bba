// Package overload resolves a call site against a set of candidate
// function hashes: arity filtering and named-argument binding, a
// convertibility check against each surviving candidate's parameters,
// ranking by total conversion cost, and a three-step tie-break.
//
// Failures surface as NoViableCandidate, ArgumentCountMismatch, or
// AmbiguousOverload. A named argument that matches no parameter, or
// that names a slot already bound, drops that candidate during binding,
// so a call where every candidate is dropped this way fails with
// ArgumentCountMismatch. NamedArgMissingSlot and NamedArgDuplicate are
// not raised, by this package or by any caller.
package overload

import (
	"github.com/cwbudde/ascript/internal/convert"
	"github.com/cwbudde/ascript/internal/diag"
	"github.com/cwbudde/ascript/internal/ident"
	"github.com/cwbudde/ascript/internal/registry"
	"github.com/cwbudde/ascript/internal/typesys"
)

// Call is one call site: the ordered candidate set, the argument types
// in call order, and — when named arguments are used — a parallel Names
// slice ("" for a positional argument). Names is nil for an entirely
// positional call.
type Call struct {
	Candidates []ident.FunctionHash
	Args       []typesys.DataType
	Names      []string
}

// Result is the resolved match: which function, the conversion chosen
// for each of its parameters (identity for defaulted slots skip this
// index — Conversions has one zero entry there), and the summed cost
// used to rank it.
type Result struct {
	Function    ident.FunctionHash
	Conversions []convert.Conversion
	TotalCost   int
}

type candidateResult struct {
	def         *registry.FunctionDef
	hash        ident.FunctionHash
	filled      []bool
	conversions []convert.Conversion
	totalCost   int
	identities  int
}

// Resolve runs the five-step algorithm against call's candidates.
func Resolve(reg *registry.Registry, call Call) (Result, error) {
	if len(call.Names) > 0 && len(call.Names) != len(call.Args) {
		return Result{}, diag.New(diag.ArgumentCountMismatch, diag.Span{},
			"call supplies %d names for %d arguments", len(call.Names), len(call.Args))
	}

	var survivors []candidateResult
	arityDropped := 0

	for _, h := range call.Candidates {
		def := reg.GetFunction(h)
		if def == nil {
			continue
		}

		args, filled, ok := bindCall(def, call)
		if !ok {
			arityDropped++
			continue
		}

		cr, ok := checkConvertibility(reg, h, def, args, filled)
		if !ok {
			continue
		}
		survivors = append(survivors, cr)
	}

	if len(survivors) == 0 {
		if len(call.Candidates) > 0 && arityDropped == len(call.Candidates) {
			return Result{}, diag.New(diag.ArgumentCountMismatch, diag.Span{},
				"no overload of this call accepts %d arguments", len(call.Args))
		}
		return Result{}, diag.New(diag.NoViableCandidate, diag.Span{},
			"no overload accepts the given argument types")
	}

	tied := lowestCost(survivors)
	if len(tied) == 1 {
		return toResult(tied[0]), nil
	}

	winner, err := breakTie(reg, tied)
	if err != nil {
		return Result{}, err
	}
	return toResult(winner), nil
}

// bindCall maps call's arguments onto def's parameter slots: positional
// when call.Names is empty, by name otherwise. A slot left unfilled must
// have a default, or the candidate is dropped (covers both the arity
// filter and named-argument binding in one pass).
func bindCall(def *registry.FunctionDef, call Call) ([]typesys.DataType, []bool, bool) {
	args := make([]typesys.DataType, len(def.Params))
	filled := make([]bool, len(def.Params))

	if len(call.Names) == 0 {
		if len(call.Args) > len(def.Params) {
			return nil, nil, false
		}
		for i, dt := range call.Args {
			args[i] = dt
			filled[i] = true
		}
	} else {
		for i, name := range call.Names {
			slot := i
			if name != "" {
				idx := paramIndex(def, name)
				if idx < 0 {
					return nil, nil, false
				}
				slot = idx
			}
			if slot >= len(def.Params) || filled[slot] {
				return nil, nil, false
			}
			args[slot] = call.Args[i]
			filled[slot] = true
		}
	}

	for i, p := range def.Params {
		if !filled[i] && !p.HasDefault {
			return nil, nil, false
		}
	}
	return args, filled, true
}

func paramIndex(def *registry.FunctionDef, name string) int {
	for i, p := range def.Params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func checkConvertibility(reg *registry.Registry, h ident.FunctionHash, def *registry.FunctionDef, args []typesys.DataType, filled []bool) (candidateResult, bool) {
	cr := candidateResult{def: def, hash: h, filled: filled, conversions: make([]convert.Conversion, len(def.Params))}
	for i, p := range def.Params {
		if !filled[i] {
			continue
		}
		conv, ok := convert.Classify(reg, args[i], p.Type)
		if !ok || !conv.Implicit {
			return candidateResult{}, false
		}
		cr.conversions[i] = conv
		cr.totalCost += conv.Cost
		if conv.Kind == convert.Identity {
			cr.identities++
		}
	}
	return cr, true
}

func lowestCost(survivors []candidateResult) []candidateResult {
	minCost := survivors[0].totalCost
	for _, c := range survivors[1:] {
		if c.totalCost < minCost {
			minCost = c.totalCost
		}
	}
	var tied []candidateResult
	for _, c := range survivors {
		if c.totalCost == minCost {
			tied = append(tied, c)
		}
	}
	return tied
}

// breakTie applies, in order: more identity matches, non-template over
// template instantiation, then more-derived parameter types. A
// candidate is more-derived than another when every filled parameter
// position it shares with the other is either the same type or derives
// from the other's, and at least one position strictly does.
func breakTie(reg *registry.Registry, tied []candidateResult) (candidateResult, error) {
	byIdentity := maxBy(tied, func(c candidateResult) int { return c.identities })

	var nonTemplate []candidateResult
	for _, c := range byIdentity {
		if !c.def.Traits.IsTemplate {
			nonTemplate = append(nonTemplate, c)
		}
	}
	pool := byIdentity
	if len(nonTemplate) > 0 {
		pool = nonTemplate
	}
	if len(pool) == 1 {
		return pool[0], nil
	}

	for _, candidate := range pool {
		allOthers := true
		for _, other := range pool {
			if other.hash == candidate.hash {
				continue
			}
			if !moreDerived(reg, candidate, other) {
				allOthers = false
				break
			}
		}
		if allOthers {
			return candidate, nil
		}
	}

	names := make([]string, len(pool))
	for i, c := range pool {
		names[i] = c.def.Name
	}
	return candidateResult{}, diag.New(diag.AmbiguousOverload, diag.Span{},
		"call is ambiguous among %d candidates", len(pool)).WithCandidates(names...)
}

func maxBy(cs []candidateResult, key func(candidateResult) int) []candidateResult {
	best := key(cs[0])
	for _, c := range cs[1:] {
		if v := key(c); v > best {
			best = v
		}
	}
	var out []candidateResult
	for _, c := range cs {
		if key(c) == best {
			out = append(out, c)
		}
	}
	return out
}

func moreDerived(reg *registry.Registry, a, b candidateResult) bool {
	strictlyMore := false
	n := len(a.filled)
	if len(b.filled) < n {
		n = len(b.filled)
	}
	for i := 0; i < n; i++ {
		if !a.filled[i] || !b.filled[i] {
			continue
		}
		at, bt := a.def.Params[i].Type.Hash, b.def.Params[i].Type.Hash
		if at == bt {
			continue
		}
		if reg.IsTypeDerivedFrom(at, bt) {
			strictlyMore = true
			continue
		}
		return false
	}
	return strictlyMore
}

func toResult(c candidateResult) Result {
	return Result{Function: c.hash, Conversions: c.conversions, TotalCost: c.totalCost}
}
