// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"errors"
	"fmt"
	"sort"

	"github.com/danielhkuo/escrutinio/textnorm"
)

// Method is the canonical name of an allocation method
type Method string

const (
	MethodDHondt          Method = "d-hont"
	MethodHare            Method = "hare"
	MethodListaIncompleta Method = "lista-incompleta"
	MethodMayoriaSimple   Method = "mayoria-simple"
	MethodBalotaje        Method = "balotaje"
)

var ErrUnsupportedMethod = errors.New("unsupported allocation method")

// Keys are normalized, so "Mayoría-Simple" and "mayoria-simple" share an entry
var methodAliases = map[string]Method{
	"d-hont":           MethodDHondt,
	"dhont":            MethodDHondt,
	"d'hont":           MethodDHondt,
	"d-hondt":          MethodDHondt,
	"dhondt":           MethodDHondt,
	"d'hondt":          MethodDHondt,
	"hare":             MethodHare,
	"lista-incompleta": MethodListaIncompleta,
	"mayoria-simple":   MethodMayoriaSimple,
	"balotaje":         MethodBalotaje,
	"ballotage":        MethodBalotaje,
}

type allocator func(votes map[string]int, seats int) AllocationResult

var allocators = map[Method]allocator{
	MethodDHondt:          DHondt,
	MethodHare:            Hare,
	MethodListaIncompleta: ListaIncompleta,
	MethodMayoriaSimple:   MayoriaSimple,
	MethodBalotaje:        Balotaje,
}

// MethodInfo describes a supported allocation method
type MethodInfo struct {
	Name        Method `json:"method"`
	Description string `json:"description"`
}

var methodDescriptions = map[Method]string{
	MethodDHondt:          "D'Hondt highest averages: votes divided by 1, 2, 3... up to the seat count",
	MethodHare:            "Hare quota with largest remainders",
	MethodListaIncompleta: "Incomplete list: two thirds to the first group, the rest to the runner-up",
	MethodMayoriaSimple:   "Simple plurality: every seat to the group with most votes",
	MethodBalotaje:        "Runoff rule: first round win with 45%, or 40% and a 10 point lead",
}

// Methods lists the supported methods sorted by name
func Methods() []MethodInfo {
	out := make([]MethodInfo, 0, len(allocators))
	for m := range allocators {
		out = append(out, MethodInfo{Name: m, Description: methodDescriptions[m]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseMethod resolves a method name or alias, ignoring case and accents
func ParseMethod(name string) (Method, error) {
	m, ok := methodAliases[textnorm.Normalize(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, name)
	}
	return m, nil
}

// Allocate distributes seats among groups using the named method
func Allocate(method string, votes map[string]int, seats int) (AllocationResult, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return AllocationResult{}, err
	}
	return allocators[m](votes, seats), nil
}

// zeroAllocation returns every group with no seats
func zeroAllocation(votes map[string]int) map[string]int {
	result := make(map[string]int, len(votes))
	for gid := range votes {
		result[gid] = 0
	}
	return result
}

// groupTally is a group with its vote total, used for rankings
type groupTally struct {
	id    string
	votes int
}

// rankGroups orders groups by votes descending, then by id descending
func rankGroups(votes map[string]int) []groupTally {
	ranked := make([]groupTally, 0, len(votes))
	for gid, v := range votes {
		ranked = append(ranked, groupTally{id: gid, votes: v})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.votes != b.votes {
			return a.votes > b.votes
		}
		return a.id > b.id
	})

	return ranked
}
