package report

import "sort"

// PotentialSplit partición de un universo en miembros ya cubiertos y
// potenciales (análisis de brecha por pertenencia a conjunto).
type PotentialSplit struct {
	Covered   []string // el cliente ya compra el producto / el producto ya se le vende
	Potential []string // complemento dentro del universo filtrado
}

// SplitByMembership separa universe en cubiertos y potenciales según el
// conjunto member. Ambas listas salen ordenadas y sin duplicados.
func SplitByMembership(universe []string, member map[string]struct{}) PotentialSplit {
	seen := make(map[string]struct{}, len(universe))
	var split PotentialSplit
	for _, name := range universe {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := member[name]; ok {
			split.Covered = append(split.Covered, name)
		} else {
			split.Potential = append(split.Potential, name)
		}
	}
	sort.Strings(split.Covered)
	sort.Strings(split.Potential)
	return split
}

// ToSet convierte una lista de nombres en conjunto.
func ToSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
