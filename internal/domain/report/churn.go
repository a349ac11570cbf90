package report

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-insight/internal/domain/sales"
)

// ChurnedCustomer cliente del período anterior ausente en el actual, con el
// ingreso que aportaba (ingreso perdido).
type ChurnedCustomer struct {
	CustomerName string
	PriorRevenue decimal.Decimal
}

// ChurnResult diferencia de conjuntos de clientes entre dos particiones
// disjuntas (p. ej. año anterior vs. año actual).
type ChurnResult struct {
	Churned      []ChurnedCustomer // presentes antes, ausentes ahora
	New          []string          // presentes ahora, ausentes antes
	LostRevenue  decimal.Decimal   // Σ ingreso previo de los churned
	PriorCount   int               // clientes de la partición anterior
	CurrentCount int               // clientes de la partición actual
}

// Churn computa clientes perdidos y nuevos como diferencia exacta de
// conjuntos sobre el nombre de cliente. Por construcción los conjuntos
// Churned y New son disjuntos: Churned ⊆ prior, New ⊆ current.
func Churn(prior, current []sales.CostedRow) ChurnResult {
	priorRevenue := make(map[string]decimal.Decimal)
	for _, r := range prior {
		priorRevenue[r.CustomerName] = priorRevenue[r.CustomerName].Add(r.NetAmount())
	}
	currentSet := make(map[string]struct{})
	for _, r := range current {
		currentSet[r.CustomerName] = struct{}{}
	}

	res := ChurnResult{
		PriorCount:   len(priorRevenue),
		CurrentCount: len(currentSet),
	}
	for name, rev := range priorRevenue {
		if _, stays := currentSet[name]; !stays {
			res.Churned = append(res.Churned, ChurnedCustomer{CustomerName: name, PriorRevenue: rev})
			res.LostRevenue = res.LostRevenue.Add(rev)
		}
	}
	for name := range currentSet {
		if _, was := priorRevenue[name]; !was {
			res.New = append(res.New, name)
		}
	}

	sort.Slice(res.Churned, func(i, j int) bool {
		if !res.Churned[i].PriorRevenue.Equal(res.Churned[j].PriorRevenue) {
			return res.Churned[i].PriorRevenue.GreaterThan(res.Churned[j].PriorRevenue)
		}
		return res.Churned[i].CustomerName < res.Churned[j].CustomerName
	})
	sort.Strings(res.New)
	return res
}

// RepRetention tasa de retención de cartera de un representante.
type RepRetention struct {
	SalesRep       string
	PriorCustomers int
	Retained       int             // clientes presentes en ambos períodos
	RetentionPct   decimal.Decimal // 100 × Retained / PriorCustomers; 0 si no hay cartera previa
}

// Retention computa la retención por representante entre dos particiones.
// Un representante sin clientes en el período anterior reporta 0% (nunca
// división por cero). Incluye todos los representantes vistos en cualquiera
// de los dos períodos; orden por retención descendente, nombre ascendente.
func Retention(prior, current []sales.CostedRow) []RepRetention {
	priorByRep := make(map[string]map[string]struct{})
	for _, r := range prior {
		if priorByRep[r.SalesRep] == nil {
			priorByRep[r.SalesRep] = make(map[string]struct{})
		}
		priorByRep[r.SalesRep][r.CustomerName] = struct{}{}
	}
	currentByRep := make(map[string]map[string]struct{})
	for _, r := range current {
		if currentByRep[r.SalesRep] == nil {
			currentByRep[r.SalesRep] = make(map[string]struct{})
		}
		currentByRep[r.SalesRep][r.CustomerName] = struct{}{}
	}

	reps := make(map[string]struct{})
	for rep := range priorByRep {
		reps[rep] = struct{}{}
	}
	for rep := range currentByRep {
		reps[rep] = struct{}{}
	}

	out := make([]RepRetention, 0, len(reps))
	for rep := range reps {
		priorSet := priorByRep[rep]
		currentSet := currentByRep[rep]

		retained := 0
		for name := range priorSet {
			if _, ok := currentSet[name]; ok {
				retained++
			}
		}
		rr := RepRetention{
			SalesRep:       rep,
			PriorCustomers: len(priorSet),
			Retained:       retained,
		}
		if len(priorSet) > 0 {
			rr.RetentionPct = decimal.NewFromInt(int64(retained)).
				Div(decimal.NewFromInt(int64(len(priorSet)))).
				Mul(hundred)
		}
		out = append(out, rr)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].RetentionPct.Equal(out[j].RetentionPct) {
			return out[i].RetentionPct.GreaterThan(out[j].RetentionPct)
		}
		return out[i].SalesRep < out[j].SalesRep
	})
	return out
}
