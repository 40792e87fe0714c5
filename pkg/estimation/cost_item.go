package estimation

import "encoding/json"

type CostKind string

const (
	KindLabor    CostKind = "labor"
	KindMaterial CostKind = "material"
	KindOverhead CostKind = "overhead"
)

// CostShape is one of the three mutually exclusive pricing shapes a line item
// can take. Each variant knows how to derive its own total.
type CostShape interface {
	Kind() CostKind
	Total() float64
}

type Labor struct {
	Hours float64 `json:"hours"`
	Rate  float64 `json:"rate"`
}

func (l Labor) Kind() CostKind { return KindLabor }
func (l Labor) Total() float64 { return l.Hours * l.Rate }

type Material struct {
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unitCost"`
}

func (m Material) Kind() CostKind { return KindMaterial }
func (m Material) Total() float64 { return m.Quantity * m.UnitCost }

type Overhead struct {
	Months      float64 `json:"months"`
	MonthlyCost float64 `json:"monthlyCost"`
}

func (o Overhead) Kind() CostKind { return KindOverhead }
func (o Overhead) Total() float64 { return o.Months * o.MonthlyCost }

// CostItem is one costed unit of work, material or overhead within a
// category. Cost may be nil when the client submitted an item with none of
// the three shapes populated; such items total to zero.
type CostItem struct {
	Name string
	Cost CostShape
}

func (i CostItem) Total() float64 {
	if i.Cost == nil {
		return 0
	}
	return i.Cost.Total()
}

// costItemEnvelope is the wire form of a CostItem. The "type" discriminator
// selects the variant; when it is absent the variant is inferred from which
// field pair is present, matching the payloads the SPA has always sent.
type costItemEnvelope struct {
	Name        string   `json:"name"`
	Type        CostKind `json:"type,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitCost    *float64 `json:"unitCost,omitempty"`
	Months      *float64 `json:"months,omitempty"`
	MonthlyCost *float64 `json:"monthlyCost,omitempty"`
	Total       float64  `json:"total"`
}

func (i CostItem) MarshalJSON() ([]byte, error) {
	env := costItemEnvelope{Name: i.Name, Total: i.Total()}
	switch cost := i.Cost.(type) {
	case Labor:
		env.Type = KindLabor
		env.Hours = &cost.Hours
		env.Rate = &cost.Rate
	case Material:
		env.Type = KindMaterial
		env.Quantity = &cost.Quantity
		env.UnitCost = &cost.UnitCost
	case Overhead:
		env.Type = KindOverhead
		env.Months = &cost.Months
		env.MonthlyCost = &cost.MonthlyCost
	}
	return json.Marshal(env)
}

func (i *CostItem) UnmarshalJSON(data []byte) error {
	var env costItemEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	i.Name = env.Name
	i.Cost = nil

	kind := env.Type
	if kind == "" {
		switch {
		case env.Hours != nil || env.Rate != nil:
			kind = KindLabor
		case env.Quantity != nil || env.UnitCost != nil:
			kind = KindMaterial
		case env.Months != nil || env.MonthlyCost != nil:
			kind = KindOverhead
		}
	}

	switch kind {
	case KindLabor:
		i.Cost = Labor{Hours: deref(env.Hours), Rate: deref(env.Rate)}
	case KindMaterial:
		i.Cost = Material{Quantity: deref(env.Quantity), UnitCost: deref(env.UnitCost)}
	case KindOverhead:
		i.Cost = Overhead{Months: deref(env.Months), MonthlyCost: deref(env.MonthlyCost)}
	}
	return nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
