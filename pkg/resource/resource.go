package resource

import "time"

type Type string

const (
	TypeHuman     Type = "human"
	TypeEquipment Type = "equipment"
	TypeMaterial  Type = "material"
	TypeOther     Type = "other"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeHuman, TypeEquipment, TypeMaterial, TypeOther:
		return true
	}
	return false
}

// Resource is a reusable cost source: a person, a machine or a material
// that estimations can draw on.
type Resource struct {
	ID             int
	Name           string
	Type           Type
	Description    string
	UnitCost       float64
	Available      bool
	Specifications map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
