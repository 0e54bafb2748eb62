package model

type Medicine struct {
	Base
	Name                 string  `db:"name" json:"name"`
	Description          string  `db:"description" json:"description"`
	Price                float64 `db:"price" json:"price"`
	Category             string  `db:"category" json:"category"`
	Image                string  `db:"image" json:"image"`
	Stock                int     `db:"stock" json:"stock"`
	RequiresPrescription bool    `db:"requires_prescription" json:"requiresPrescription"`
	Manufacturer         string  `db:"manufacturer" json:"manufacturer"`
	IsActive             bool    `db:"is_active" json:"isActive"`
}

type CreateMedicineRequest struct {
	Name                 string  `json:"name" validate:"required"`
	Description          string  `json:"description" validate:"required"`
	Price                float64 `json:"price" validate:"required,gte=0"`
	Category             string  `json:"category" validate:"required"`
	Image                string  `json:"image"`
	Stock                int     `json:"stock" validate:"gte=0"`
	RequiresPrescription bool    `json:"requiresPrescription"`
	Manufacturer         string  `json:"manufacturer" validate:"required"`
}

type UpdateMedicineRequest struct {
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
	IsActive *bool    `json:"isActive"`
}
