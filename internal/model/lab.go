package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LabTest is one entry of a lab's test catalog, stored as jsonb.
type LabTest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type LabTests []LabTest

func (t LabTests) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *LabTests) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LabTests", src)
	}
}

type Lab struct {
	Base
	Name    string   `db:"name" json:"name"`
	City    string   `db:"city" json:"city"`
	Address string   `db:"address" json:"address"`
	Rating  float64  `db:"rating" json:"rating"`
	Tests   LabTests `db:"tests" json:"tests"`
}
