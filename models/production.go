package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ProductionDaily is one day of allocated volumes for a wellbore. The
// table is range-partitioned by prod_date in the migrations, so the
// primary key is the composite (wellbore_id, prod_date) and loads upsert
// on that pair.
type ProductionDaily struct {
	WellboreID uuid.UUID `gorm:"type:uuid;primaryKey"  json:"wellboreId"`
	ProdDate   time.Time `gorm:"type:date;primaryKey"  json:"prodDate"`

	OilVol   float64 `gorm:"column:oil_vol"   json:"oilVol"`
	GasVol   float64 `gorm:"column:gas_vol"   json:"gasVol"`
	WaterVol float64 `gorm:"column:water_vol" json:"waterVol"`

	HoursOn         float64 `gorm:"column:hours_on"         json:"hoursOn"`
	TubingPressure  float64 `gorm:"column:tubing_pressure"  json:"tubingPressure"`
	CasingPressure  float64 `gorm:"column:casing_pressure"  json:"casingPressure"`
	ChokeSize       float64 `gorm:"column:choke_size"       json:"chokeSize"`

	Attributes datatypes.JSON `gorm:"type:jsonb" json:"attributes,omitempty"`
}

func (ProductionDaily) TableName() string {
	return "production_daily"
}
