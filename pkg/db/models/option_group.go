package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OptionGroup bundles the options a customer picks from while configuring a
// product. IsRequired demands at least one selection; AllowMultiple controls
// single-select vs multi-select semantics.
type OptionGroup struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	IsRequired    bool      `gorm:"column:is_required;not null;default:false"`
	AllowMultiple bool      `gorm:"column:allow_multiple;not null;default:false"`
	DisplayOrder  int       `gorm:"column:display_order;not null;default:0"`
	Options       []Option  `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns an ID when the caller did not provide one.
func (g *OptionGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
