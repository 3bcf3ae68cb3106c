package entities

import "time"

// Classification is the closed set of find types.
type Classification string

const (
	Petroglyph      Classification = "Petroglyph"
	Axe             Classification = "Axe"
	ProjectilePoint Classification = "Projectile point"
	StoneTool       Classification = "Stone tool"
	Other           Classification = "Other"
)

// Classifications lists the allowed values in form order.
var Classifications = []Classification{Petroglyph, Axe, ProjectilePoint, StoneTool, Other}

func (c Classification) Valid() bool {
	for _, v := range Classifications {
		if c == v {
			return true
		}
	}
	return false
}

// Finding is one archaeological observation.
type Finding struct {
	ID                      uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Latitude                *float64       `json:"latitude"`
	Longitude               *float64       `json:"longitude"`
	Classification          Classification `gorm:"type:text" json:"classification"`
	DepthMM                 float64        `gorm:"column:depth_mm" json:"depth_mm"`
	LengthMM                float64        `gorm:"column:length_mm" json:"length_mm"`
	SupportMaterial         string         `json:"support_material"`
	HasRecognizablePatterns bool           `json:"has_recognizable_patterns"`
	PatternCount            int            `json:"pattern_count"`
	HasStraightLines        bool           `json:"has_straight_lines"`
	Notes                   string         `json:"notes"`
	CreatedAt               time.Time      `json:"created_at"`
}

func (Finding) TableName() string { return "findings" }

// HasLocation reports whether both coordinates are known.
func (f *Finding) HasLocation() bool { return f.Latitude != nil && f.Longitude != nil }
