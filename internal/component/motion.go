package component

const (
	NamePosition = "Position"
	NameVelocity = "Velocity"
)

// Position is a point on the demo plane, in world units.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (*Position) ComponentName() string { return NamePosition }

func (p *Position) Fields() map[string]float64 {
	return map[string]float64{"x": p.X, "y": p.Y}
}

func (p *Position) SetField(name string, v float64) bool {
	switch name {
	case "x":
		p.X = v
	case "y":
		p.Y = v
	default:
		return false
	}
	return true
}

// Velocity is a displacement in world units per second.
type Velocity struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

func (*Velocity) ComponentName() string { return NameVelocity }

func (v *Velocity) Fields() map[string]float64 {
	return map[string]float64{"dx": v.DX, "dy": v.DY}
}

func (v *Velocity) SetField(name string, f float64) bool {
	switch name {
	case "dx":
		v.DX = f
	case "dy":
		v.DY = f
	default:
		return false
	}
	return true
}
