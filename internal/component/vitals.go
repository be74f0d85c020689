package component

import "time"

const (
	NameHealth   = "Health"
	NameLifetime = "Lifetime"
)

// Health holds hit points. Regen is HP restored per second, capped at Max.
type Health struct {
	HP    float64 `yaml:"hp"`
	Max   float64 `yaml:"max"`
	Regen float64 `yaml:"regen"`
}

func (*Health) ComponentName() string { return NameHealth }

func (h *Health) Fields() map[string]float64 {
	return map[string]float64{"hp": h.HP, "max": h.Max, "regen": h.Regen}
}

func (h *Health) SetField(name string, v float64) bool {
	switch name {
	case "hp":
		h.HP = v
	case "max":
		h.Max = v
	case "regen":
		h.Regen = v
	default:
		return false
	}
	return true
}

// Lifetime counts down; the entity expires when Remaining reaches zero.
type Lifetime struct {
	Remaining time.Duration `yaml:"ttl"`
}

func (*Lifetime) ComponentName() string { return NameLifetime }

// Fields exposes the remaining time in seconds.
func (l *Lifetime) Fields() map[string]float64 {
	return map[string]float64{"ttl": l.Remaining.Seconds()}
}

func (l *Lifetime) SetField(name string, v float64) bool {
	if name != "ttl" {
		return false
	}
	l.Remaining = time.Duration(v * float64(time.Second))
	return true
}
