package component

// Pod is the hazard mini-game shown on a pod's computer. Positions are in
// pod-local units; OriginX/OriginY place the pod in the contact space.
type Pod struct {
	Index int

	Health    int
	MaxHealth int
	// Escalated latches once exhaustion has been reported and clears on
	// refill, so a held zero reports only once.
	Escalated bool

	Visible  bool
	Frozen   bool
	Cooldown float64

	StartX float64
	StartY float64
	X      float64
	Y      float64

	OriginX float64
	OriginY float64
	Width   float64
	Height  float64
	Size    float64

	StepSize     float64
	StepInterval float64
	StepTimer    float64
}

// Playable reports whether the pod reacts to input and hazards.
func (p *Pod) Playable() bool {
	return p.Visible && !p.Frozen
}

// ProcessHazardContact applies one hazard hit and reports whether it counted.
// Frozen or hidden pods ignore contacts.
func (p *Pod) ProcessHazardContact() bool {
	if !p.Playable() {
		return false
	}
	if p.Health > 0 {
		p.Health--
	}
	return true
}

// IsExhausted reports whether the pod has no health left.
func (p *Pod) IsExhausted() bool {
	return p.Health <= 0
}

// ResetToStart moves the pod player back to its start tile.
func (p *Pod) ResetToStart() {
	p.X = p.StartX
	p.Y = p.StartY
	p.StepTimer = 0
}

// RefillHealth restores full health and re-arms exhaustion reporting.
func (p *Pod) RefillHealth() {
	p.Health = p.MaxHealth
	p.Escalated = false
}

// Freeze blocks play for d seconds. A longer pending freeze is kept.
func (p *Pod) Freeze(d float64) {
	p.Frozen = true
	if d > p.Cooldown {
		p.Cooldown = d
	}
}

// Unfreeze re-enables play immediately.
func (p *Pod) Unfreeze() {
	p.Frozen = false
	p.Cooldown = 0
}

var PodComponent = NewComponent[Pod]()
