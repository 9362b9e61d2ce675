package heat

// Integrator turns a sweep's accumulated flux into temperature changes.
type Integrator struct {
	heatMass float32
	speed    float32
	minHeat  float32
	maxHeat  float32
}

func NewIntegrator(p Params) *Integrator {
	return &Integrator{
		heatMass: p.TileMass * p.TileHeatCapacity,
		speed:    p.HeatTransferSpeed,
		minHeat:  p.MinHeat,
		maxHeat:  p.MaxHeat,
	}
}

// Apply updates every cell from its accumulated flux and returns how many
// results had to be clamped. Each update depends only on the cell's own
// temperature and flux slot, so writing in place is order independent.
// Cells with no net flux are left untouched; a result that is not a number
// clamps to the floor.
func (in *Integrator) Apply(f *Field, flux []float32, dt float32) int {
	clamped := 0
	scale := in.speed * dt / in.heatMass
	if scale == 0 {
		return 0
	}
	for i, t := range f.data {
		if flux[i] == 0 {
			continue
		}
		next := t + flux[i]*scale
		switch {
		case next > in.maxHeat:
			next = in.maxHeat
			clamped++
		case !(next >= in.minHeat):
			next = in.minHeat
			clamped++
		}
		f.data[i] = next
	}
	return clamped
}
