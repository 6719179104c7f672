package form

// Stage orders the reactions to a field change. Every handler of a stage
// finishes before the next stage starts.
type Stage int

const (
	// StageSelf re-runs the changed field's own rules.
	StageSelf Stage = iota
	// StageCross runs rules spanning several fields.
	StageCross
	// StageReconcile keeps dependent collections in step with their driver.
	StageReconcile
	// StageDerived recomputes values derived from other fields.
	StageDerived

	stageCount
)

type handler func(field string)

// dispatcher fans a field change out to handlers registered for that field
// and to handlers registered for every field, stage by stage.
type dispatcher struct {
	byField map[string]*[stageCount][]handler
	all     [stageCount][]handler
}

func newDispatcher() *dispatcher {
	return &dispatcher{byField: make(map[string]*[stageCount][]handler)}
}

// On registers h for changes to field.
func (d *dispatcher) On(field string, stage Stage, h handler) {
	stages, ok := d.byField[field]
	if !ok {
		stages = &[stageCount][]handler{}
		d.byField[field] = stages
	}
	stages[stage] = append(stages[stage], h)
}

// OnAny registers h for changes to any field.
func (d *dispatcher) OnAny(stage Stage, h handler) {
	d.all[stage] = append(d.all[stage], h)
}

// Dispatch runs, for each stage in order, the field-specific handlers and
// then the catch-all ones, each in registration order.
func (d *dispatcher) Dispatch(field string) {
	stages := d.byField[field]
	for s := Stage(0); s < stageCount; s++ {
		if stages != nil {
			for _, h := range stages[s] {
				h(field)
			}
		}
		for _, h := range d.all[s] {
			h(field)
		}
	}
}
