package dsl

import "github.com/aretw0/goap/pkg/domain"

// ActionBuilder provides a fluent API for configuring an action.
type ActionBuilder struct {
	key     string
	cost    float64
	pre     map[string]float64
	effects map[string]float64
	builder *Builder
}

// Cost sets the action cost.
func (ab *ActionBuilder) Cost(c float64) *ActionBuilder {
	ab.cost = c
	return ab
}

// Requires adds a precondition minimum.
func (ab *ActionBuilder) Requires(key string, minimum float64) *ActionBuilder {
	ab.pre[key] = minimum
	return ab
}

// Effect adds an effect delta.
func (ab *ActionBuilder) Effect(key string, delta float64) *ActionBuilder {
	ab.effects[key] = delta
	return ab
}

// Consumes is sugar for requiring a resource and spending it.
func (ab *ActionBuilder) Consumes(key string, amount float64) *ActionBuilder {
	return ab.Requires(key, amount).Effect(key, -amount)
}

// Produces is sugar for a positive effect.
func (ab *ActionBuilder) Produces(key string, amount float64) *ActionBuilder {
	return ab.Effect(key, amount)
}

// Add starts the next action, allowing one fluent chain for a whole catalogue.
func (ab *ActionBuilder) Add(key string) *ActionBuilder {
	return ab.builder.Add(key)
}

func (ab *ActionBuilder) action() domain.Action {
	return domain.Action{
		Key:           ab.key,
		Cost:          ab.cost,
		Preconditions: domain.NewState(ab.key+".pre", ab.pre),
		Effects:       domain.NewState(ab.key, ab.effects),
	}
}
