package canvas

import "github.com/vovakirdan/tui-flappy/internal/core"

// Trigger is what fires a rule.
type Trigger int

const (
	TriggerAction Trigger = iota
	TriggerCollision
)

// ApplyMomentum replaces the momentum of every entity matched by Target.
type ApplyMomentum struct {
	Target Target
	Value  core.Vec2
}

// Rule is a declarative "when X, apply momentum" binding.
type Rule struct {
	Trigger Trigger
	Action  core.Action // TriggerAction: input action that fires the rule
	Subject Target      // TriggerCollision: one side of the collision
	With    Target      // TriggerCollision: the other side
	Do      ApplyMomentum
}

// OnAction builds a rule that fires when the input frame carries a.
func OnAction(a core.Action, do ApplyMomentum) Rule {
	return Rule{Trigger: TriggerAction, Action: a, Do: do}
}

// OnCollision builds a rule that fires while subject overlaps with.
func OnCollision(subject, with Target, do ApplyMomentum) Rule {
	return Rule{Trigger: TriggerCollision, Subject: subject, With: with, Do: do}
}

// AddRule registers a rule. Rules are evaluated in registration order.
func (c *Canvas) AddRule(r Rule) {
	c.rules = append(c.rules, r)
}

// Rules returns the number of registered rules.
func (c *Canvas) Rules() int {
	return len(c.rules)
}

// Dispatch fires the action rules matching the input frame.
func (c *Canvas) Dispatch(in core.InputFrame) {
	for _, r := range c.rules {
		if r.Trigger == TriggerAction && in.Has(r.Action) {
			c.apply(r.Do)
		}
	}
}

func (c *Canvas) applyCollisionRules() {
	for _, r := range c.rules {
		if r.Trigger == TriggerCollision && c.Collides(r.Subject, r.With) {
			c.apply(r.Do)
		}
	}
}

func (c *Canvas) apply(m ApplyMomentum) {
	for _, n := range c.order {
		if e := c.entities[n]; m.Target.matches(e) {
			e.Momentum = m.Value
		}
	}
}
