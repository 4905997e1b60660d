package usecase

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/zapswap/zapdeploy/internal/domain"
)

// DeploymentPlan is the ordered set of steps a run executes
type DeploymentPlan struct {
	Steps []*Step
	// Tags is the filter the plan was built with, empty for every step
	Tags []string
	// Dependencies maps a step name to the step names providing its dependency tags
	Dependencies map[string][]string

	closure map[string][]string
}

// Closure returns the transitive dependencies of a step, sorted by name
func (p *DeploymentPlan) Closure(name string) []string {
	return p.closure[name]
}

// Names returns the step names in execution order
func (p *DeploymentPlan) Names() []string {
	return lo.Map(p.Steps, func(s *Step, _ int) string { return s.Name })
}

// StepGraph is the DAG over step names derived from tag dependencies
type StepGraph struct {
	nodes map[string]*Step
	// edges from a step to the steps that depend on it
	edges map[string][]string
	deps  map[string][]string
	tags  map[string][]string
}

// NewStepGraph indexes steps by tag and resolves every dependency tag
func NewStepGraph(steps []*Step) (*StepGraph, error) {
	g := &StepGraph{
		nodes: make(map[string]*Step, len(steps)),
		edges: make(map[string][]string),
		deps:  make(map[string][]string),
		tags:  make(map[string][]string),
	}

	for _, step := range steps {
		if step.Name == "" {
			return nil, fmt.Errorf("step with empty name")
		}
		if _, exists := g.nodes[step.Name]; exists {
			return nil, fmt.Errorf("duplicate step name %q", step.Name)
		}
		g.nodes[step.Name] = step
		for _, tag := range step.AllTags() {
			g.tags[tag] = append(g.tags[tag], step.Name)
		}
	}

	for name, step := range g.nodes {
		var deps []string
		for _, tag := range step.Dependencies {
			providers, ok := g.tags[tag]
			if !ok {
				return nil, fmt.Errorf("%w: step %q depends on %q", domain.ErrUnknownTag, name, tag)
			}
			deps = append(deps, providers...)
		}
		deps = lo.Uniq(deps)
		sort.Strings(deps)
		g.deps[name] = deps
		for _, dep := range deps {
			g.edges[dep] = append(g.edges[dep], name)
		}
	}

	return g, nil
}

// StepsWithTag returns the names of the steps providing tag
func (g *StepGraph) StepsWithTag(tag string) []string {
	return g.tags[tag]
}

// TopologicalSort orders steps so every step follows its dependencies.
// Ties are broken by name so the order is deterministic.
func (g *StepGraph) TopologicalSort() ([]*Step, error) {
	// Calculate in-degree for each node
	inDegree := make(map[string]int, len(g.nodes))
	for name := range g.nodes {
		inDegree[name] = len(g.deps[name])
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	result := make([]*Step, 0, len(g.nodes))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, g.nodes[current])

		dependents := g.edges[current]
		sort.Strings(dependents)
		for _, dependent := range dependents {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycleNodes []string
		for name, degree := range inDegree {
			if degree > 0 {
				cycleNodes = append(cycleNodes, name)
			}
		}
		sort.Strings(cycleNodes)
		return nil, &domain.CircularDependencyError{Steps: cycleNodes}
	}

	return result, nil
}

// BuildPlan orders steps and, with a tag filter, keeps the tagged steps and
// their transitive dependencies.
func BuildPlan(steps []*Step, tags []string) (*DeploymentPlan, error) {
	g, err := NewStepGraph(steps)
	if err != nil {
		return nil, err
	}

	ordered, err := g.TopologicalSort()
	if err != nil {
		return nil, err
	}

	// Dependencies precede dependents, so one pass in order is enough
	closure := make(map[string][]string, len(ordered))
	for _, step := range ordered {
		var all []string
		for _, dep := range g.deps[step.Name] {
			all = append(all, dep)
			all = append(all, closure[dep]...)
		}
		all = lo.Uniq(all)
		sort.Strings(all)
		closure[step.Name] = all
	}

	plan := &DeploymentPlan{
		Tags:         tags,
		Dependencies: g.deps,
		closure:      closure,
	}

	if len(tags) == 0 {
		plan.Steps = ordered
		return plan, nil
	}

	selected := make(map[string]bool)
	for _, tag := range tags {
		providers := g.StepsWithTag(tag)
		if len(providers) == 0 {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTag, tag)
		}
		for _, name := range providers {
			selected[name] = true
			for _, dep := range closure[name] {
				selected[dep] = true
			}
		}
	}

	plan.Steps = lo.Filter(ordered, func(s *Step, _ int) bool { return selected[s.Name] })
	return plan, nil
}

// Targets returns the steps directly selected by the plan's tag filter
func (p *DeploymentPlan) Targets() map[string]bool {
	targets := make(map[string]bool)
	for _, step := range p.Steps {
		if len(p.Tags) == 0 || len(lo.Intersect(step.AllTags(), p.Tags)) > 0 {
			targets[step.Name] = true
		}
	}
	return targets
}
