package quiz

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wonder/internal/graph"
	"github.com/abhisek/wonder/internal/keys"
)

// Graph is the read side of the concept graph used to build questions.
type Graph interface {
	GetNode(name string) (graph.Node, bool)
	ListNodes() []graph.Node
	Prerequisites(name string) ([]graph.Node, error)
	Dependents(name string) ([]graph.Node, error)
}

// Generator builds quizzes from graph structure and grades answers.
// It is safe for concurrent use.
type Generator struct {
	graph Graph
	bank  *Bank
	now   func() time.Time

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand replaces the random source used for distractor selection and
// shuffling. Tests pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rnd = r }
}

// WithBank shares an existing question bank.
func WithBank(b *Bank) Option {
	return func(g *Generator) { g.bank = b }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator over the given graph.
func New(gr Graph, opts ...Option) *Generator {
	g := &Generator{
		graph: gr,
		bank:  NewBank(),
		now:   func() time.Time { return time.Now().UTC() },
		rnd:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Bank returns the question bank backing this generator.
func (g *Generator) Bank() *Bank {
	return g.bank
}

// Generate builds up to count questions about concept. Templates are tried in
// a fixed order (description, prerequisite, dependent); an isolated concept
// gets a single association question instead. Every returned question is in
// the bank before Generate returns.
func (g *Generator) Generate(concept string, count int) ([]Question, error) {
	target, ok := g.graph.GetNode(concept)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConcept, concept)
	}
	count = clampCount(count)

	var others []graph.Node
	for _, n := range g.graph.ListNodes() {
		if n.Key() != target.Key() {
			others = append(others, n)
		}
	}
	g.shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	var questions []Question

	if target.Description != "" {
		questions = append(questions, g.describe(target, others))
	}

	prereqs, err := g.graph.Prerequisites(target.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownConcept, err)
	}
	if len(prereqs) > 0 {
		questions = append(questions, g.identify(target, others, prereqs,
			TemplatePrerequisite, fmt.Sprintf("Which concept should you study before tackling %s?", target.Name)))
	}

	dependents, err := g.graph.Dependents(target.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownConcept, err)
	}
	if len(dependents) > 0 {
		questions = append(questions, g.identify(target, others, dependents,
			TemplateDependent, fmt.Sprintf("Which concept builds on %s?", target.Name)))
	}

	if len(questions) == 0 {
		questions = append(questions, g.associate(target, others))
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	g.bank.Put(questions...)

	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.clone()
	}
	return out, nil
}

// Question returns a previously generated question.
func (g *Generator) Question(id string) (Question, error) {
	q, ok := g.bank.Get(id)
	if !ok {
		return Question{}, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
	}
	return q, nil
}

// Grade checks selected against the stored answer key. Grading does not
// change any state and may be repeated.
func (g *Generator) Grade(questionID string, selected int) (Result, error) {
	q, err := g.Question(questionID)
	if err != nil {
		return Result{}, err
	}
	if selected < 0 || selected >= len(q.Choices) {
		return Result{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, selected, len(q.Choices))
	}
	return Result{Correct: selected == q.CorrectIndex, Question: q}, nil
}

// describe asks which description matches the concept.
func (g *Generator) describe(target graph.Node, others []graph.Node) Question {
	seen := map[string]bool{target.Description: true}
	var distractors []string
	for _, n := range others {
		if n.Description == "" || seen[n.Description] {
			continue
		}
		seen[n.Description] = true
		distractors = append(distractors, n.Description)
	}
	g.shuffle(len(distractors), func(i, j int) { distractors[i], distractors[j] = distractors[j], distractors[i] })

	choices := append([]string{target.Description}, head(distractors, ChoiceCount-1)...)
	choices = pad(choices, func(n int) string {
		if n == 1 {
			return fmt.Sprintf("Practice prompt about %s", target.Name)
		}
		return fmt.Sprintf("Practice prompt %d about %s", n, target.Name)
	})
	return g.build(target, TemplateDescription,
		fmt.Sprintf("Which description best matches %s?", target.Name), choices, target.Description)
}

// identify asks for the first entry of related. Distractors come from
// concepts outside related; when those run short the rest of the pool,
// related included, fills in before any synthetic filler.
func (g *Generator) identify(target graph.Node, others, related []graph.Node, tmpl Template, prompt string) Question {
	exclude := make(map[keys.Key]bool, len(related))
	for _, n := range related {
		exclude[n.Key()] = true
	}
	var distractors []string
	for _, n := range others {
		if !exclude[n.Key()] {
			distractors = append(distractors, n.Name)
		}
	}
	g.shuffle(len(distractors), func(i, j int) { distractors[i], distractors[j] = distractors[j], distractors[i] })

	correct := related[0].Name
	choices := append([]string{correct}, head(distractors, ChoiceCount-1)...)
	taken := make(map[string]bool, ChoiceCount)
	for _, c := range choices {
		taken[c] = true
	}
	for _, n := range others {
		if len(choices) == ChoiceCount {
			break
		}
		if !taken[n.Name] {
			taken[n.Name] = true
			choices = append(choices, n.Name)
		}
	}
	choices = pad(choices, relatedIdea)
	return g.build(target, tmpl, prompt, choices, correct)
}

// associate is the fallback for a concept with no description, prerequisites
// or dependents.
func (g *Generator) associate(target graph.Node, others []graph.Node) Question {
	choices := []string{target.Name}
	for _, n := range head(others, ChoiceCount-1) {
		choices = append(choices, n.Name)
	}
	choices = pad(choices, relatedIdea)
	return g.build(target, TemplateAssociation,
		fmt.Sprintf("Which option is most closely associated with %s?", target.Name), choices, target.Name)
}

func (g *Generator) build(target graph.Node, tmpl Template, prompt string, choices []string, correct string) Question {
	g.shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	idx := 0
	for i, c := range choices {
		if c == correct {
			idx = i
			break
		}
	}
	return Question{
		ID:           uuid.NewString(),
		Concept:      target.Name,
		Template:     tmpl,
		Prompt:       prompt,
		Choices:      choices,
		CorrectIndex: idx,
		CreatedAt:    g.now(),
	}
}

func (g *Generator) shuffle(n int, swap func(i, j int)) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	g.rnd.Shuffle(n, swap)
}

func relatedIdea(n int) string {
	return fmt.Sprintf("Related idea %d", n)
}

// pad appends filler options until there are ChoiceCount distinct choices.
func pad(choices []string, filler func(n int) string) []string {
	taken := make(map[string]bool, ChoiceCount)
	for _, c := range choices {
		taken[c] = true
	}
	for n := 1; len(choices) < ChoiceCount; n++ {
		f := filler(n)
		if taken[f] {
			continue
		}
		taken[f] = true
		choices = append(choices, f)
	}
	return choices
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func clampCount(count int) int {
	switch {
	case count <= 0:
		return DefaultCount
	case count > MaxCount:
		return MaxCount
	default:
		return count
	}
}
