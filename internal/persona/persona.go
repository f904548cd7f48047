// Package persona holds the closed set of expert personas and their system prompts.
package persona

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed prompts/*.md
var promptFS embed.FS

// Fallback is the system prompt used for an unknown persona.
const Fallback = "You are a polite assistant."

// Persona is an expert role that selects the system prompt sent to the model.
type Persona struct {
	ID          string
	Name        string
	Description string
	Prompt      string
}

var catalog = []struct {
	id, name, desc string
}{
	{"health-advisor", "Health Advisor", "Exercise, sleep, wellbeing"},
	{"culinary-expert", "Culinary Expert", "Recipes, ingredients, techniques"},
	{"medical-advisor", "Medical Advisor", "Symptoms, conditions, treatments"},
	{"software-engineer", "Software Engineer", "Code, design, debugging"},
	{"education-consultant", "Education Consultant", "Study plans, schools, exams"},
}

var (
	personas []Persona
	byID     map[string]Persona
)

func init() {
	byID = make(map[string]Persona, len(catalog))
	for _, c := range catalog {
		data, err := promptFS.ReadFile("prompts/" + c.id + ".md")
		if err != nil {
			panic(fmt.Sprintf("persona %s: missing prompt: %v", c.id, err))
		}
		p := Persona{
			ID:          c.id,
			Name:        c.name,
			Description: c.desc,
			Prompt:      strings.TrimSpace(string(data)),
		}
		personas = append(personas, p)
		byID[p.ID] = p
	}
}

// All returns the personas in display order.
func All() []Persona {
	out := make([]Persona, len(personas))
	copy(out, personas)
	return out
}

// IDs returns the persona identifiers in display order.
func IDs() []string {
	ids := make([]string, len(personas))
	for i, p := range personas {
		ids[i] = p.ID
	}
	return ids
}

func Get(id string) (Persona, bool) {
	p, ok := byID[id]
	return p, ok
}

// Default returns the first persona of the catalog.
func Default() Persona {
	return personas[0]
}

// Index returns the display position of id, or 0 when id is unknown.
func Index(id string) int {
	for i, p := range personas {
		if p.ID == id {
			return i
		}
	}
	return 0
}

// Select returns the system prompt for id. Unknown ids get the Fallback prompt.
func Select(id string) string {
	if p, ok := byID[id]; ok {
		return p.Prompt
	}
	return Fallback
}

// DisplayName returns the persona's label, or id itself when unknown.
func DisplayName(id string) string {
	if p, ok := byID[id]; ok {
		return p.Name
	}
	return id
}
