// Package sample synthesizes example values for schema fragments that the
// source document provides no examples for.
package sample

import (
	"math"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/specview/specview/pkg/render"
)

// maxDepth bounds recursion into nested objects and arrays.
const maxDepth = 5

// arrayLength is the number of elements generated for array nodes.
const arrayLength = 2

// Generator produces deterministic fake values for normalized schema nodes.
// The zero seed is replaced with a fixed one so repeated calls over the same
// schema render the same example text.
type Generator struct {
	seed int64
}

// NewGenerator creates a generator with the given seed.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = 1
	}
	return &Generator{seed: seed}
}

// Value generates an example for node. Document-provided examples win over
// synthesis; enums pick their first value so output stays stable across
// seeds. Each call runs on a freshly seeded faker, so the same node always
// yields the same value and concurrent calls do not interleave.
func (g *Generator) Value(node *render.Node) any {
	s := &session{faker: gofakeit.New(g.seed)}
	return s.value(node, 0)
}

type session struct {
	faker *gofakeit.Faker
}

func (s *session) value(node *render.Node, depth int) any {
	if node == nil || depth >= maxDepth {
		return nil
	}
	if node.Example != nil {
		return node.Example
	}
	if len(node.Enum) > 0 {
		return node.Enum[0]
	}

	switch node.Kind {
	case render.KindString:
		return s.stringValue(node)
	case render.KindInteger:
		return s.integerValue(node)
	case render.KindNumber:
		return s.numberValue(node)
	case render.KindBoolean:
		return s.faker.Bool()
	case render.KindArray:
		items := make([]any, 0, arrayLength)
		for i := 0; i < arrayLength; i++ {
			items = append(items, s.value(node.Items, depth+1))
		}
		return items
	case render.KindObject:
		obj := make(map[string]any, len(node.Properties))
		for name, prop := range node.Properties {
			obj[name] = s.value(prop, depth+1)
		}
		return obj
	default:
		return nil
	}
}

func (s *session) stringValue(node *render.Node) string {
	switch node.Format {
	case "uuid":
		return s.faker.UUID()
	case "email":
		return s.faker.Email()
	case "uri", "url":
		return s.faker.URL()
	case "date":
		return s.faker.Date().Format("2006-01-02")
	case "date-time":
		return s.faker.Date().Format("2006-01-02T15:04:05Z07:00")
	case "ipv4":
		return s.faker.IPv4Address()
	case "hostname":
		return s.faker.DomainName()
	}
	v := s.faker.Word()
	if node.MinLength != nil {
		for uint64(len(v)) < *node.MinLength {
			v += s.faker.Letter()
		}
	}
	if node.MaxLength != nil && uint64(len(v)) > *node.MaxLength {
		v = v[:*node.MaxLength]
	}
	return v
}

func (s *session) integerValue(node *render.Node) int {
	min, max := 0, 100
	if node.Minimum != nil {
		min = int(*node.Minimum)
	}
	if node.Maximum != nil {
		max = int(*node.Maximum)
	}
	if max < min {
		max = min
	}
	return s.faker.IntRange(min, max)
}

func (s *session) numberValue(node *render.Node) float64 {
	min, max := 0.0, 100.0
	if node.Minimum != nil {
		min = *node.Minimum
	}
	if node.Maximum != nil {
		max = *node.Maximum
	}
	if max < min {
		max = min
	}
	v := s.faker.Float64Range(min, max)
	// Two decimal places keep rendered examples readable.
	return math.Round(v*100) / 100
}
