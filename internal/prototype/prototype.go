// Package prototype загружает шаблоны сущностей из YAML.
//
// Документ - список записей двух видов: body (набор рук) и entity (набор компонентов).
// Перед разбором документ проверяется JSON Schema, поэтому опечатки в полях
// и неизвестные компоненты отвергаются сразу при загрузке.
package prototype

import (
	"fmt"

	"station-core/internal/core/types/enums"
	"station-core/internal/domain"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

const (
	docTypeEntity = "entity"
	docTypeBody   = "body"
)

// HandSpec - рука из тела.
type HandSpec struct {
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
}

// BodyPrototype - набор рук, с которым сущность появляется.
type BodyPrototype struct {
	ID    string
	Hands []HandSpec
}

// EntityPrototype - шаблон сущности. Реализует domain.Prototype.
type EntityPrototype struct {
	id         string
	name       string
	kind       enums.EntityKind
	components []componentSpec

	// body заполняется при разрешении ссылок после загрузки.
	body *BodyPrototype
}

func (p *EntityPrototype) ID() string             { return p.id }
func (p *EntityPrototype) Kind() enums.EntityKind { return p.kind }

// Apply навешивает компоненты шаблона на свежую сущность.
func (p *EntityPrototype) Apply(e *domain.Entity) error {
	if p.name != "" {
		e.Name = p.name
	}
	for _, c := range p.components {
		if err := c.apply(p, e); err != nil {
			return fmt.Errorf("component %s: %w", c.Type, err)
		}
	}
	return nil
}

// --- КОМПОНЕНТЫ В YAML ---

type componentSpec struct {
	Type string `yaml:"type"`

	// Body
	Prototype string `yaml:"prototype"`

	// Handcuff
	Capacity   *int `yaml:"capacity"`
	CuffTime   int  `yaml:"cuffTime"`
	UncuffTime int  `yaml:"uncuffTime"`

	// Physics
	Radius      float32   `yaml:"radius"`
	HalfExtents []float32 `yaml:"halfExtents"`
	Impassable  bool      `yaml:"impassable"`

	// ContainerManager
	Containers []string `yaml:"containers"`
}

func (c componentSpec) apply(p *EntityPrototype, e *domain.Entity) error {
	switch c.Type {
	case "Cuffable":
		e.Cuffable = domain.NewCuffableComponent()

	case "Hands":
		if e.Hands == nil {
			e.Hands = &domain.HandsComponent{}
		}

	case "Body":
		if p.body == nil {
			return fmt.Errorf("body %q: %w", c.Prototype, domain.ErrUnknownPrototype)
		}
		if e.Hands == nil {
			e.Hands = &domain.HandsComponent{}
		}
		for _, h := range p.body.Hands {
			if _, err := e.Hands.AddHand(h.Name, domain.ParseHandLocation(h.Location)); err != nil {
				return fmt.Errorf("body %q: %w", c.Prototype, err)
			}
		}

	case "Handcuff":
		capacity := domain.DefaultHandcuffCapacity
		if c.Capacity != nil {
			capacity = *c.Capacity
		}
		e.Handcuff = &domain.HandcuffComponent{
			Capacity:    capacity,
			CuffDelay:   c.CuffTime,
			UncuffDelay: c.UncuffTime,
		}

	case "Physics":
		phys := &domain.PhysicsComponent{Radius: c.Radius, Impassable: c.Impassable}
		if len(c.HalfExtents) == 2 {
			phys.HalfExtents = mgl32.Vec2{c.HalfExtents[0], c.HalfExtents[1]}
		}
		e.Physics = phys

	case "ContainerManager":
		if e.Containers == nil {
			e.Containers = &domain.ContainerManagerComponent{Containers: make(map[string]*domain.Container)}
		}
		for _, name := range c.Containers {
			e.Containers.Containers[name] = &domain.Container{ID: name, Owner: e.ID}
		}

	default:
		return fmt.Errorf("unknown component type %q", c.Type)
	}
	return nil
}

// document - одна запись YAML-файла.
type document struct {
	Type       string          `yaml:"type"`
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind"`
	Hands      []HandSpec      `yaml:"hands"`
	Components []componentSpec `yaml:"components"`
}

func decodeDocuments(data []byte) ([]document, error) {
	var docs []document
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode prototypes: %w", err)
	}
	return docs, nil
}
