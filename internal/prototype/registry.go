package prototype

import (
	"embed"
	"fmt"
	"os"

	"station-core/internal/core/types/enums"
	"station-core/internal/domain"
	"station-core/pkg/logger"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed data/base.yml data/schema.json
var dataFS embed.FS

const schemaURL = "prototypes.schema.json"

// Registry - индекс всех загруженных шаблонов. Реализует domain.PrototypeIndex.
type Registry struct {
	// Записи хранятся в порядке загрузки.
	entities *orderedmap.OrderedMap[string, *EntityPrototype]
	bodies   *orderedmap.OrderedMap[string, *BodyPrototype]
	schema   *jsonschema.Schema
	log      *logrus.Entry
}

// NewRegistry создаёт реестр со встроенными шаблонами.
func NewRegistry() (*Registry, error) {
	rawSchema, err := dataFS.ReadFile("data/schema.json")
	if err != nil {
		return nil, err
	}
	schema, err := jsonschema.CompileString(schemaURL, string(rawSchema))
	if err != nil {
		return nil, fmt.Errorf("compile prototype schema: %w", err)
	}

	r := &Registry{
		entities: orderedmap.NewOrderedMap[string, *EntityPrototype](),
		bodies:   orderedmap.NewOrderedMap[string, *BodyPrototype](),
		schema:   schema,
		log:      logger.Log.WithField("component", "prototypes"),
	}

	base, err := dataFS.ReadFile("data/base.yml")
	if err != nil {
		return nil, err
	}
	if err := r.LoadBytes(base); err != nil {
		return nil, fmt.Errorf("load base prototypes: %w", err)
	}
	return r, nil
}

// LoadFile подгружает шаблоны из файла.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := r.LoadBytes(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadBytes проверяет документ схемой и добавляет его записи.
// Запись с уже известным ID заменяет старую. При ошибке реестр не меняется.
func (r *Registry) LoadBytes(data []byte) error {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("decode prototypes: %w", err)
	}
	if generic == nil {
		return nil
	}
	if err := r.schema.Validate(generic); err != nil {
		return fmt.Errorf("invalid prototypes: %w", err)
	}

	docs, err := decodeDocuments(data)
	if err != nil {
		return err
	}

	entities := r.entities.Copy()
	bodies := r.bodies.Copy()

	for _, doc := range docs {
		switch doc.Type {
		case docTypeBody:
			bodies.Set(doc.ID, &BodyPrototype{ID: doc.ID, Hands: doc.Hands})
		case docTypeEntity:
			entities.Set(doc.ID, &EntityPrototype{
				id:         doc.ID,
				name:       doc.Name,
				kind:       enums.ParseEntityKind(doc.Kind),
				components: doc.Components,
			})
		}
	}

	if err := resolveBodies(entities, bodies); err != nil {
		return err
	}

	r.entities = entities
	r.bodies = bodies

	r.log.WithFields(logrus.Fields{
		"entities": entities.Len(),
		"bodies":   bodies.Len(),
	}).Debug("Prototypes loaded")
	return nil
}

// resolveBodies проставляет шаблонам ссылки на тела. Сначала всё проверяется,
// потом присваивается: шаблоны разделяются со старой копией реестра.
func resolveBodies(entities *orderedmap.OrderedMap[string, *EntityPrototype], bodies *orderedmap.OrderedMap[string, *BodyPrototype]) error {
	resolved := make(map[*EntityPrototype]*BodyPrototype)
	for el := entities.Front(); el != nil; el = el.Next() {
		proto := el.Value
		for _, c := range proto.components {
			if c.Type != "Body" {
				continue
			}
			body, ok := bodies.Get(c.Prototype)
			if !ok {
				return fmt.Errorf("entity %q references body %q: %w", proto.id, c.Prototype, domain.ErrUnknownPrototype)
			}
			resolved[proto] = body
		}
	}

	for el := entities.Front(); el != nil; el = el.Next() {
		el.Value.body = resolved[el.Value]
	}
	return nil
}

// Index ищет шаблон сущности по ID.
func (r *Registry) Index(id string) (domain.Prototype, bool) {
	p, ok := r.entities.Get(id)
	if !ok {
		return nil, false
	}
	return p, true
}

// Body ищет тело по ID.
func (r *Registry) Body(id string) (*BodyPrototype, bool) {
	return r.bodies.Get(id)
}

// EntityIDs возвращает ID шаблонов сущностей в порядке загрузки.
func (r *Registry) EntityIDs() []string {
	return r.entities.Keys()
}
