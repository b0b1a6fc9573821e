package domain

import "station-core/internal/core/types"

// Container - именованное хранилище внутри сущности-владельца.
// Порядок содержимого - порядок вложения.
type Container struct {
	ID       string
	Owner    types.EntityID
	Contents []types.EntityID
}

// Contains проверяет, лежит ли сущность в контейнере.
func (c *Container) Contains(id types.EntityID) bool {
	if c == nil {
		return false
	}
	for _, other := range c.Contents {
		if other == id {
			return true
		}
	}
	return false
}

// Insert кладёт сущность. Возвращает false, если она уже внутри.
func (c *Container) Insert(id types.EntityID) bool {
	if c.Contains(id) {
		return false
	}
	c.Contents = append(c.Contents, id)
	return true
}

// Remove вынимает сущность, сохраняя порядок остальных.
func (c *Container) Remove(id types.EntityID) bool {
	if c == nil {
		return false
	}
	for i, other := range c.Contents {
		if other == id {
			c.Contents = append(c.Contents[:i], c.Contents[i+1:]...)
			return true
		}
	}
	return false
}

// Get возвращает контейнер по имени.
func (m *ContainerManagerComponent) Get(name string) (*Container, bool) {
	if m == nil {
		return nil, false
	}
	c, ok := m.Containers[name]
	return c, ok
}
