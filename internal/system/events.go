package system

import "github.com/cesgo/ces/internal/core/ecs"

// EntityExpired is emitted when an entity's Lifetime runs out.
type EntityExpired struct {
	EntityID ecs.EntityID
}

// HealthDepleted is emitted when an entity's HP reaches zero.
type HealthDepleted struct {
	EntityID ecs.EntityID
}
