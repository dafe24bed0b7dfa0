package models

import "time"

// Relation kinds. A relation is a directed edge from an actor to a target:
// likes and bookmarks point at recipes, subscriptions point at users.
const (
	RelationLike         = "like"
	RelationBookmark     = "bookmark"
	RelationSubscription = "subscription"
)

// Relation represents a toggle-able edge (actor, target, kind). The composite
// unique index is what guarantees at-most-one under concurrent toggles.
type Relation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ActorID   uint      `json:"actor_id" gorm:"index;uniqueIndex:idx_actor_target_kind"`
	TargetID  string    `json:"target_id" gorm:"index;uniqueIndex:idx_actor_target_kind"`
	Kind      string    `json:"kind" gorm:"size:20;uniqueIndex:idx_actor_target_kind"`
	CreatedAt time.Time `json:"created_at"`
}
