package models

// Reaction is a single emoji reaction by a user, embedded in the reaction
// list of a recipe, review, reply or comment. At most one entry exists per
// user in any one list.
type Reaction struct {
	UserID uint   `json:"user_id" bson:"user_id"`
	Emoji  string `json:"emoji" bson:"emoji"`
}

// SetReactionRequest defines the request body for reacting to a subject
type SetReactionRequest struct {
	Emoji string `json:"emoji" validate:"required"`
}
