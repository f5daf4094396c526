package common

type Role string

const (
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleOwner     Role = "owner"
)

// Actor is the authenticated participant on whose behalf the client acts.
// Supplied by the external auth collaborator.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (r Role) Elevated() bool {
	return r == RoleModerator || r == RoleOwner
}

// Action is a capability an actor may hold on a specific message.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionReact  Action = "react"
	ActionReply  Action = "reply"
	ActionReport Action = "report"
	ActionStar   Action = "star"
)

// AuthProvider is the external session collaborator.
type AuthProvider interface {
	CurrentActor() (Actor, error)
}
