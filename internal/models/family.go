package models

import "time"

// Permissions is the capability bundle granted to a family member.
type Permissions struct {
	View   bool `json:"view"`
	Add    bool `json:"add"`
	Edit   bool `json:"edit"`
	Manage bool `json:"manage"`
}

// InviteStatus tracks a family member's invitation lifecycle.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRevoked  InviteStatus = "revoked"
)

// FamilyMember is a collaborator invited into the household.
type FamilyMember struct {
	ID          string       `json:"id"`
	OwnerUserID string       `json:"ownerUserId"`
	Email       string       `json:"email"`
	Name        string       `json:"name,omitempty"`
	Role        string       `json:"role,omitempty"`
	Permissions Permissions  `json:"permissions"`
	Status      InviteStatus `json:"status"`
	InvitedAt   time.Time    `json:"invitedAt"`
	AcceptedAt  *time.Time   `json:"acceptedAt,omitempty"`
}
