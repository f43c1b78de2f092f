package models

import "time"

// AdminRequest is a pending application for admin rights. The password
// entered on the public form is forwarded to the auth provider and is
// never stored here.
type AdminRequest struct {
	ID         string     `bson:"_id,omitempty" json:"id"`
	Name       string     `bson:"name" json:"name"`
	Email      string     `bson:"email" json:"email"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	Approved   bool       `bson:"approved" json:"approved"`
	ApprovedAt *time.Time `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	ApprovedBy string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
}

// AdminUser is an approved administrator, keyed by email.
type AdminUser struct {
	Email      string    `bson:"_id" json:"email"`
	Name       string    `bson:"name" json:"name"`
	Approved   bool      `bson:"approved" json:"approved"`
	ApprovedAt time.Time `bson:"approvedAt" json:"approvedAt"`
	ApprovedBy string    `bson:"approvedBy" json:"approvedBy"`
}
