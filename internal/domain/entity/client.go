// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// Client is a lightweight reference to a customer record owned by the
// external customer-management subsystem.
type Client struct {
	ID   uuid.UUID
	Name string
}
