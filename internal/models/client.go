package models

import (
	"time"

	"github.com/google/uuid"

	"cadastro/internal/address"
)

// Client is a registered business contact.
type Client struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ClientInput is the body accepted by create and update. When Address is
// blank, AddressDetails is encoded into it.
type ClientInput struct {
	Name           string        `json:"name" example:"João Silva"`
	Email          string        `json:"email" example:"joao.silva@empresa.com"`
	Phone          string        `json:"phone" example:"(11) 98765-4321"`
	Address        string        `json:"address" example:"Rua das Flores, 123, Centro, São Paulo - SP, CEP: 01310-100"`
	AddressDetails *address.Data `json:"addressDetails,omitempty"`
}

// Apply copies the business fields of in onto c.
func (c *Client) Apply(in ClientInput) {
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
}
