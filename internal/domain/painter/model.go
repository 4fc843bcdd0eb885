package painter

import (
	ierr "github.com/brushlead/brushlead/internal/errors"
	"github.com/brushlead/brushlead/internal/types"
)

// Painter represents a painter account on the marketplace
type Painter struct {
	// Unique identifier for the painter
	ID string `db:"id" json:"id"`
	// Display name of the business or person
	Name string `db:"name" json:"name"`
	// Contact email, also the notification target
	Email string `db:"email" json:"email"`
	// Contact phone (optional)
	Phone string `db:"phone" json:"phone,omitempty"`
	// The gateway_customer_id links the painter to the gateway customer
	// object; empty until the first payment method is saved
	GatewayCustomerID *string `db:"gateway_customer_id" json:"gateway_customer_id,omitempty"`

	types.BaseModel
}

// Validate validates the painter
func (p *Painter) Validate() error {
	if p.Name == "" {
		return ierr.NewError("invalid name").
			WithHint("Name must not be empty").
			Mark(ierr.ErrValidation)
	}
	if p.Email == "" {
		return ierr.NewError("invalid email").
			WithHint("Email must not be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the table name for the painter
func (p *Painter) TableName() string {
	return "painters"
}
