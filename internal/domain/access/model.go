package access

import (
	"time"

	ierr "github.com/brushlead/brushlead/internal/errors"
)

// LeadAccess grants a painter visibility into a lead's full details. At most
// one row exists per (lead, painter) pair; the row is created exactly once,
// on the first successful payment for the pair, and never deleted.
type LeadAccess struct {
	// Unique identifier for the access grant
	ID string `db:"id" json:"id"`
	// The lead the painter paid for
	LeadID string `db:"lead_id" json:"lead_id"`
	// The painter granted access
	PainterID string `db:"painter_id" json:"painter_id"`
	// The lead payment that funded the grant
	PaymentID string `db:"payment_id" json:"payment_id"`
	// When access was granted
	GrantedAt time.Time `db:"granted_at" json:"granted_at"`
}

// Validate validates the access grant
func (a *LeadAccess) Validate() error {
	if a.LeadID == "" {
		return ierr.NewError("invalid lead id").
			WithHint("Lead id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if a.PainterID == "" {
		return ierr.NewError("invalid painter id").
			WithHint("Painter id must not be empty").
			Mark(ierr.ErrValidation)
	}
	if a.PaymentID == "" {
		return ierr.NewError("invalid payment id").
			WithHint("Payment id must not be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TableName returns the table name for the access grant
func (a *LeadAccess) TableName() string {
	return "lead_accesses"
}
