package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// IssuanceRecord is an immutable record of stock leaving inventory. It is
// only ever created or deleted, never updated.
type IssuanceRecord struct {
	BaseModel
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Product        *Product       `gorm:"foreignKey:ProductID"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	User           *User          `gorm:"foreignKey:UserID"`
	QuantityIssued int            `gorm:"not null"`
	IssuedTo       string         `gorm:"type:varchar(255);not null"`
	IssueDate      datatypes.Date `gorm:"type:date;not null;index"`
	Purpose        string         `gorm:"type:varchar(500)"`
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// IssuanceResponse is the read-time projection of an issuance: product and
// user names come from the joined rows, not from stored copies.
type IssuanceResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UserID         uuid.UUID `json:"user_id"`
	UserName       string    `json:"user_name"`
	QuantityIssued int       `json:"quantity_issued"`
	IssuedTo       string    `json:"issued_to"`
	IssueDate      string    `json:"issue_date"`
	Purpose        string    `json:"purpose,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *IssuanceRecord) ToResponse() IssuanceResponse {
	res := IssuanceResponse{
		ID:             r.ID,
		ProductID:      r.ProductID,
		UserID:         r.UserID,
		QuantityIssued: r.QuantityIssued,
		IssuedTo:       r.IssuedTo,
		IssueDate:      time.Time(r.IssueDate).Format(DateLayout),
		Purpose:        r.Purpose,
		CreatedAt:      r.CreatedAt,
	}
	if r.Product != nil {
		res.ProductName = r.Product.Name
	}
	if r.User != nil {
		res.UserName = r.User.FullName
	}
	return res
}
