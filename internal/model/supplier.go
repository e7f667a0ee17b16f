package model

type Supplier struct {
	BaseModel
	Name    string  `gorm:"type:varchar(255);not null" json:"name"`
	Contact string  `gorm:"type:varchar(255);not null" json:"contact"`
	Email   *string `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Address string  `gorm:"type:varchar(500)" json:"address"`
}
