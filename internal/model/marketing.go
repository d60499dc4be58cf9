package model

type Contact struct {
	BaseModel
	Name  *string `db:"name" json:"name"`
	Phone string  `db:"phone" json:"phone"` // normalized to 91XXXXXXXXXX
}

type Subscription struct {
	BaseModel
	Email    string `db:"email" json:"email"`
	IsActive bool   `db:"is_active" json:"is_active"`
}
