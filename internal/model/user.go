package model

import "time"

// User mirrors an identity from the external provider. Rows are upserted by id and never deleted here.
type User struct {
	ID              string    `gorm:"primaryKey;size:128"`
	Email           *string   `gorm:"size:255;uniqueIndex:uk_users_email"`
	FirstName       *string   `gorm:"column:first_name;size:120"`
	LastName        *string   `gorm:"column:last_name;size:120"`
	ProfileImageURL *string   `gorm:"column:profile_image_url;size:512"`
	Bio             *string   `gorm:"type:text"`
	Location        *string   `gorm:"size:200"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u User) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil && *u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" && u.Email != nil {
		name = *u.Email
	}
	return name
}
