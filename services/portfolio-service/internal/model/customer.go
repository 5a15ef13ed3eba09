package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Customer is a portfolio owner. Every experience, project, skill and social link belongs to one.
type Customer struct {
	ID             bson.ObjectID `bson:"_id,omitempty"   json:"_id"`
	APIKey         string        `bson:"api_key,omitempty" json:"api_key"`
	Name           string        `bson:"name"            json:"name"`
	Email          string        `bson:"email"           json:"email"`
	Phone          *string       `bson:"phone"           json:"phone"`
	WaLink         *string       `bson:"wa_link"         json:"wa_link"`
	Intro          *string       `bson:"intro"           json:"intro"`
	About          *string       `bson:"about"           json:"about"`
	ProfilePicture *string       `bson:"profile_picture" json:"profile_picture"`
	PasswordHash   string        `bson:"password"        json:"-"`
	CreatedAt      time.Time     `bson:"createdAt"       json:"createdAt"`
}

// PublicCustomer is the view of a customer shown to anyone other than the customer itself.
type PublicCustomer struct {
	ID             bson.ObjectID `json:"_id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          *string       `json:"phone"`
	WaLink         *string       `json:"wa_link"`
	Intro          *string       `json:"intro"`
	About          *string       `json:"about"`
	ProfilePicture *string       `json:"profile_picture"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Public strips the credentials from c.
func (c *Customer) Public() *PublicCustomer {
	return &PublicCustomer{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		WaLink:         c.WaLink,
		Intro:          c.Intro,
		About:          c.About,
		ProfilePicture: c.ProfilePicture,
		CreatedAt:      c.CreatedAt,
	}
}
