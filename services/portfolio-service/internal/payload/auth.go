package payload

import "go.mongodb.org/mongo-driver/v2/bson"

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	JWT string `json:"jwt"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RegisterRequest struct {
	Name           string  `json:"name"            validate:"required"`
	Email          string  `json:"email"           validate:"required,email"`
	Password       string  `json:"password"        validate:"required,min=8,max=72"`
	Phone          *string `json:"phone"`
	WaLink         *string `json:"wa_link"         validate:"omitempty,url"`
	Intro          *string `json:"intro"`
	About          *string `json:"about"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}

type RegisterResponse struct {
	ID  bson.ObjectID `json:"_id"`
	JWT string        `json:"jwt"`
}

// CustomerUpdateRequest replaces every profile field of the authenticated customer.
type CustomerUpdateRequest struct {
	Name           string  `json:"name"            validate:"required"`
	Email          string  `json:"email"           validate:"required,email"`
	Phone          *string `json:"phone"`
	WaLink         *string `json:"wa_link"         validate:"omitempty,url"`
	Intro          *string `json:"intro"`
	About          *string `json:"about"`
	ProfilePicture *string `json:"profile_picture" validate:"omitempty,url"`
}
