package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Experience is a position held by a customer. A nil EndDate means the position is ongoing.
type Experience struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerID  bson.ObjectID `bson:"customer_id"   json:"customer_id"`
	Company     string        `bson:"company"       json:"company"`
	WorkType    string        `bson:"work_type"     json:"work_type"`
	Location    string        `bson:"location"      json:"location"`
	StartDate   time.Time     `bson:"start_date"    json:"start_date"`
	EndDate     *time.Time    `bson:"end_date"      json:"end_date"`
	Position    string        `bson:"position"      json:"position"`
	Description []string      `bson:"description"   json:"description"`
	Order       int32         `bson:"order"         json:"order"`
	CreatedAt   time.Time     `bson:"created_at"    json:"created_at"`
}

// Project is a piece of work shown in a portfolio.
type Project struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerID  bson.ObjectID `bson:"customer_id"   json:"customer_id"`
	Name        string        `bson:"name"          json:"name"`
	Description string        `bson:"description"   json:"description"`
	Link        string        `bson:"link"          json:"link"`
	PhotoLink   *string       `bson:"photo_link"    json:"photo_link"`
	Order       int32         `bson:"order"         json:"order"`
	Stack       []string      `bson:"stack"         json:"stack"`
	CreatedAt   time.Time     `bson:"created_at"    json:"created_at"`
}

// Skill is a named skill.
type Skill struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerID bson.ObjectID `bson:"customer_id"   json:"customer_id"`
	Name       string        `bson:"name"          json:"name"`
	Order      int32         `bson:"order"         json:"order"`
	CreatedAt  time.Time     `bson:"created_at"    json:"created_at"`
}

// Social is a link to a social network profile.
type Social struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CustomerID bson.ObjectID `bson:"customer_id"   json:"customer_id"`
	Name       string        `bson:"name"          json:"name"`
	Link       string        `bson:"link"          json:"link"`
	Order      int32         `bson:"order"         json:"order"`
	CreatedAt  time.Time     `bson:"created_at"    json:"created_at"`
}
