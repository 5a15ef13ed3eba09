package payload

import (
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrEndBeforeStart = errors.New("end_date must not be before start_date")

// ExperienceInput is the body of experience create and update requests.
// Leaving EndDate out marks the position as ongoing.
type ExperienceInput struct {
	Company     string     `json:"company"     validate:"required"`
	WorkType    string     `json:"work_type"   validate:"required"`
	Location    string     `json:"location"    validate:"required"`
	StartDate   time.Time  `json:"start_date"  validate:"required"`
	EndDate     *time.Time `json:"end_date"`
	Position    string     `json:"position"    validate:"required"`
	Description []string   `json:"description" validate:"dive,required"`
	Order       int32      `json:"order"`
}

// Validate checks the date range.
func (in ExperienceInput) Validate() error {
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// Fields returns every stored field; a missing end date is stored as null.
func (in ExperienceInput) Fields() bson.D {
	var endDate *time.Time
	if in.EndDate != nil {
		t := storedTime(*in.EndDate)
		endDate = &t
	}

	return bson.D{
		{Key: "company", Value: in.Company},
		{Key: "work_type", Value: in.WorkType},
		{Key: "location", Value: in.Location},
		{Key: "start_date", Value: storedTime(in.StartDate)},
		{Key: "end_date", Value: endDate},
		{Key: "position", Value: in.Position},
		{Key: "description", Value: in.Description},
		{Key: "order", Value: in.Order},
	}
}

// ProjectInput is the body of project create and update requests.
type ProjectInput struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description"`
	Link        string   `json:"link"        validate:"omitempty,url"`
	PhotoLink   *string  `json:"photo_link"  validate:"omitempty,url"`
	Order       int32    `json:"order"`
	Stack       []string `json:"stack"       validate:"dive,required"`
}

func (in ProjectInput) Fields() bson.D {
	return bson.D{
		{Key: "name", Value: in.Name},
		{Key: "description", Value: in.Description},
		{Key: "link", Value: in.Link},
		{Key: "photo_link", Value: in.PhotoLink},
		{Key: "order", Value: in.Order},
		{Key: "stack", Value: in.Stack},
	}
}

// SkillInput is the body of skill create and update requests.
type SkillInput struct {
	Name  string `json:"name"  validate:"required"`
	Order int32  `json:"order"`
}

func (in SkillInput) Fields() bson.D {
	return bson.D{
		{Key: "name", Value: in.Name},
		{Key: "order", Value: in.Order},
	}
}

// SocialInput is the body of social link create and update requests.
type SocialInput struct {
	Name  string `json:"name"  validate:"required"`
	Link  string `json:"link"  validate:"required,url"`
	Order int32  `json:"order"`
}

func (in SocialInput) Fields() bson.D {
	return bson.D{
		{Key: "name", Value: in.Name},
		{Key: "link", Value: in.Link},
		{Key: "order", Value: in.Order},
	}
}

// BatchItem is one element of a bulk update body: the resource fields plus its "_id".
type BatchItem[I any] struct {
	ID    string
	Input I
}

func (b *BatchItem[I]) UnmarshalJSON(data []byte) error {
	var key struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}

	var input I
	if err := json.Unmarshal(data, &input); err != nil {
		return err
	}

	b.ID = key.ID
	b.Input = input

	return nil
}

// storedTime matches the precision and zone MongoDB gives back.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
