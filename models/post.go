package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Post struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name      string              `bson:"name" json:"name"`
	Prompt    string              `bson:"prompt" json:"prompt"`
	Photo     string              `bson:"photo" json:"photo"` // hosted URL, never raw image bytes
	UserRef   *primitive.ObjectID `bson:"userRef,omitempty" json:"-"`
	CreatedAt int64               `bson:"createdAt" json:"createdAt"`
	User      *User               `bson:"-" json:"userRef,omitempty"` // Populated in response only
}
