package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"promptgallery/models"
)

type PostFields struct {
	Name    string
	Prompt  string
	Photo   string
	UserRef *primitive.ObjectID
}

type PostRepo struct {
	posts *mongo.Collection
}

func NewPostRepo(db *mongo.Database) *PostRepo {
	return &PostRepo{posts: db.Collection("posts")}
}

func (r *PostRepo) Create(ctx context.Context, fields PostFields) (models.Post, error) {
	post := models.Post{
		ID:        primitive.NewObjectID(),
		Name:      fields.Name,
		Prompt:    fields.Prompt,
		Photo:     fields.Photo,
		UserRef:   fields.UserRef,
		CreatedAt: time.Now().Unix(),
	}

	if _, err := r.posts.InsertOne(ctx, post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// ownerPipeline expands the userRef of every matched post into an embedded
// owner snapshot, keeping posts without an owner.
func ownerPipeline(match bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "userRef"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	)
}

type postWithOwner struct {
	models.Post `bson:",inline"`
	Owner       *models.User `bson:"owner"`
}

func (r *PostRepo) findWithOwner(ctx context.Context, match bson.D) ([]models.Post, error) {
	cursor, err := r.posts.Aggregate(ctx, ownerPipeline(match))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []postWithOwner
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	posts := make([]models.Post, len(rows))
	for i, row := range rows {
		post := row.Post
		post.User = row.Owner
		posts[i] = post
	}
	return posts, nil
}

// FindAll returns every post in insertion order, owners resolved.
func (r *PostRepo) FindAll(ctx context.Context) ([]models.Post, error) {
	return r.findWithOwner(ctx, nil)
}

func (r *PostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	posts, err := r.findWithOwner(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return models.Post{}, err
	}
	if len(posts) == 0 {
		return models.Post{}, ErrNotFound
	}
	return posts[0], nil
}

// UpdateOwner replaces the post's userRef and returns the updated document.
// A nil ref clears the reference.
func (r *PostRepo) UpdateOwner(ctx context.Context, id primitive.ObjectID, userRef *primitive.ObjectID) (models.Post, error) {
	var post models.Post
	err := r.posts.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"userRef": userRef}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// Delete removes the post and returns it. User documents are untouched.
func (r *PostRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var post models.Post
	err := r.posts.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}
