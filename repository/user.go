package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"promptgallery/models"
)

// UserFields carries the writable user fields. Empty strings mean "leave the
// stored value alone" on update.
type UserFields struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// validate rejects a mismatched password pair before anything is written.
func (f UserFields) validate() error {
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// updateSet builds the partial $set document, hashing the password when one
// is supplied. Credentials are stored hashed, never in the clear.
func (f UserFields) updateSet() (bson.M, error) {
	set := bson.M{}
	if f.Name != "" {
		set["name"] = f.Name
	}
	if f.Email != "" {
		set["email"] = f.Email
	}
	if f.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		set["passwordHash"] = string(hash)
	}
	return set, nil
}

type UserRepo struct {
	users *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{users: db.Collection("users")}
}

func (r *UserRepo) Create(ctx context.Context, fields UserFields) (models.User, error) {
	if err := fields.validate(); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(fields.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         fields.Name,
		Email:        fields.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().Unix(),
	}

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// postsPipeline expands each matched user's owned posts.
func postsPipeline(match bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "posts"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "userRef"},
			{Key: "as", Value: "posts"},
		}}},
	)
}

type userWithPosts struct {
	models.User `bson:",inline"`
	Posts       []models.Post `bson:"posts"`
}

func (r *UserRepo) findWithPosts(ctx context.Context, match bson.D) ([]models.User, error) {
	cursor, err := r.users.Aggregate(ctx, postsPipeline(match))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []userWithPosts
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	users := make([]models.User, len(rows))
	for i, row := range rows {
		user := row.User
		user.Posts = row.Posts
		users[i] = user
	}
	return users, nil
}

func (r *UserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return r.findWithPosts(ctx, nil)
}

func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	users, err := r.findWithPosts(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, ErrNotFound
	}
	return users[0], nil
}

// Update applies the provided fields, keeping stored values for omitted
// ones. The password pair is validated before any write happens.
func (r *UserRepo) Update(ctx context.Context, id primitive.ObjectID, fields UserFields) (models.User, error) {
	if err := fields.validate(); err != nil {
		return models.User{}, err
	}

	set, err := fields.updateSet()
	if err != nil {
		return models.User{}, err
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var user models.User
	err = r.users.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Delete removes the user and returns it. The user's posts keep their
// dangling userRef; there is no cascade.
func (r *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := r.users.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
