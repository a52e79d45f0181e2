// Package mongostore implements the repositories on MongoDB, storing posts
// with their comments embedded in a "posts" collection and users in "users".
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"blogengine/app/models"
	"blogengine/app/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection = "users"
	PostsCollection = "posts"
)

// Store is a connected MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and verifies the connection before returning.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Users returns the user repository on the users collection.
func (s *Store) Users() *UserRepository {
	return &UserRepository{coll: s.db.Collection(UsersCollection)}
}

// Posts returns the post repository on the posts collection.
func (s *Store) Posts() *PostRepository {
	return &PostRepository{coll: s.db.Collection(PostsCollection)}
}

// Drop removes the whole database.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case errors.Is(err, mongo.ErrUnacknowledgedWrite):
		return fmt.Errorf("%w: %v", repositories.ErrUnacknowledged, err)
	}
	return err
}

// UserRepository implements repositories.UserRepository on MongoDB
type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return translate(err)
	}
	return nil
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"userName": userName}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// PostRepository implements repositories.PostRepository on MongoDB
type PostRepository struct {
	coll *mongo.Collection
}

func (r *PostRepository) findOne(ctx context.Context, filter bson.M) (*models.Post, error) {
	var post models.Post
	if err := r.coll.FindOne(ctx, filter).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]*models.Post, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	posts := []*models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) updateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, translate(err)
	}
	return res.ModifiedCount, nil
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return translate(err)
	}
	return nil
}

func (r *PostRepository) GetByPermalink(ctx context.Context, permalink string) (*models.Post, error) {
	return r.findOne(ctx, bson.M{"permalink": permalink})
}

func (r *PostRepository) GetByTitle(ctx context.Context, blogName, title string) (*models.Post, error) {
	return r.findOne(ctx, bson.M{"blogName": blogName, "title": title})
}

func (r *PostRepository) GetByCommentTimestamp(ctx context.Context, ts time.Time) (*models.Post, error) {
	return r.findOne(ctx, bson.M{"comments.timestamp": ts})
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *PostRepository) ListByBlog(ctx context.Context, blogName string) ([]*models.Post, error) {
	return r.find(ctx, bson.M{"blogName": blogName})
}

// Search treats term as a literal: it is escaped before being used as a
// case-insensitive pattern.
func (r *PostRepository) Search(ctx context.Context, blogName, term string) ([]*models.Post, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return r.find(ctx, bson.M{
		"blogName": blogName,
		"$or": bson.A{
			bson.M{"postBody": pattern},
			bson.M{"tags": term},
			bson.M{"comments.commentBody": pattern},
		},
	})
}

func (r *PostRepository) PushComment(ctx context.Context, permalink string, comment *models.Comment) (int64, error) {
	return r.updateOne(ctx,
		bson.M{"permalink": permalink},
		bson.M{"$push": bson.M{"comments": comment}},
	)
}

func (r *PostRepository) SetPostBody(ctx context.Context, permalink, body string, ts time.Time) (int64, error) {
	return r.updateOne(ctx,
		bson.M{"permalink": permalink},
		bson.M{"$set": bson.M{"postBody": body, "timestamp": ts}},
	)
}

func (r *PostRepository) SetCommentBody(ctx context.Context, postID, commentID, body string, ts time.Time) (int64, error) {
	return r.updateOne(ctx,
		bson.M{"_id": postID, "comments.commentId": commentID},
		bson.M{"$set": bson.M{
			"comments.$.commentBody": body,
			"comments.$.timestamp":   ts,
		}},
	)
}

var (
	_ repositories.UserRepository = (*UserRepository)(nil)
	_ repositories.PostRepository = (*PostRepository)(nil)
)
