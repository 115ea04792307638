package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-backend/internal/domains/post/model"
	"blog-backend/internal/infrastructure/database"
)

type mongoRepository struct {
	db *database.MongoDB
}

func NewMongoRepository(db *database.MongoDB) RepositoryInterface {
	return &mongoRepository{db: db}
}

func (r *mongoRepository) collection() (*mongo.Collection, error) {
	return r.db.Collection(database.BlogPostsCollection)
}

func (r *mongoRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	created := *post
	created.ID = primitive.NewObjectID()
	if created.Comments == nil {
		created.Comments = []model.Comment{}
	}

	if _, err := coll.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert blog post: %w", err)
	}
	return &created, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var post model.Post
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if database.IsNotFound(err) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("find blog post %s: %w", id.Hex(), err)
	}
	return &post, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]model.Post, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}

	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode blog posts: %w", err)
	}
	return posts, nil
}

func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, patch model.Patch) (*model.Post, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.AuthorID != nil {
		set["author"] = *patch.AuthorID
	}

	var updated model.Post
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("update blog post %s: %w", id.Hex(), err)
	}
	return &updated, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}

	if _, err := coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete blog post %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *mongoRepository) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteMany(ctx, bson.M{"author": authorID})
	if err != nil {
		return 0, fmt.Errorf("delete blog posts of author %s: %w", authorID.Hex(), err)
	}
	return res.DeletedCount, nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count blog posts: %w", err)
	}
	return n, nil
}
