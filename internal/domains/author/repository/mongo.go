package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/infrastructure/database"
)

type mongoRepository struct {
	db *database.MongoDB
}

func NewMongoRepository(db *database.MongoDB) author.Repository {
	return &mongoRepository{db: db}
}

func (r *mongoRepository) collection() (*mongo.Collection, error) {
	return r.db.Collection(database.AuthorsCollection)
}

func (r *mongoRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	created := *a
	created.ID = primitive.NewObjectID()

	if _, err := coll.InsertOne(ctx, &created); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, fmt.Errorf("insert author: %w", author.ErrUsernameTaken)
		}
		return nil, fmt.Errorf("insert author: %w", err)
	}
	return &created, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	var a author.Author
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if database.IsNotFound(err) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author %s: %w", id.Hex(), err)
	}
	return &a, nil
}

func (r *mongoRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*author.Author, error) {
	result := make(map[primitive.ObjectID]*author.Author, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find authors: %w", err)
	}

	var authors []author.Author
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	for i := range authors {
		result[authors[i].ID] = &authors[i]
	}
	return result, nil
}

func (r *mongoRepository) FindByUserName(ctx context.Context, userName string, excludeID primitive.ObjectID) (*author.Author, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	filter := bson.M{"userName": userName}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	var a author.Author
	if err := coll.FindOne(ctx, filter).Decode(&a); err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find author by userName: %w", err)
	}
	return &a, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]author.Author, error) {
	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	authors := []author.Author{}
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	return authors, nil
}

func (r *mongoRepository) Update(ctx context.Context, id primitive.ObjectID, patch author.Patch) (*author.Author, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	coll, err := r.collection()
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.UserName != nil {
		set["userName"] = *patch.UserName
	}

	var updated author.Author
	err = coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	switch {
	case err == nil:
		return &updated, nil
	case database.IsNotFound(err):
		return nil, author.ErrAuthorNotFound
	case database.IsDuplicateKey(err):
		return nil, fmt.Errorf("update author: %w", author.ErrUsernameTaken)
	default:
		return nil, fmt.Errorf("update author %s: %w", id.Hex(), err)
	}
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coll, err := r.collection()
	if err != nil {
		return err
	}

	if _, err := coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete author %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection()
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return n, nil
}
