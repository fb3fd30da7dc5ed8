// Package storage persists movie records in MongoDB.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName   = "MoviesDB"
	collectionName = "Movies"

	connectAttempts = 5
	connectDelay    = 5 * time.Second
)

// Document is one stored movie file, referenced by Telegram file_id.
type Document struct {
	FileID   string `bson:"file_id" json:"file_id"`
	FileName string `bson:"file_name" json:"file_name"`
}

// Image is the poster shown in previews.
type Image struct {
	FileID string `bson:"file_id" json:"file_id"`
	Width  int    `bson:"width,omitempty" json:"width,omitempty"`
	Height int    `bson:"height,omitempty" json:"height,omitempty"`
}

// Media bundles a movie's files and poster.
type Media struct {
	Documents []Document `bson:"documents" json:"documents"`
	Image     Image      `bson:"image" json:"image"`
}

// Movie is one archived movie. MovieID is the stable public identifier
// used in deep links; the Mongo _id never leaves the storage layer
// except as the deletion handle.
type Movie struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	MovieID string             `bson:"movie_id" json:"movie_id"`
	Name    string             `bson:"name" json:"name"`
	Media   Media              `bson:"media" json:"media"`
}

type Mongo struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongo connects to MongoDB with a bounded retry and verifies the
// connection with a ping before returning.
func NewMongo(ctx context.Context, uri string, log *logrus.Logger) (*Mongo, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is empty")
	}
	var client *mongo.Client
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(ctx, nil)
			if err == nil {
				break
			}
			_ = client.Disconnect(ctx)
		}
		log.WithError(err).Warnf("mongo connect attempt %d/%d failed", attempt, connectAttempts)
		if attempt == connectAttempts {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		select {
		case <-time.After(connectDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	col := client.Database(databaseName).Collection(collectionName)
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{bson.E{Key: "movie_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{bson.E{Key: "name", Value: 1}},
	})
	log.Info("connected to mongodb")
	return &Mongo{client: client, col: col}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}

// Insert stores a new movie record.
func (m *Mongo) Insert(ctx context.Context, movie *Movie) error {
	if m == nil {
		return errors.New("mongo not configured")
	}
	_, err := m.col.InsertOne(ctx, movie)
	return err
}

// FindByMovieID returns the movie with the given public id, or
// (nil, nil) when none exists.
func (m *Mongo) FindByMovieID(ctx context.Context, movieID string) (*Movie, error) {
	if m == nil {
		return nil, errors.New("mongo not configured")
	}
	var movie Movie
	err := m.col.FindOne(ctx, bson.M{"movie_id": movieID}).Decode(&movie)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &movie, err
}

// SearchByName matches names case-insensitively as a substring. The
// query is quoted so user input is never interpreted as a pattern.
func (m *Mongo) SearchByName(ctx context.Context, query string, limit int) ([]Movie, error) {
	if m == nil {
		return nil, errors.New("mongo not configured")
	}
	if limit <= 0 {
		limit = 10
	}
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
	opts := options.Find().SetLimit(int64(limit))
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	movies := make([]Movie, 0, limit)
	if err := cur.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// ListByName returns one page of movies sorted by name ascending, plus
// the total count across all pages.
func (m *Mongo) ListByName(ctx context.Context, skip, limit int) ([]Movie, int64, error) {
	if m == nil {
		return nil, 0, errors.New("mongo not configured")
	}
	total, err := m.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "name", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	movies := make([]Movie, 0, limit)
	if err := cur.All(ctx, &movies); err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// DeleteByID removes a movie by its Mongo object id hex string.
func (m *Mongo) DeleteByID(ctx context.Context, idHex string) error {
	if m == nil {
		return errors.New("mongo not configured")
	}
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return fmt.Errorf("bad object id %q: %w", idHex, err)
	}
	_, err = m.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// Count returns the number of stored movies.
func (m *Mongo) Count(ctx context.Context) (int64, error) {
	if m == nil {
		return 0, errors.New("mongo not configured")
	}
	return m.col.CountDocuments(ctx, bson.M{})
}
