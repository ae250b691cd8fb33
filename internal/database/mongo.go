package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/isdelr/todo-sync-be/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// MongoStore is backed by the users and tasks collections of one database.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	tasks  *mongo.Collection
}

// NewMongoStore connects to uri and ensures the indexes the service relies
// on: a unique username on users and an (owner, _id) index on tasks.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client: client,
		users:  db.Collection(usersCollection),
		tasks:  db.Collection(tasksCollection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}
	_, err = s.tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: models.OwnerField, Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create tasks index: %w", err)
	}
	return nil
}

// FindUser retrieves a single user by username.
func (s *MongoStore) FindUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// InsertUser adds a user, failing with ErrDuplicate if the username is taken.
func (s *MongoStore) InsertUser(ctx context.Context, user models.User) error {
	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// UpdatePassword replaces the stored password.
func (s *MongoStore) UpdatePassword(ctx context.Context, username, password string) error {
	return s.setUserField(ctx, username, "password", password)
}

// UpdateAvatar replaces the stored avatar.
func (s *MongoStore) UpdateAvatar(ctx context.Context, username, avatar string) error {
	return s.setUserField(ctx, username, "avatar", avatar)
}

func (s *MongoStore) setUserField(ctx context.Context, username, field, value string) error {
	res, err := s.users.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the user document. Tasks are left to DeleteTasks.
func (s *MongoStore) DeleteUser(ctx context.Context, username string) error {
	_, err := s.users.DeleteOne(ctx, bson.M{"username": username})
	return err
}

// FindTasks returns the owner's task documents without _id and owner, in
// insertion order. Driver-generated ObjectIDs increase within a batch, so
// sorting on _id follows InsertTasks order and is served by the owner index.
func (s *MongoStore) FindTasks(ctx context.Context, username string) ([]models.Task, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 0, models.OwnerField: 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.tasks.Find(ctx, bson.M{models.OwnerField: username}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		tasks = append(tasks, models.Task(doc))
	}
	return tasks, cur.Err()
}

// InsertTasks inserts the tasks in order. Every task must already carry its
// owner. JSON numbers are stored as int64 when integral and as double
// otherwise.
func (s *MongoStore) InsertTasks(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(tasks))
	for _, task := range tasks {
		if owner, _ := task[models.OwnerField].(string); owner == "" {
			return fmt.Errorf("task without %s", models.OwnerField)
		}
		doc, err := bsonValue(map[string]interface{}(task))
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	_, err := s.tasks.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// DeleteTasks removes every task owned by username.
func (s *MongoStore) DeleteTasks(ctx context.Context, username string) (int64, error) {
	res, err := s.tasks.DeleteMany(ctx, bson.M{models.OwnerField: username})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteOrphanTasks removes tasks whose owner has no user document. Each
// owner is re-checked right before its tasks are deleted. A user registered
// and synced between that check and the delete can still lose the new set;
// there is no cross-collection transaction to close that gap.
func (s *MongoStore) DeleteOrphanTasks(ctx context.Context) (int64, error) {
	owners, err := s.tasks.Distinct(ctx, models.OwnerField, bson.D{})
	if err != nil {
		return 0, err
	}

	var deleted int64
	for _, owner := range owners {
		n, err := s.users.CountDocuments(ctx, bson.M{"username": owner}, options.Count().SetLimit(1))
		if err != nil {
			return deleted, err
		}
		if n > 0 {
			continue
		}
		res, err := s.tasks.DeleteMany(ctx, bson.M{models.OwnerField: owner})
		if err != nil {
			return deleted, err
		}
		deleted += res.DeletedCount
	}
	return deleted, nil
}

// Ping checks the server connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// bsonValue converts a decoded JSON value for insertion. json.Number becomes
// int64 or float64; maps and slices are converted recursively.
func bsonValue(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", v.String(), err)
		}
		return f, nil
	case map[string]interface{}:
		out := make(bson.M, len(v))
		for k, item := range v {
			converted, err := bsonValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	case models.Task:
		return bsonValue(map[string]interface{}(v))
	case []interface{}:
		out := make(bson.A, len(v))
		for i, item := range v {
			converted, err := bsonValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return v, nil
	}
}
