package shorturl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/journey"
	"github.com/zugtrip/zug/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const KeyLength = 8

var ErrNotFound = errors.New("short url not found")

// DiagramRequest is everything needed to rebuild a journey tree
type DiagramRequest struct {
	Stops    []*hafas.Location     `json:"stops" bson:"stops"`
	Time     time.Time             `json:"time" bson:"time"`
	TimeRole journey.Role          `json:"timeRole" bson:"timerole"`
	Options  hafas.JourneysOptions `json:"options" bson:"options"`
}

type Entry struct {
	Key              string         `bson:"key"`
	Data             DiagramRequest `bson:"data"`
	CreationDateTime time.Time      `bson:"creationdatetime"`
}

type Store interface {
	Put(ctx context.Context, request DiagramRequest) (string, error)
	Get(ctx context.Context, key string) (*DiagramRequest, error)
}

// Key derives the short key of a request from the hash of its JSON form, so storing the
// same request twice yields the same key
func Key(request DiagramRequest) (string, error) {
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(requestJSON)

	return util.TrimString(hex.EncodeToString(hash[:]), KeyLength), nil
}

type MongoStore struct {
	Collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{Collection: collection}
}

func (s *MongoStore) Put(ctx context.Context, request DiagramRequest) (string, error) {
	key, err := Key(request)
	if err != nil {
		return "", err
	}

	entry := Entry{
		Key:              key,
		Data:             request,
		CreationDateTime: time.Now(),
	}

	_, err = s.Collection.UpdateOne(
		ctx,
		bson.M{"key": key},
		bson.M{"$setOnInsert": entry},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", err
	}

	log.Debug().Str("key", key).Msg("Stored short url")

	return key, nil
}

func (s *MongoStore) Get(ctx context.Context, key string) (*DiagramRequest, error) {
	var entry Entry

	err := s.Collection.FindOne(ctx, bson.M{"key": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &entry.Data, nil
}
