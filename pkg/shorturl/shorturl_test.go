package shorturl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/journey"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testRequest() DiagramRequest {
	return DiagramRequest{
		Stops: []*hafas.Location{
			{Type: hafas.LocationTypeStation, ID: "8000001", Name: "Aachen Hbf"},
			{Type: hafas.LocationTypeStation, ID: "8000207", Name: "Köln Hbf"},
		},
		Time:     time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC),
		TimeRole: journey.RoleDeparture,
		Options:  hafas.DefaultJourneysOptions(),
	}
}

func TestKey(t *testing.T) {
	key, err := Key(testRequest())
	require.NoError(t, err)
	assert.Len(t, key, KeyLength)
	assert.Regexp(t, "^[0-9a-f]{8}$", key)

	again, err := Key(testRequest())
	require.NoError(t, err)
	assert.Equal(t, key, again)

	other := testRequest()
	other.Time = other.Time.Add(time.Minute)
	otherKey, err := Key(other)
	require.NoError(t, err)
	assert.NotEqual(t, key, otherKey)
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("put", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))

		key, err := NewMongoStore(mt.Coll).Put(context.Background(), testRequest())
		require.NoError(mt, err)

		expected, _ := Key(testRequest())
		assert.Equal(mt, expected, key)
	})

	mt.Run("get", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "zug.short_urls", mtest.FirstBatch, bson.D{
			{Key: "key", Value: "0a1b2c3d"},
			{Key: "data", Value: bson.D{
				{Key: "stops", Value: bson.A{bson.D{{Key: "type", Value: "station"}, {Key: "id", Value: "8000001"}}}},
				{Key: "timerole", Value: "departure"},
			}},
		}))

		request, err := NewMongoStore(mt.Coll).Get(context.Background(), "0a1b2c3d")
		require.NoError(mt, err)
		require.Len(mt, request.Stops, 1)
		assert.Equal(mt, "8000001", request.Stops[0].ID)
		assert.Equal(mt, journey.RoleDeparture, request.TimeRole)
	})

	mt.Run("get unknown key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "zug.short_urls", mtest.FirstBatch))

		_, err := NewMongoStore(mt.Coll).Get(context.Background(), "ffffffff")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
