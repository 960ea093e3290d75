package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventpage/guestbook/internal/guestbook"
)

// MongoRepo keeps the whole Document as one Mongo document keyed by docID.
// Save is an upsert that replaces the stored entries.
type MongoRepo struct {
	col   *mongo.Collection
	docID string
}

type mongoDocument struct {
	ID        string            `bson:"_id"`
	Entries   []guestbook.Entry `bson:"entries"`
	UpdatedAt time.Time         `bson:"updatedAt"`
}

func NewMongoRepo(col *mongo.Collection, docID string) *MongoRepo {
	if docID == "" {
		docID = "guestbook"
	}
	return &MongoRepo{col: col, docID: docID}
}

func (m *MongoRepo) Name() string { return "mongo" }

func (m *MongoRepo) Key() string {
	return fmt.Sprintf("mongo:%s.%s/%s", m.col.Database().Name(), m.col.Name(), m.docID)
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.col.Database().Client().Ping(ctx, nil)
}

func (m *MongoRepo) Load(ctx context.Context) guestbook.Document {
	var d mongoDocument
	err := m.col.FindOne(ctx, bson.M{"_id": m.docID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return guestbook.Empty()
		}
		return degrade(m.Name(), err)
	}
	return guestbook.Normalize(guestbook.Document{Entries: d.Entries})
}

func (m *MongoRepo) Save(ctx context.Context, doc guestbook.Document) error {
	rec := mongoDocument{ID: m.docID, Entries: doc.Entries, UpdatedAt: time.Now().UTC()}
	if rec.Entries == nil {
		rec.Entries = []guestbook.Entry{}
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": m.docID}, rec, opts); err != nil {
		return fmt.Errorf("%w: mongo replace %s: %v", ErrPersistence, m.docID, err)
	}
	return nil
}
