package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthlog/health-backend/internal/core/domain"
	"github.com/healthlog/health-backend/internal/core/ports"
	"github.com/healthlog/health-backend/internal/infrastructure/persistence"
)

const (
	collectionSnapshots = "snapshots"
	snapshotID          = "snapshot"
)

// SnapshotRepository upserts the whole snapshot as one document. The
// payload is the JSON encoding shared with the other backends, so category
// order is preserved exactly.
type SnapshotRepository struct {
	client *mongo.Client
	col    *mongo.Collection
}

var (
	_ ports.SnapshotRepository = (*SnapshotRepository)(nil)
	_ ports.Pinger             = (*SnapshotRepository)(nil)
)

type snapshotDocument struct {
	ID        string `bson:"_id"`
	Payload   string `bson:"payload"`
	UpdatedAt int64  `bson:"updated_at"`
}

func NewSnapshotRepository(client *mongo.Client, db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{client: client, col: db.Collection(collectionSnapshots)}
}

func (r *SnapshotRepository) Backend() string { return "mongo" }

func (r *SnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc snapshotDocument
	err := r.col.FindOne(ctx, bson.M{"_id": snapshotID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.Snapshot{}, nil
		}
		return nil, fmt.Errorf("find snapshot: %w", err)
	}
	return persistence.Decode([]byte(doc.Payload))
}

func (r *SnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := persistence.Encode(snap)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := snapshotDocument{ID: snapshotID, Payload: string(data), UpdatedAt: time.Now().Unix()}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": snapshotID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *SnapshotRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
