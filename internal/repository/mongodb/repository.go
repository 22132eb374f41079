package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/mixlog/internal/domain/models"
)

const (
	recordsCollection   = "mix_records"
	snapshotsCollection = "summary_snapshots"
)

// MongoDBRepository stores mix records and summary snapshots in MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
	now    func() time.Time
}

// NewMongoDBRepository connects to MongoDB and prepares the collections.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := newRepository(client.Database(dbName), logger)

	if err := repo.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return repo, nil
}

func newRepository(db *mongo.Database, logger *zap.Logger) *MongoDBRepository {
	return &MongoDBRepository{
		client: db.Client(),
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.records().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create mix_records index: %w", err)
	}

	_, err = r.snapshots().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create summary_snapshots index: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) records() *mongo.Collection {
	return r.db.Collection(recordsCollection)
}

func (r *MongoDBRepository) snapshots() *mongo.Collection {
	return r.db.Collection(snapshotsCollection)
}

// List returns a page of the owner's records, newest first.
func (r *MongoDBRepository) List(ctx context.Context, owner string, q models.ListQuery) (models.RecordPage, error) {
	if q.Page < 1 || q.PageSize < 1 {
		return models.RecordPage{}, fmt.Errorf("page and page size must be positive")
	}

	filter := bson.M{"created_by": owner}
	if q.MixType != "" {
		filter["mix_type"] = q.MixType
	}

	total, err := r.records().CountDocuments(ctx, filter)
	if err != nil {
		return models.RecordPage{}, fmt.Errorf("count mix records: %w", err)
	}

	page := models.RecordPage{
		Records:    []models.MixRecord{},
		TotalCount: int(total),
		TotalPages: models.TotalPages(int(total), q.PageSize),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
	if q.Page > page.TotalPages {
		return page, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((q.Page - 1) * q.PageSize)).
		SetLimit(int64(q.PageSize))

	cursor, err := r.records().Find(ctx, filter, opts)
	if err != nil {
		return models.RecordPage{}, fmt.Errorf("find mix records: %w", err)
	}

	if err := cursor.All(ctx, &page.Records); err != nil {
		return models.RecordPage{}, fmt.Errorf("decode mix records: %w", err)
	}
	return page, nil
}

// Get fetches a single record owned by owner.
func (r *MongoDBRepository) Get(ctx context.Context, owner, id string) (models.MixRecord, error) {
	var rec models.MixRecord
	err := r.records().FindOne(ctx, bson.M{"_id": id, "created_by": owner}).Decode(&rec)
	if err != nil {
		return models.MixRecord{}, mapNotFound(id, err)
	}
	return rec, nil
}

// Create inserts a new record with a fresh id and timestamps.
func (r *MongoDBRepository) Create(ctx context.Context, owner string, in models.MixInput) (models.MixRecord, error) {
	now := r.now().UTC().Truncate(time.Millisecond)
	rec := models.MixRecord{
		ID:           uuid.NewString(),
		Timestamp:    now,
		MixType:      in.MixType,
		Measurements: in.Measurements,
		CreatedBy:    owner,
		LastModified: now,
	}

	if _, err := r.records().InsertOne(ctx, rec); err != nil {
		return models.MixRecord{}, fmt.Errorf("failed to insert mix record: %w", err)
	}

	r.logger.Debug("mix record inserted", zap.String("id", rec.ID))
	return rec, nil
}

// Update replaces the mix type and measurement block of a record.
func (r *MongoDBRepository) Update(ctx context.Context, owner, id string, in models.MixInput) (models.MixRecord, error) {
	update := bson.M{"$set": bson.M{
		"mix_type":      in.MixType,
		"measurements":  in.Measurements,
		"last_modified": r.now().UTC().Truncate(time.Millisecond),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec models.MixRecord
	err := r.records().FindOneAndUpdate(ctx, bson.M{"_id": id, "created_by": owner}, update, opts).Decode(&rec)
	if err != nil {
		return models.MixRecord{}, mapNotFound(id, err)
	}
	return rec, nil
}

// Delete removes a record owned by owner.
func (r *MongoDBRepository) Delete(ctx context.Context, owner, id string) error {
	res, err := r.records().DeleteOne(ctx, bson.M{"_id": id, "created_by": owner})
	if err != nil {
		return fmt.Errorf("failed to delete mix record %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("mix record %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// SaveSummarySnapshot upserts the daily summary of an owner.
func (r *MongoDBRepository) SaveSummarySnapshot(ctx context.Context, snapshot models.SummarySnapshot) error {
	filter := bson.M{"owner": snapshot.Owner, "date": snapshot.Date}
	opts := options.Replace().SetUpsert(true)

	if _, err := r.snapshots().ReplaceOne(ctx, filter, snapshot, opts); err != nil {
		return fmt.Errorf("failed to save summary snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func mapNotFound(id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("mix record %s: %w", id, models.ErrNotFound)
	}
	return fmt.Errorf("mix record %s: %w", id, err)
}
