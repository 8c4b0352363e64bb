package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

const accountsCollection = "accounts"

// AccountRepository is the Mongo-backed credential store.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

// mongoAccount is the persisted document shape. The domain type never
// carries bson tags so the wire format stays owned by this package.
type mongoAccount struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Email             string             `bson:"email"`
	Name              string             `bson:"name,omitempty"`
	Image             string             `bson:"image,omitempty"`
	PasswordHash      string             `bson:"password_hash,omitempty"`
	Role              string             `bson:"role"`
	Status            string             `bson:"status"`
	ReferralCode      string             `bson:"referral_code,omitempty"`
	ReferralExpiresAt time.Time          `bson:"referral_expires_at,omitempty"`
	ResumeURL         string             `bson:"resume_url,omitempty"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (r *AccountRepository) Create(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		Email:             acc.Email,
		Name:              acc.Name,
		Image:             acc.Image,
		PasswordHash:      acc.PasswordHash,
		Role:              string(acc.Role),
		Status:            string(acc.Status),
		ReferralCode:      acc.ReferralCode,
		ReferralExpiresAt: acc.ReferralExpiresAt,
		ResumeURL:         acc.ResumeURL,
		CreatedAt:         acc.CreatedAt,
		UpdatedAt:         acc.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *acc
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return doc.toAccount(), nil
}

func (r *AccountRepository) FindSummaryByID(ctx context.Context, id string) (*domain.AccountSummary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoAccount
	opts := options.FindOne().SetProjection(bson.M{"password_hash": 0, "referral_code": 0})
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return doc.toSummary(), nil
}

func (r *AccountRepository) ListSummariesByStatus(ctx context.Context, status domain.Status) ([]domain.AccountSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"password_hash": 0, "referral_code": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{"status": string(status)}, opts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var summaries []domain.AccountSummary
	for cur.Next(ctx) {
		var doc mongoAccount
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		summaries = append(summaries, *doc.toSummary())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return summaries, nil
}

// Approve binds a fresh referral grant in a single conditional update: the
// status filter makes a second concurrent approval a no-op reported as a
// conflict instead of silently rotating the issued code.
func (r *AccountRepository) Approve(ctx context.Context, id, code string, expiresAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": bson.M{"$ne": string(domain.StatusApproved)}},
		bson.M{"$set": bson.M{
			"status":              string(domain.StatusApproved),
			"referral_code":       code,
			"referral_expires_at": expiresAt,
			"updated_at":          time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("approve account: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.conflictOrMissing(ctx, oid, domain.ErrAlreadyApproved)
	}
	return nil
}

// Reject clears the referral grant, revoking outstanding access immediately.
func (r *AccountRepository) Reject(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": bson.M{"$ne": string(domain.StatusRejected)}},
		bson.M{
			"$set":   bson.M{"status": string(domain.StatusRejected), "updated_at": time.Now().UTC()},
			"$unset": bson.M{"referral_code": "", "referral_expires_at": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("reject account: %w", err)
	}
	if res.MatchedCount == 0 {
		return r.conflictOrMissing(ctx, oid, domain.ErrAlreadyRejected)
	}
	return nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id string, update ports.ProfileUpdate) (*domain.AccountSummary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if update.ResumeURL != nil {
		set["resume_url"] = *update.ResumeURL
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password_hash": 0, "referral_code": 0})

	var doc mongoAccount
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return doc.toSummary(), nil
}

// conflictOrMissing distinguishes an already-transitioned account from one
// that does not exist, after a conditional update matched nothing.
func (r *AccountRepository) conflictOrMissing(ctx context.Context, oid primitive.ObjectID, conflict error) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("account lookup: %w", err)
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return conflict
}

// EnsureIndexes creates the unique email index the registration flow
// relies on for duplicate detection.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (d *mongoAccount) toAccount() *domain.Account {
	return &domain.Account{
		ID:                d.ID.Hex(),
		Email:             d.Email,
		Name:              d.Name,
		Image:             d.Image,
		PasswordHash:      d.PasswordHash,
		Role:              domain.Role(d.Role),
		Status:            domain.Status(d.Status),
		ReferralCode:      d.ReferralCode,
		ReferralExpiresAt: d.ReferralExpiresAt,
		ResumeURL:         d.ResumeURL,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func (d *mongoAccount) toSummary() *domain.AccountSummary {
	return &domain.AccountSummary{
		ID:                d.ID.Hex(),
		Email:             d.Email,
		Name:              d.Name,
		Image:             d.Image,
		Role:              domain.Role(d.Role),
		Status:            domain.Status(d.Status),
		ReferralExpiresAt: d.ReferralExpiresAt,
		ResumeURL:         d.ResumeURL,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
