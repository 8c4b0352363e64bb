package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

const referralsCollection = "referral_codes"

// ReferralRepository is the append-only audit log of issued referral codes.
type ReferralRepository struct {
	coll *mongo.Collection
}

func NewReferralRepository(db *mongo.Database) *ReferralRepository {
	return &ReferralRepository{coll: db.Collection(referralsCollection)}
}

func (r *ReferralRepository) Create(ctx context.Context, rec *domain.ReferralCode) (*domain.ReferralCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *rec
	if created.ID == "" {
		created.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.coll.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert referral code: %w", err)
	}
	return &created, nil
}

func (r *ReferralRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.ReferralCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"account": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list referral codes: %w", err)
	}
	defer cur.Close(ctx)

	var records []domain.ReferralCode
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode referral codes: %w", err)
	}
	return records, nil
}
