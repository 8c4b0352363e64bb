package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

const companiesCollection = "companies"

// CompanyRepository persists employers in Mongo.
type CompanyRepository struct {
	coll *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{coll: db.Collection(companiesCollection)}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *company
	if created.ID == "" {
		created.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.coll.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return &created, nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var company domain.Company
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&company); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &company, nil
}

func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var company domain.Company
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&company); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company by name: %w", err)
	}
	return &company, nil
}
