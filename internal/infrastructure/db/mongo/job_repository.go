package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

const jobsCollection = "job_posts"

// JobRepository persists job postings in Mongo.
type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(jobsCollection)}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.JobPost) (*domain.JobPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *job
	if created.ID == "" {
		created.ID = primitive.NewObjectID().Hex()
	}
	if created.Applicants == nil {
		created.Applicants = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert job post: %w", err)
	}
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.JobPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var job domain.JobPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job post: %w", err)
	}
	return &job, nil
}

func (r *JobRepository) Search(ctx context.Context, filter ports.JobFilter) ([]domain.JobPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if !filter.IncludeInactive {
		query["active"] = true
	}
	if filter.Keyword != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Keyword), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"skills_required": pattern},
		}
	}
	if filter.Location != "" {
		query["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Location), Options: "i"}
	}
	if filter.JobType != "" {
		query["job_type"] = string(filter.JobType)
	}
	if filter.ExperienceLevel != "" {
		query["experience_level"] = string(filter.ExperienceLevel)
	}
	if filter.CompanyID != "" {
		query["company_id"] = filter.CompanyID
	}
	if filter.PostedBy != "" {
		query["posted_by"] = filter.PostedBy
	}

	sortField := filter.SortBy
	if sortField == "" {
		sortField = "created_at"
	}
	order := -1
	if filter.Ascending {
		order = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: order}})

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search job posts: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []domain.JobPost
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("decode job posts: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.JobPost) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	job.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": job.ID}, job)
	if err != nil {
		return fmt.Errorf("update job post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// AddApplicant is a single conditional update so a double submit cannot
// record the same applicant twice.
func (r *JobRepository) AddApplicant(ctx context.Context, jobID, accountID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": jobID, "applicants": bson.M{"$ne": accountID}},
		bson.M{
			"$addToSet": bson.M{"applicants": accountID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("add applicant: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": jobID})
		if err != nil {
			return fmt.Errorf("job lookup: %w", err)
		}
		if n == 0 {
			return domain.ErrJobNotFound
		}
		return domain.ErrAlreadyApplied
	}
	return nil
}

func (r *JobRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("deactivate job post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// EnsureIndexes backs the search filters and the poster listing.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
