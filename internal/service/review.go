package service

import (
	"context"
	"math"

	"github.com/BruksfildServices01/barberin/internal/httperr"
	"github.com/BruksfildServices01/barberin/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, r *models.Review) error
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	Update(ctx context.Context, id uint, fields map[string]any) (bool, error)
	ListByBarbershop(ctx context.Context, barbershopID uint) ([]models.Review, error)
}

type ReviewInput struct {
	BarbershopID uint
	Rating       int
	Comment      string
}

type ReviewPatch struct {
	Rating  *int
	Comment *string
}

type ReviewSummary struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating float64         `json:"average_rating"`
	Total         int             `json:"total"`
}

type ReviewService struct {
	repo  ReviewRepository
	shops ShopLookup
}

func NewReviewService(repo ReviewRepository, shops ShopLookup) *ReviewService {
	return &ReviewService{repo: repo, shops: shops}
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

// Create stores the user's review of a shop. A second review of the same
// shop by the same user is a conflict.
func (s *ReviewService) Create(ctx context.Context, userID uint, in ReviewInput) (*models.Review, error) {
	if !validRating(in.Rating) {
		return nil, httperr.Invalid("Rating must be between 1 and 5")
	}
	if err := requireShop(ctx, s.shops, in.BarbershopID); err != nil {
		return nil, err
	}

	r := &models.Review{
		UserID:       userID,
		BarbershopID: in.BarbershopID,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, userID, reviewID uint, patch ReviewPatch) (*models.Review, error) {
	if patch.Rating != nil && !validRating(*patch.Rating) {
		return nil, httperr.Invalid("Rating must be between 1 and 5")
	}

	r, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, httperr.NotFound("Review not found")
	}
	if err := ownedBy(r.UserID, userID, "Review"); err != nil {
		return nil, err
	}

	f := map[string]any{}
	setIf(f, "rating", patch.Rating)
	setIf(f, "comment", patch.Comment)
	if _, err := s.repo.Update(ctx, reviewID, f); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, reviewID)
}

func (s *ReviewService) ListByBarbershop(ctx context.Context, barbershopID uint) (*ReviewSummary, error) {
	if err := requireShop(ctx, s.shops, barbershopID); err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListByBarbershop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := 0.0
	if len(reviews) > 0 {
		avg = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	return &ReviewSummary{Reviews: reviews, AverageRating: avg, Total: len(reviews)}, nil
}
