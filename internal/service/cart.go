package service

import (
	"context"

	"github.com/sajathahamed/Unilifmobile/internal/cart"
	"github.com/sajathahamed/Unilifmobile/internal/repository"
	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
)

// CartService resolves menu items and applies cart edits to the student's session.
type CartService struct {
	sessions *cart.Sessions
	catalog  repository.CatalogRepository
}

// NewCartService creates a new cart service.
func NewCartService(sessions *cart.Sessions, catalog repository.CatalogRepository) *CartService {
	return &CartService{sessions: sessions, catalog: catalog}
}

// AddItemInput is the body of an add-to-cart request.
type AddItemInput struct {
	FoodItemID int64 `json:"food_item_id" validate:"required,gt=0"`
}

// UpdateQuantityInput is the body of a quantity change. Zero or less removes the line.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

func (s *CartService) Get(studentID int64) cart.Snapshot {
	return s.sessions.Open(studentID).Snapshot()
}

// AddItem looks the item up and adds one of it. Unavailable items are rejected.
func (s *CartService) AddItem(ctx context.Context, studentID int64, in AddItemInput) (cart.Snapshot, error) {
	item, err := s.catalog.GetMenuItem(ctx, in.FoodItemID)
	if err != nil {
		return cart.Snapshot{}, err
	}
	if !item.IsAvailable {
		return cart.Snapshot{}, apperrors.InvalidInput(item.Name + " is not available right now.")
	}

	store := s.sessions.Open(studentID)
	store.AddItem(item.CartItem())
	return store.Snapshot(), nil
}

func (s *CartService) UpdateQuantity(studentID, itemID int64, in UpdateQuantityInput) cart.Snapshot {
	store := s.sessions.Open(studentID)
	store.UpdateQuantity(itemID, in.Quantity)
	return store.Snapshot()
}

func (s *CartService) RemoveItem(studentID, itemID int64) cart.Snapshot {
	store := s.sessions.Open(studentID)
	store.RemoveItem(itemID)
	return store.Snapshot()
}

func (s *CartService) Clear(studentID int64) cart.Snapshot {
	store := s.sessions.Open(studentID)
	store.Clear()
	return store.Snapshot()
}

// EndSession drops the cart at sign-out.
func (s *CartService) EndSession(studentID int64) {
	s.sessions.Close(studentID)
}
