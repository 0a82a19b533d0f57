package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"apparel-shopfront/internal/client"
	"apparel-shopfront/internal/model"
)

type CartService interface {
	Get(ctx context.Context, sess *model.Session) (*model.Cart, error)
	AddItem(ctx context.Context, sess *model.Session, productID int64, size string, quantity int) error
	UpdateQuantity(ctx context.Context, sess *model.Session, itemID int64, quantity int) error
	ChangeSize(ctx context.Context, sess *model.Session, itemID int64, size string) error
	RemoveItem(ctx context.Context, sess *model.Session, itemID int64) error
	Clear(ctx context.Context, sess *model.Session) (*ClearResult, error)
	Sizes(ctx context.Context, sess *model.Session, productID int64) ([]model.SizeOption, error)
}

// ClearResult is the structured outcome of a cart clear. The fan-out is
// not atomic: a partial failure leaves exactly the Failed items in the
// cart, with no rollback and no automatic retry.
type ClearResult struct {
	Removed []int64       `json:"removed"`
	Failed  []ItemFailure `json:"failed"`
}

type ItemFailure struct {
	ItemID  int64  `json:"itemId"`
	Message string `json:"message"`
}

func (r *ClearResult) AllRemoved() bool { return len(r.Failed) == 0 }

type cartServiceImpl struct {
	backend client.CartAPI
}

func NewCartService(backend client.CartAPI) CartService {
	return &cartServiceImpl{
		backend: backend,
	}
}

func (s *cartServiceImpl) Get(ctx context.Context, sess *model.Session) (*model.Cart, error) {
	return s.backend.GetCart(ctx, sess.Token)
}

func (s *cartServiceImpl) AddItem(ctx context.Context, sess *model.Session, productID int64, size string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	return s.backend.AddCartItem(ctx, sess.Token, productID, size, quantity)
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, sess *model.Session, itemID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	return s.backend.UpdateCartItemQuantity(ctx, sess.Token, itemID, quantity)
}

func (s *cartServiceImpl) ChangeSize(ctx context.Context, sess *model.Session, itemID int64, size string) error {
	return s.backend.ChangeCartItemSize(ctx, sess.Token, itemID, size)
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, sess *model.Session, itemID int64) error {
	return s.backend.RemoveCartItem(ctx, sess.Token, itemID)
}

// Clear lists the current items and issues one removal per item, in
// parallel. Exactly len(items) removal requests go out regardless of
// individual outcomes.
func (s *cartServiceImpl) Clear(ctx context.Context, sess *model.Session) (*ClearResult, error) {
	cart, err := s.backend.GetCart(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("list cart before clear: %w", err)
	}

	result := &ClearResult{}
	if len(cart.Items) == 0 {
		return result, nil
	}

	var (
		mu          sync.Mutex
		wg          sync.WaitGroup
		authExpired bool
	)

	for _, item := range cart.Items {
		wg.Add(1)
		go func(it model.CartItem) {
			defer wg.Done()

			err := s.backend.RemoveCartItem(ctx, sess.Token, it.ID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, client.ErrAuthExpired) {
					authExpired = true
				}
				result.Failed = append(result.Failed, ItemFailure{
					ItemID:  it.ID,
					Message: client.UserMessage(err),
				})
				return
			}
			result.Removed = append(result.Removed, it.ID)
		}(item)
	}
	wg.Wait()

	if authExpired {
		return result, client.ErrAuthExpired
	}

	sort.Slice(result.Removed, func(i, j int) bool { return result.Removed[i] < result.Removed[j] })
	sort.Slice(result.Failed, func(i, j int) bool { return result.Failed[i].ItemID < result.Failed[j].ItemID })

	return result, nil
}

// Sizes returns only the options that had stock when asked. The read can
// go stale before the user submits; the backend rejects in that case.
func (s *cartServiceImpl) Sizes(ctx context.Context, sess *model.Session, productID int64) ([]model.SizeOption, error) {
	all, err := s.backend.ProductSizes(ctx, sess.Token, productID)
	if err != nil {
		return nil, err
	}

	inStock := make([]model.SizeOption, 0, len(all))
	for _, opt := range all {
		if opt.InStock() {
			inStock = append(inStock, opt)
		}
	}
	return inStock, nil
}
