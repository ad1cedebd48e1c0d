package store

import (
	"context"
	"errors"

	"freshsip_back_end/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors translated into HTTP statuses at the handler boundary.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateOrderID = errors.New("order id already exists")
	ErrDuplicateEmail   = errors.New("email already in use")
)

// Sort keys accepted by ProductStore.Find. Anything else behaves like
// SortFeatured.
const (
	SortFeatured     = "featured"
	SortBestSelling  = "best_selling"
	SortAlphabetical = "alphabetical"
	SortPriceAsc     = "price_asc"
	SortPriceDesc    = "price_desc"
	SortNewest       = "newest"
)

// ProductQuery carries the catalog filter/sort/page parameters. Category ""
// or "all" means no category restriction.
type ProductQuery struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Page     int64
	Limit    int64
}

// ProductStore is the catalog read surface.
type ProductStore interface {
	// Find returns the requested page plus the total match count.
	Find(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// OrderStore persists orders. Each call is a single atomic document
// read/write; concurrent status updates are last-write-wins.
type OrderStore interface {
	// Insert writes the order and fills in its generated _id. Returns
	// ErrDuplicateOrderID when the human-readable orderId collides.
	Insert(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
	FindByEmail(ctx context.Context, email string) ([]models.Order, error)
	// UpdateStatus sets the status and bumps updatedAt, returning the
	// updated document. Returns ErrNotFound for unknown or malformed ids.
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
}

// UserStore persists credential subjects.
type UserStore interface {
	// Insert returns ErrDuplicateEmail when the email is already taken.
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Stores groups the app's persistence dependencies for injection into the
// handlers.
type Stores struct {
	Products ProductStore
	Orders   OrderStore
	Users    UserStore
}

// NewMongoStores wires the Mongo-backed implementations on top of the shared
// database handle.
func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		Products: NewMongoProductStore(db.Collection("products")),
		Orders:   NewMongoOrderStore(db.Collection("orders")),
		Users:    NewMongoUserStore(db.Collection("users")),
	}
}
