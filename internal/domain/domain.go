package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

type Advertisement struct {
	ID            string          `json:"_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"` // HTML
	Price         decimal.Decimal `json:"price"`
	Location      string          `json:"location"`
	CategoryID    string          `json:"categoryId"`
	SubcategoryID string          `json:"subcategoryId,omitempty"`
	FeaturedImage string          `json:"featuredImage,omitempty"`
	Images        []string        `json:"images,omitempty"`
	VideoURL      string          `json:"videoUrl,omitempty"`
	Views         int64           `json:"views"`
	Status        string          `json:"status,omitempty"`
	IsBoosted     bool            `json:"isBoosted"`
	BoostedUntil  *time.Time      `json:"boostedUntil,omitempty"`
	UserID        string          `json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`

	// Populated only by some endpoints.
	User     *User     `json:"user,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// BoostActive reports whether the boost is still running at now.
func (a *Advertisement) BoostActive(now time.Time) bool {
	if !a.IsBoosted {
		return false
	}
	return a.BoostedUntil == nil || a.BoostedUntil.After(now)
}

// CoverImage returns the featured image, falling back to the first gallery
// image. Empty when the ad has no images at all.
func (a *Advertisement) CoverImage() string {
	if a.FeaturedImage != "" {
		return a.FeaturedImage
	}
	if len(a.Images) > 0 {
		return a.Images[0]
	}
	return ""
}

type Subcategory struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type Category struct {
	ID            string        `json:"_id"`
	Name          string        `json:"name"`
	Image         string        `json:"image,omitempty"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
	Features      []string      `json:"features,omitempty"`
}

type User struct {
	ID           string `json:"_id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	CoverImage   string `json:"coverImage,omitempty"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

type Favourite struct {
	ID              string         `json:"_id,omitempty"`
	UserID          string         `json:"userId"`
	AdvertisementID string         `json:"advertisementId"`
	Advertisement   *Advertisement `json:"advertisement,omitempty"`
}

// CompareEntry carries the ad fields the backend denormalizes into the
// comparison record.
type CompareEntry struct {
	ID              string          `json:"_id,omitempty"`
	UserID          string          `json:"userId"`
	AdvertisementID string          `json:"advertisementId"`
	Title           string          `json:"title,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Location        string          `json:"location,omitempty"`
	FeaturedImage   string          `json:"featuredImage,omitempty"`
	Description     string          `json:"description,omitempty"`
	CategoryName    string          `json:"categoryName,omitempty"`
	Views           int64           `json:"views"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
}

type BillingDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
}

type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	AdvertisementID string          `json:"advertisementId"`
	PackageID       string          `json:"packageId"`
	PackageName     string          `json:"packageName"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentStatus   string          `json:"paymentStatus"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	UserDetails     *BillingDetails `json:"userDetails,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type ContactMessage struct {
	ID        string     `json:"_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type SiteSettings struct {
	Logo string `json:"logo,omitempty"`
}

type BoostPackage struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Days  int             `json:"days"`
	Price decimal.Decimal `json:"price"`
}
