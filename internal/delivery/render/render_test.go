package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-client/internal/domain"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestAdvertisementCardFallbacks(t *testing.T) {
	ad := &domain.Advertisement{
		ID:          "a1",
		Title:       "Road bike",
		Price:       decimal.RequireFromString("120.5"),
		Description: "<p>Lightly used.</p><p>Pick up <b>only</b> &amp; cash.</p>",
	}

	var buf bytes.Buffer
	require.NoError(t, AdvertisementCard(&buf, ad, now))
	out := buf.String()

	assert.Contains(t, out, "Road bike")
	assert.Contains(t, out, "120.50")
	assert.Contains(t, out, NoImage)
	assert.Contains(t, out, Anonymous)
	assert.Contains(t, out, Uncategorized)
	assert.Contains(t, out, "Lightly used.\nPick up only & cash.")
	assert.NotContains(t, out, "<p>")
	assert.NotContains(t, out, "BOOSTED")
}

func TestAdvertisementCardWithNestedFields(t *testing.T) {
	until := now.Add(72 * time.Hour)
	ad := &domain.Advertisement{
		ID:           "a1",
		Title:        "Sofa",
		Images:       []string{"one.jpg", "two.jpg"},
		IsBoosted:    true,
		BoostedUntil: &until,
		User:         &domain.User{FirstName: "Ann", LastName: "Lee"},
		Category:     &domain.Category{Name: "Furniture"},
	}

	var buf bytes.Buffer
	require.NoError(t, AdvertisementCard(&buf, ad, now))
	out := buf.String()

	assert.Contains(t, out, "[BOOSTED]")
	assert.Contains(t, out, "2024-06-04")
	assert.Contains(t, out, "one.jpg")
	assert.Contains(t, out, "2 images")
	assert.Contains(t, out, "Ann Lee")
	assert.Contains(t, out, "Furniture")
	assert.NotContains(t, out, NoImage)
	assert.NotContains(t, out, Anonymous)
}

func TestExpiredBoostIsNotShown(t *testing.T) {
	until := now.Add(-time.Hour)
	ads := []domain.Advertisement{{ID: "a1", Title: "Old", IsBoosted: true, BoostedUntil: &until}}

	var buf bytes.Buffer
	require.NoError(t, AdvertisementList(&buf, ads, now))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[1], "yes")
	assert.Contains(t, lines[1], Uncategorized)
}

func TestOrderCard(t *testing.T) {
	order := &domain.Order{ID: "o1", PackageName: "Basic boost", Amount: decimal.NewFromInt(5), PaymentStatus: domain.PaymentStatusPending}

	var buf bytes.Buffer
	require.NoError(t, OrderCard(&buf, order))
	assert.Contains(t, buf.String(), "5.00")
	assert.Contains(t, buf.String(), Anonymous)

	order.UserDetails = &domain.BillingDetails{FullName: "Ann Lee", Email: "ann@example.com", City: "Riga", Country: "LV"}
	buf.Reset()
	require.NoError(t, OrderCard(&buf, order))
	assert.Contains(t, buf.String(), "Ann Lee")
	assert.Contains(t, buf.String(), "Riga, LV")
}

func TestUserCard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, UserCard(&buf, nil))
	assert.Equal(t, Anonymous+"\n", buf.String())

	buf.Reset()
	require.NoError(t, UserCard(&buf, &domain.User{ID: "u1", Username: "ann", Role: domain.RoleAdmin}))
	assert.Contains(t, buf.String(), "ann")
	assert.Contains(t, buf.String(), NoImage)
}

func TestCompareTable(t *testing.T) {
	entries := []domain.CompareEntry{
		{AdvertisementID: "a1", Title: "Bike", Price: decimal.NewFromInt(100), CategoryName: "Sports"},
		{AdvertisementID: "a2", Title: "Scooter", Price: decimal.NewFromInt(250)},
	}

	var buf bytes.Buffer
	require.NoError(t, CompareTable(&buf, entries))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Contains(t, lines[0], "a1")
	assert.Contains(t, lines[0], "a2")
	assert.Contains(t, buf.String(), "100.00")
	assert.Contains(t, buf.String(), "Sports")
	assert.Contains(t, buf.String(), Uncategorized)
}

func TestCategoryList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CategoryList(&buf, []domain.Category{
		{ID: "c1", Name: "Vehicles", Subcategories: []domain.Subcategory{{Name: "Cars"}, {Name: "Bikes"}}},
	}))
	assert.Contains(t, buf.String(), "Cars, Bikes")
	assert.Contains(t, buf.String(), NoImage)
}

func TestPlainTextAndTruncate(t *testing.T) {
	assert.Equal(t, "", PlainText(""))
	assert.Equal(t, "a b", PlainText("a   <i>b</i>"))
	assert.Equal(t, "line one\nline two", PlainText("line one<br/>line two"))

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc…", Truncate("abcdefgh", 4))
}
