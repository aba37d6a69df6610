package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"market-client/internal/domain"
)

const (
	NoImage       = "No image available"
	Anonymous     = "Anonymous"
	Uncategorized = "Uncategorized"
)

const (
	dateLayout     = "2006-01-02"
	descriptionMax = 280
)

// AdvertisementCard renders one listing. Nested owner, category and images
// are optional in backend answers and fall back to placeholders.
func AdvertisementCard(w io.Writer, ad *domain.Advertisement, now time.Time) error {
	cw := &cardWriter{w: w}

	title := ad.Title
	if ad.BoostActive(now) {
		title += "  [BOOSTED]"
	}
	cw.line(title)
	cw.field("ID", ad.ID)
	cw.field("Price", ad.Price.StringFixed(2))
	cw.field("Location", orDash(ad.Location))
	cw.field("Category", categoryName(ad))
	cw.field("Seller", ownerName(ad.User))
	cw.field("Image", orFallback(ad.CoverImage(), NoImage))
	if n := len(ad.Images); n > 1 {
		cw.field("Gallery", fmt.Sprintf("%d images", n))
	}
	if ad.VideoURL != "" {
		cw.field("Video", ad.VideoURL)
	}
	cw.field("Views", fmt.Sprint(ad.Views))
	if !ad.CreatedAt.IsZero() {
		cw.field("Posted", ad.CreatedAt.Format(dateLayout))
	}
	if ad.BoostActive(now) && ad.BoostedUntil != nil {
		cw.field("Boosted until", ad.BoostedUntil.Format(dateLayout))
	}
	if text := PlainText(ad.Description); text != "" {
		cw.line("")
		cw.line(Truncate(text, descriptionMax))
	}
	return cw.err
}

// AdvertisementList renders listings as one table row each.
func AdvertisementList(w io.Writer, ads []domain.Advertisement, now time.Time) error {
	if len(ads) == 0 {
		_, err := fmt.Fprintln(w, "No advertisements found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tLOCATION\tCATEGORY\tBOOSTED")
	for i := range ads {
		ad := &ads[i]
		boosted := ""
		if ad.BoostActive(now) {
			boosted = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ad.ID, Truncate(ad.Title, 40), ad.Price.StringFixed(2), orDash(ad.Location), categoryName(ad), boosted)
	}
	return tw.Flush()
}

func OrderCard(w io.Writer, order *domain.Order) error {
	cw := &cardWriter{w: w}
	cw.line("Order " + order.ID)
	cw.field("Package", orDash(order.PackageName))
	cw.field("Amount", order.Amount.StringFixed(2))
	cw.field("Status", orDash(order.PaymentStatus))
	if order.PaymentMethod != "" {
		cw.field("Paid with", order.PaymentMethod)
	}
	cw.field("Advertisement", orDash(order.AdvertisementID))
	if order.UserDetails != nil {
		cw.field("Billed to", orFallback(order.UserDetails.FullName, Anonymous))
		cw.field("Email", orDash(order.UserDetails.Email))
		if addr := joinNonEmpty(", ", order.UserDetails.Address, order.UserDetails.City, order.UserDetails.Country); addr != "" {
			cw.field("Address", addr)
		}
	} else {
		cw.field("Billed to", Anonymous)
	}
	if !order.CreatedAt.IsZero() {
		cw.field("Created", order.CreatedAt.Format(dateLayout))
	}
	return cw.err
}

func OrderList(w io.Writer, orders []domain.Order) error {
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No orders found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPACKAGE\tAMOUNT\tSTATUS\tCREATED")
	for _, o := range orders {
		created := "-"
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Format(dateLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.ID, orDash(o.PackageName), o.Amount.StringFixed(2), orDash(o.PaymentStatus), created)
	}
	return tw.Flush()
}

// UserCard renders a profile. A nil user renders as anonymous.
func UserCard(w io.Writer, user *domain.User) error {
	cw := &cardWriter{w: w}
	if user == nil {
		cw.line(Anonymous)
		return cw.err
	}
	cw.line(orFallback(user.FullName(), Anonymous))
	cw.field("ID", user.ID)
	cw.field("Username", orDash(user.Username))
	cw.field("Email", orDash(user.Email))
	if user.Phone != "" {
		cw.field("Phone", user.Phone)
	}
	cw.field("Role", orDash(user.Role))
	cw.field("Photo", orFallback(user.ProfileImage, NoImage))
	return cw.err
}

func UserList(w io.Writer, users []domain.User) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUSERNAME\tEMAIL\tROLE")
	for i := range users {
		u := &users[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, orFallback(u.FullName(), Anonymous), orDash(u.Username), orDash(u.Email), orDash(u.Role))
	}
	return tw.Flush()
}

func CategoryList(w io.Writer, categories []domain.Category) error {
	if len(categories) == 0 {
		_, err := fmt.Fprintln(w, "No categories found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSUBCATEGORIES\tIMAGE")
	for _, c := range categories {
		subs := make([]string, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			subs = append(subs, s.Name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, orDash(strings.Join(subs, ", ")), orFallback(c.Image, NoImage))
	}
	return tw.Flush()
}

// CompareTable puts the compared advertisements next to each other, one
// column per advertisement.
func CompareTable(w io.Writer, entries []domain.CompareEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "Nothing to compare yet.")
		return err
	}

	rows := []struct {
		label string
		value func(e *domain.CompareEntry) string
	}{
		{"Title", func(e *domain.CompareEntry) string { return orDash(e.Title) }},
		{"Price", func(e *domain.CompareEntry) string { return e.Price.StringFixed(2) }},
		{"Location", func(e *domain.CompareEntry) string { return orDash(e.Location) }},
		{"Category", func(e *domain.CompareEntry) string { return orFallback(e.CategoryName, Uncategorized) }},
		{"Views", func(e *domain.CompareEntry) string { return fmt.Sprint(e.Views) }},
		{"Image", func(e *domain.CompareEntry) string { return orFallback(e.FeaturedImage, NoImage) }},
		{"Description", func(e *domain.CompareEntry) string { return orDash(Truncate(PlainText(e.Description), 40)) }},
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{""}
	for _, e := range entries {
		header = append(header, e.AdvertisementID)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		cells := []string{row.label}
		for i := range entries {
			cells = append(cells, row.value(&entries[i]))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func PackageList(w io.Writer, packages []domain.BoostPackage) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDAYS\tPRICE")
	for _, p := range packages {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Days, p.Price.StringFixed(2))
	}
	return tw.Flush()
}

func MessageList(w io.Writer, messages []domain.ContactMessage) error {
	if len(messages) == 0 {
		_, err := fmt.Fprintln(w, "No messages.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tEMAIL\tMESSAGE")
	for _, m := range messages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, orFallback(m.Name, Anonymous), m.Email, Truncate(m.Message, 50))
	}
	return tw.Flush()
}

func categoryName(ad *domain.Advertisement) string {
	if ad.Category != nil && ad.Category.Name != "" {
		return ad.Category.Name
	}
	return Uncategorized
}

func ownerName(u *domain.User) string {
	if u == nil {
		return Anonymous
	}
	return orFallback(u.FullName(), Anonymous)
}

func orFallback(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func orDash(s string) string {
	return orFallback(s, "-")
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// cardWriter keeps the first write error so card renderers stay linear.
type cardWriter struct {
	w   io.Writer
	err error
}

func (c *cardWriter) line(s string) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintln(c.w, s)
}

func (c *cardWriter) field(label, value string) {
	c.line(fmt.Sprintf("  %-14s %s", label+":", value))
}
