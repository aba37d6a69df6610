package service

import (
	"context"
	"time"

	"market-client/internal/domain"
	"market-client/internal/gateway"
	"market-client/internal/infrastructure/metrics"
	"market-client/internal/session"
)

const MaxCompareEntries = 2

// CompareList is the side-by-side comparison selection of the logged in user.
type CompareList struct {
	flow
	gw   gateway.CompareGateway
	page *Page[[]domain.CompareEntry]
}

func NewCompareList(gw gateway.CompareGateway, m *metrics.ServiceMetrics) *CompareList {
	return &CompareList{
		flow: newFlow(m),
		gw:   gw,
		page: NewPage[[]domain.CompareEntry](),
	}
}

func (c *CompareList) Page() *Page[[]domain.CompareEntry] {
	return c.page
}

func (c *CompareList) Entries() []domain.CompareEntry {
	return append([]domain.CompareEntry(nil), c.page.Data...)
}

func (c *CompareList) Contains(adID string) bool {
	return c.index(adID) >= 0
}

func (c *CompareList) Load(ctx context.Context, sess session.Session) error {
	ctx, span := c.tracer.Start(ctx, "CompareList.Load")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		c.metrics.Observe("CompareList.Load", status, time.Since(startTime).Seconds())
	}()

	if err := session.Require(sess); err != nil {
		status = "unauthenticated"
		return c.page.Fail(err)
	}

	err := c.page.Load(ctx, "Could not load the comparison", func(ctx context.Context) ([]domain.CompareEntry, error) {
		return c.gw.GetAllCompares(ctx, sess.Token, sess.UserID())
	})
	if err != nil {
		status = "error"
		span.RecordError(err)
	}
	return err
}

func (c *CompareList) Add(ctx context.Context, sess session.Session, adID string) error {
	ctx, span := c.tracer.Start(ctx, "CompareList.Add")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		c.metrics.Observe("CompareList.Add", status, time.Since(startTime).Seconds())
	}()

	if err := session.Require(sess); err != nil {
		status = "unauthenticated"
		return c.page.Fail(err)
	}
	if c.Contains(adID) {
		status = "duplicate"
		return c.page.Fail(ErrAlreadyCompared)
	}
	if len(c.page.Data) >= MaxCompareEntries {
		status = "full"
		return c.page.Fail(ErrCompareFull)
	}

	entry, err := c.gw.CreateCompare(ctx, sess.Token, sess.UserID(), adID)
	if err != nil {
		status = "error"
		span.RecordError(err)
		c.page.Status = StatusFailure
		c.page.Error = gateway.Message(err, "Could not add to the comparison")
		return err
	}
	if entry.AdvertisementID == "" {
		entry.AdvertisementID = adID
	}

	c.page.Data = append(c.page.Data, *entry)
	c.page.Status = StatusSuccess
	c.page.Error = ""
	return nil
}

// Remove deletes the entry on the backend first and then drops exactly the
// matching local entry.
func (c *CompareList) Remove(ctx context.Context, sess session.Session, adID string) error {
	ctx, span := c.tracer.Start(ctx, "CompareList.Remove")
	defer span.End()

	startTime := time.Now()
	status := "success"

	defer func() {
		c.metrics.Observe("CompareList.Remove", status, time.Since(startTime).Seconds())
	}()

	if err := session.Require(sess); err != nil {
		status = "unauthenticated"
		return c.page.Fail(err)
	}

	if err := c.gw.DeleteCompare(ctx, sess.Token, sess.UserID(), adID); err != nil {
		status = "error"
		span.RecordError(err)
		c.page.Status = StatusFailure
		c.page.Error = gateway.Message(err, "Could not remove from the comparison")
		return err
	}

	if i := c.index(adID); i >= 0 {
		c.page.Data = append(c.page.Data[:i:i], c.page.Data[i+1:]...)
	}
	c.page.Status = StatusSuccess
	c.page.Error = ""
	return nil
}

func (c *CompareList) index(adID string) int {
	for i, e := range c.page.Data {
		if e.AdvertisementID == adID {
			return i
		}
	}
	return -1
}
