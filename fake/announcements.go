package fake

import (
	"context"
	"fmt"
	"sort"
	"time"

	courseclient "github.com/air846/course-client"
)

type announcementService struct{ s *state }

var _ courseclient.AnnouncementService = (*announcementService)(nil)

// Announcement status codes mirror the backend: 0 draft, 1 published,
// 2 withdrawn.
const (
	announcementDraft     = 0
	announcementPublished = 1
	announcementWithdrawn = 2
)

func (f *announcementService) Save(_ context.Context, input courseclient.AnnouncementInput) (*courseclient.Announcement, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var a *courseclient.Announcement
	if input.ID != 0 {
		existing, ok := f.s.announcements[input.ID]
		if !ok {
			return nil, fmt.Errorf("courseclient/fake: announcement %d not found", input.ID)
		}
		a = existing
	} else {
		a = &courseclient.Announcement{ID: f.s.id(), Status: announcementDraft}
		f.s.announcements[a.ID] = a
	}

	a.Title = input.Title
	a.Content = input.Content
	a.Type = input.Type
	a.Priority = input.Priority
	a.TargetType = input.TargetType
	a.CourseID = input.CourseID
	a.IsTop = input.IsTop
	a.ExpireTime = input.ExpireTime
	a.AttachmentURL = input.AttachmentURL
	a.AttachmentName = input.AttachmentName
	if input.Status != 0 {
		a.Status = input.Status
	}

	cp := *a
	return &cp, nil
}

func (f *announcementService) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if _, ok := f.s.announcements[id]; !ok {
		return fmt.Errorf("courseclient/fake: announcement %d not found", id)
	}
	delete(f.s.announcements, id)
	return nil
}

func (f *announcementService) Get(_ context.Context, id int64) (*courseclient.Announcement, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	a, ok := f.s.announcements[id]
	if !ok {
		return nil, fmt.Errorf("courseclient/fake: announcement %d not found", id)
	}
	a.ReadCount++
	cp := *a
	return &cp, nil
}

func (f *announcementService) ListManaged(_ context.Context, q courseclient.PageQuery) (*courseclient.Page[courseclient.Announcement], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(nil), q), nil
}

func (f *announcementService) ListVisible(_ context.Context, q courseclient.PageQuery) (*courseclient.Page[courseclient.Announcement], error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	return page(f.all(func(a *courseclient.Announcement) bool {
		return a.Status == announcementPublished
	}), q), nil
}

func (f *announcementService) ListTop(_ context.Context, limit int) ([]courseclient.Announcement, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	out := f.all(func(a *courseclient.Announcement) bool {
		return a.Status == announcementPublished && a.IsTop == 1
	})
	return truncate(out, limit), nil
}

func (f *announcementService) ListLatest(_ context.Context, limit int) ([]courseclient.Announcement, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()
	out := f.all(func(a *courseclient.Announcement) bool {
		return a.Status == announcementPublished
	})
	// Newest first.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return truncate(out, limit), nil
}

func (f *announcementService) Publish(_ context.Context, id int64) error {
	return f.setStatus(id, announcementPublished)
}

func (f *announcementService) Withdraw(_ context.Context, id int64) error {
	return f.setStatus(id, announcementWithdrawn)
}

func (f *announcementService) SetTop(_ context.Context, id int64, top bool) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	a, ok := f.s.announcements[id]
	if !ok {
		return fmt.Errorf("courseclient/fake: announcement %d not found", id)
	}
	if top {
		a.IsTop = 1
	} else {
		a.IsTop = 0
	}
	return nil
}

func (f *announcementService) Statistics(context.Context) (*courseclient.AnnouncementTotals, error) {
	f.s.mu.RLock()
	defer f.s.mu.RUnlock()

	totals := &courseclient.AnnouncementTotals{
		TotalAnnouncements: len(f.s.announcements),
	}
	for _, a := range f.s.announcements {
		switch a.Status {
		case announcementPublished:
			totals.PublishedCount++
		case announcementDraft:
			totals.DraftCount++
		}
		if a.IsTop == 1 {
			totals.TopCount++
		}
		totals.TotalReadCount += a.ReadCount
	}
	if totals.TotalAnnouncements > 0 {
		totals.AvgReadCount = float64(totals.TotalReadCount) / float64(totals.TotalAnnouncements)
	}
	return totals, nil
}

func (f *announcementService) BatchDelete(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if err := f.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (f *announcementService) BatchPublish(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if err := f.Publish(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (f *announcementService) setStatus(id int64, status int) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	a, ok := f.s.announcements[id]
	if !ok {
		return fmt.Errorf("courseclient/fake: announcement %d not found", id)
	}
	a.Status = status
	if status == announcementPublished && a.PublishTime == "" {
		a.PublishTime = time.Now().Format(time.RFC3339)
	}
	return nil
}

func (f *announcementService) all(filter func(*courseclient.Announcement) bool) []courseclient.Announcement {
	out := make([]courseclient.Announcement, 0, len(f.s.announcements))
	for _, a := range f.s.announcements {
		if filter == nil || filter(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
