package service

import (
	"context"
	"errors"
	"testing"

	"esn-planner/core/params"
	"esn-planner/modules/notification/entity"
)

type fakeNotificationRepo struct {
	created   []*entity.Notification
	createErr error
	markedIDs []string
	markedAll bool
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) List(ctx context.Context, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	items := make([]entity.Notification, len(r.created))
	for i, n := range r.created {
		items[i] = *n
	}
	return &entity.PaginatedNotificationEntity{Items: items, Total: len(items)}, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, ids []string) error {
	r.markedIDs = append(r.markedIDs, ids...)
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context) error {
	r.markedAll = true
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context) (int, error) {
	count := 0
	for _, n := range r.created {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func TestSuccessToastAutoDismisses(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	svc.Success(context.Background(), "Présence", "Présence enregistrée")

	if len(repo.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(repo.created))
	}
	n := repo.created[0]
	if n.Style != entity.StyleSuccess {
		t.Errorf("style = %s, want success", n.Style)
	}
	if n.DismissAfterMS != 3000 {
		t.Errorf("dismiss_after_ms = %d, want 3000", n.DismissAfterMS)
	}
	if n.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("notification id not assigned")
	}
}

func TestErrorToastStaysUntilDismissed(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	svc.Error(context.Background(), "Sauvegarde", "Erreur lors de la sauvegarde du calendrier")

	if len(repo.created) != 1 {
		t.Fatalf("created %d notifications, want 1", len(repo.created))
	}
	n := repo.created[0]
	if n.Style != entity.StyleError {
		t.Errorf("style = %s, want error", n.Style)
	}
	if n.DismissAfterMS != 0 {
		t.Errorf("dismiss_after_ms = %d, error toasts must not auto-dismiss", n.DismissAfterMS)
	}
}

func TestToastStoreFailureIsSwallowed(t *testing.T) {
	repo := &fakeNotificationRepo{createErr: errors.New("db down")}
	svc := NewNotificationService(repo)

	// Must not panic or propagate: a broken toast store never breaks the
	// operation that emitted the toast.
	svc.Success(context.Background(), "Présence", "Présence enregistrée")
	svc.Error(context.Background(), "Présence", "Présence supprimée")
}

func TestCountUnread(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	svc.Success(context.Background(), "A", "a")
	svc.Error(context.Background(), "B", "b")
	repo.created[0].IsRead = true

	count, err := svc.CountUnread(context.Background())
	if err != nil {
		t.Fatalf("CountUnread: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
