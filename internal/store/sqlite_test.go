package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
)

func openTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestEnsureUser_DefaultsAndIdempotency(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if _, err := repo.GetUser(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetUser before ensure: want ErrNotFound, got %v", err)
	}

	if err := repo.EnsureUser(ctx, 42); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	u, err := repo.GetUser(ctx, 42)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.City != "Tashkent" || u.RemindBefore != 10 || !u.RemindEnabled {
		t.Fatalf("unexpected defaults: %+v", u)
	}
	if u.LastImsakDate != "" || u.LastMaghribDate != "" {
		t.Fatalf("fired markers should start absent: %+v", u)
	}

	// Second ensure must not reset anything.
	if err := repo.SetCity(ctx, 42, "Samarkand"); err != nil {
		t.Fatalf("SetCity: %v", err)
	}
	if err := repo.EnsureUser(ctx, 42); err != nil {
		t.Fatalf("EnsureUser again: %v", err)
	}
	u, _ = repo.GetUser(ctx, 42)
	if u.City != "Samarkand" {
		t.Fatalf("EnsureUser overwrote city: %+v", u)
	}
}

func TestSetRemindBefore_Clamps(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	if err := repo.EnsureUser(ctx, 1); err != nil {
		t.Fatal(err)
	}

	cases := []struct{ in, want int }{
		{0, 1}, {-10, 1}, {1, 1}, {15, 15}, {120, 120}, {500, 120},
	}
	for _, c := range cases {
		if err := repo.SetRemindBefore(ctx, 1, c.in); err != nil {
			t.Fatalf("SetRemindBefore(%d): %v", c.in, err)
		}
		u, err := repo.GetUser(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if u.RemindBefore != c.want {
			t.Errorf("SetRemindBefore(%d): stored %d, want %d", c.in, u.RemindBefore, c.want)
		}
	}
}

func TestMarkFired_PerKind(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	if err := repo.EnsureUser(ctx, 7); err != nil {
		t.Fatal(err)
	}

	if err := repo.MarkFired(ctx, 7, domain.ModeImsak, "2026-03-03"); err != nil {
		t.Fatalf("MarkFired imsak: %v", err)
	}
	u, _ := repo.GetUser(ctx, 7)
	if u.LastImsakDate != "2026-03-03" || u.LastMaghribDate != "" {
		t.Fatalf("imsak marker only expected: %+v", u)
	}

	if err := repo.MarkFired(ctx, 7, domain.ModeMaghrib, "2026-03-03"); err != nil {
		t.Fatalf("MarkFired maghrib: %v", err)
	}
	u, _ = repo.GetUser(ctx, 7)
	if u.LastMaghribDate != "2026-03-03" {
		t.Fatalf("maghrib marker expected: %+v", u)
	}
}

func TestListEnabled(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	for _, id := range []int64{1, 2, 3} {
		if err := repo.EnsureUser(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.SetEnabled(ctx, 2, false); err != nil {
		t.Fatal(err)
	}

	users, err := repo.ListEnabled(ctx)
	if err != nil {
		t.Fatalf("ListEnabled: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("want 2 enabled users, got %d", len(users))
	}
	if users[0].UserID != 1 || users[1].UserID != 3 {
		t.Fatalf("unexpected ids: %+v", users)
	}
}
