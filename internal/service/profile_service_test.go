package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/store"
)

// fakeFileStorage records calls instead of talking to S3.
type fakeFileStorage struct {
	deleted []string
	fail    bool
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	if f.fail {
		return "", errors.New("s3 unavailable")
	}
	return "https://upload.example/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if f.fail {
		return "", errors.New("s3 unavailable")
	}
	return "https://download.example/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func newProfileFixture() (ProfileService, *store.MemoryStore, *fakeFileStorage) {
	snapshots := store.NewMemoryStore(fixtureData())
	files := &fakeFileStorage{}
	return NewProfileService(snapshots, guard.NewIdentityGuard(), files), snapshots, files
}

func TestProfileGet(t *testing.T) {
	svc, _, _ := newProfileFixture()

	user, err := svc.Get(context.Background(), "u3")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("name = %s, want Alice", user.Name)
	}
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestProfileUpdate(t *testing.T) {
	svc, snapshots, _ := newProfileFixture()

	user, err := svc.Update(context.Background(), "u3", ProfileForm{
		Name: "Alice Updated", Email: "alice@test.com", PhoneNumber: "+6599999999", Password: "newpw",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if user.PhoneNumber != "+6599999999" {
		t.Errorf("phone = %s, want +6599999999", user.PhoneNumber)
	}

	data, _ := snapshots.Load(context.Background())
	if data.UserByID("u3").Password != "newpw" {
		t.Error("password update did not persist")
	}
}

func TestProfileUpdateEmailDoubleConfirmation(t *testing.T) {
	svc, snapshots, _ := newProfileFixture()

	form := ProfileForm{Name: "Alice", Email: "alice.new@test.com", PhoneNumber: "+6533333333", Password: "pw"}

	if _, err := svc.Update(context.Background(), "u3", form); !errors.Is(err, guard.ErrIdentityChangePending) {
		t.Fatalf("first submit: err = %v, want ErrIdentityChangePending", err)
	}
	data, _ := snapshots.Load(context.Background())
	if data.UserByID("u3").Email != "alice@test.com" {
		t.Fatal("intercepted submit must not persist")
	}

	user, err := svc.Update(context.Background(), "u3", form)
	if err != nil {
		t.Fatalf("second submit: err = %v", err)
	}
	if user.Email != "alice.new@test.com" {
		t.Errorf("email = %s, want alice.new@test.com", user.Email)
	}
}

func TestRequestAvatarUploadURL(t *testing.T) {
	svc, _, _ := newProfileFixture()

	resp, err := svc.RequestAvatarUploadURL(context.Background(), "u3", "image/png")
	if err != nil {
		t.Fatalf("RequestAvatarUploadURL returned error: %v", err)
	}
	if !strings.HasPrefix(resp.ObjectKey, "avatars/u3/") || !strings.HasSuffix(resp.ObjectKey, ".png") {
		t.Errorf("object key = %q, want avatars/u3/<id>.png", resp.ObjectKey)
	}
	if resp.UploadURL == "" {
		t.Error("expected an upload URL")
	}
}

func TestRequestAvatarUploadURLRejectsNonImage(t *testing.T) {
	svc, _, _ := newProfileFixture()

	for _, ct := range []string{"", "application/pdf", "text/html"} {
		if _, err := svc.RequestAvatarUploadURL(context.Background(), "u3", ct); !errors.Is(err, ErrInvalidImageType) {
			t.Errorf("contentType=%q: err = %v, want ErrInvalidImageType", ct, err)
		}
	}
}

func TestConfirmAvatarReplacesPrevious(t *testing.T) {
	svc, snapshots, files := newProfileFixture()

	if _, err := svc.ConfirmAvatar(context.Background(), "u3", "avatars/u3/first.png"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ConfirmAvatar(context.Background(), "u3", "avatars/u3/second.png"); err != nil {
		t.Fatal(err)
	}

	data, _ := snapshots.Load(context.Background())
	if got := data.UserByID("u3").ProfileImage; got != "avatars/u3/second.png" {
		t.Errorf("profile image = %q, want the second key", got)
	}
	if len(files.deleted) != 1 || files.deleted[0] != "avatars/u3/first.png" {
		t.Errorf("deleted = %v, want the first key only", files.deleted)
	}
}

func TestAvatarURL(t *testing.T) {
	svc, _, _ := newProfileFixture()

	if _, err := svc.AvatarURL(context.Background(), "u3"); !errors.Is(err, ErrAvatarMissing) {
		t.Fatalf("no avatar: err = %v, want ErrAvatarMissing", err)
	}

	if _, err := svc.ConfirmAvatar(context.Background(), "u3", "avatars/u3/a.png"); err != nil {
		t.Fatal(err)
	}
	url, err := svc.AvatarURL(context.Background(), "u3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(url, "avatars/u3/a.png") {
		t.Errorf("url = %q, want it to reference the object key", url)
	}
}
