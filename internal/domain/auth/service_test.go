package auth

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nottube/nottube-api/internal/domain/user"
	"github.com/nottube/nottube-api/internal/pkg/jwt"
	"github.com/nottube/nottube-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
	subs    map[uuid.UUID][]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[uuid.UUID]*user.User{},
		byEmail: map[string]*user.User{},
		subs:    map[uuid.UUID][]string{},
	}
}

func (r *fakeUserRepo) add(u *user.User) {
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.add(u)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) GetByIdentifier(_ context.Context, identifier string) (*user.User, error) {
	if u, ok := r.byEmail[identifier]; ok {
		return u, nil
	}
	for _, u := range r.byID {
		if u.Name == identifier {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, u *user.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	if u, ok := r.byID[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *fakeUserRepo) SetStatus(_ context.Context, id uuid.UUID, status user.Status) error {
	if u, ok := r.byID[id]; ok {
		u.Status = status
	}
	return nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id uuid.UUID, role user.Role) error {
	if u, ok := r.byID[id]; ok {
		u.Role = role
	}
	return nil
}

func (r *fakeUserRepo) ListSubscriptions(_ context.Context, id uuid.UUID) ([]string, error) {
	return r.subs[id], nil
}

func (r *fakeUserRepo) ToggleSubscription(_ context.Context, id uuid.UUID, channel string) (bool, error) {
	for i, c := range r.subs[id] {
		if c == channel {
			r.subs[id] = append(r.subs[id][:i], r.subs[id][i+1:]...)
			return false, nil
		}
	}
	r.subs[id] = append(r.subs[id], channel)
	return true, nil
}

func newTestService(repo *fakeUserRepo, adminEmails []string) *Service {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtService, nil, nil, adminEmails, nil)
}

func TestSignupNormalizesEmailAndDefaultsName(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Signup(context.Background(), &SignupRequest{
		Email:    "  Alice@Example.COM ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.User.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", resp.User.Email)
	}
	if resp.User.Name != "alice" {
		t.Fatalf("expected name from email local part, got %q", resp.User.Name)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatal("expected token pair issued")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&user.User{ID: uuid.New(), Email: "taken@example.com"})
	svc := newTestService(repo, nil)

	_, err := svc.Signup(context.Background(), &SignupRequest{
		Email:    "taken@example.com",
		Password: "secret123",
	})
	if err != ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestSignupAdminEmailGetsAdminRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, []string{"root@example.com"})

	resp, err := svc.Signup(context.Background(), &SignupRequest{
		Email:    "root@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.User.Role != string(user.RoleAdmin) {
		t.Fatalf("expected admin role, got %q", resp.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	hash, _ := password.Hash("rightpass")
	repo.add(&user.User{ID: uuid.New(), Email: "bob@example.com", PasswordHash: hash})
	svc := newTestService(repo, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Identifier: "bob@example.com",
		Password:   "wrongpass",
	})
	if err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginByChannelName(t *testing.T) {
	repo := newFakeUserRepo()
	hash, _ := password.Hash("secret123")
	repo.add(&user.User{ID: uuid.New(), Email: "bob@example.com", Name: "bobchannel", PasswordHash: hash})
	svc := newTestService(repo, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Identifier: "bobchannel",
		Password:   "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.User.Name != "bobchannel" {
		t.Fatalf("expected login by channel name, got %q", resp.User.Name)
	}
}

func TestLoginPromotesListedAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	hash, _ := password.Hash("secret123")
	u := &user.User{ID: uuid.New(), Email: "boss@example.com", PasswordHash: hash, Role: user.RoleUser}
	repo.add(u)
	svc := newTestService(repo, []string{"boss@example.com"})

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Identifier: "boss@example.com",
		Password:   "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.User.Role != string(user.RoleAdmin) {
		t.Fatalf("expected promotion to admin on login, got %q", resp.User.Role)
	}
	if repo.byID[u.ID].Role != user.RoleAdmin {
		t.Fatal("expected promotion persisted")
	}
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := newFakeUserRepo()
	hash, _ := password.Hash("oldpass99")
	u := &user.User{ID: uuid.New(), Email: "eve@example.com", PasswordHash: hash}
	repo.add(u)
	svc := newTestService(repo, nil)

	err := svc.ChangePassword(context.Background(), u.ID, &ChangePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "newpass99",
	})
	if err != ErrWrongPassword {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}

	err = svc.ChangePassword(context.Background(), u.ID, &ChangePasswordRequest{
		CurrentPassword: "oldpass99",
		NewPassword:     "newpass99",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !password.Verify("newpass99", repo.byID[u.ID].PasswordHash) {
		t.Fatal("expected new password stored")
	}
}

func TestToggleSubscription(t *testing.T) {
	repo := newFakeUserRepo()
	u := &user.User{ID: uuid.New(), Email: "sub@example.com"}
	repo.add(u)
	svc := newTestService(repo, nil)

	resp, err := svc.ToggleSubscription(context.Background(), u.ID, "somechannel")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !resp.Subscribed || len(resp.Subscriptions) != 1 {
		t.Fatalf("expected subscribed, got %+v", resp)
	}

	resp, err = svc.ToggleSubscription(context.Background(), u.ID, "somechannel")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.Subscribed || len(resp.Subscriptions) != 0 {
		t.Fatalf("expected unsubscribed, got %+v", resp)
	}
}

func TestRefreshWithoutRedis(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Refresh(context.Background(), "some-token")
	if err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

type fakeFileStore struct {
	objects map[string][]byte
	deleted []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{objects: map[string][]byte{}}
}

func (s *fakeFileStore) Put(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeFileStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeFileStore) URL(key string) string {
	return "http://files.test/" + key
}

func newTestServiceWithFiles(repo *fakeUserRepo, files *fakeFileStore) *Service {
	jwtService := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtService, nil, nil, nil, files)
}

func pngFixture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("failed to encode fixture image: %v", err)
	}
	return &buf
}

func TestUploadAvatarReplacesOldFile(t *testing.T) {
	repo := newFakeUserRepo()
	files := newFakeFileStore()
	u := &user.User{ID: uuid.New(), Email: "a@example.com", Name: "a"}
	repo.add(u)
	svc := newTestServiceWithFiles(repo, files)

	resp, err := svc.UploadAvatar(context.Background(), u.ID, "pic.png", pngFixture(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(resp.AvatarURL, "/avatars/") {
		t.Fatalf("expected stored avatar URL, got %q", resp.AvatarURL)
	}
	if len(files.deleted) != 0 {
		t.Fatalf("expected no deletion on first upload, got %v", files.deleted)
	}
	var firstKey string
	for k := range files.objects {
		firstKey = k
	}

	if _, err := svc.UploadAvatar(context.Background(), u.ID, "pic2.png", pngFixture(t)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(files.objects) != 1 {
		t.Fatalf("expected old object removed, %d stored", len(files.objects))
	}
	if len(files.deleted) != 1 || files.deleted[0] != firstKey {
		t.Fatalf("expected first avatar %q deleted, got %v", firstKey, files.deleted)
	}
}

func TestUploadAvatarKeepsExternalURL(t *testing.T) {
	repo := newFakeUserRepo()
	files := newFakeFileStore()
	u := &user.User{ID: uuid.New(), Email: "a@example.com", Name: "a", AvatarURL: "https://cdn.example.com/pic.jpg"}
	repo.add(u)
	svc := newTestServiceWithFiles(repo, files)

	if _, err := svc.UploadAvatar(context.Background(), u.ID, "pic.png", pngFixture(t)); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(files.deleted) != 0 {
		t.Fatalf("expected external URL untouched, got deletions %v", files.deleted)
	}
}

func TestUploadHeaderStoresFile(t *testing.T) {
	repo := newFakeUserRepo()
	files := newFakeFileStore()
	u := &user.User{ID: uuid.New(), Email: "a@example.com", Name: "a"}
	repo.add(u)
	svc := newTestServiceWithFiles(repo, files)

	resp, err := svc.UploadHeader(context.Background(), u.ID, "banner.png", pngFixture(t))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(resp.HeaderURL, "/headers/") {
		t.Fatalf("expected stored header URL, got %q", resp.HeaderURL)
	}
	if repo.byID[u.ID].HeaderURL != resp.HeaderURL {
		t.Fatal("expected header URL persisted on profile")
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	repo := newFakeUserRepo()
	files := newFakeFileStore()
	u := &user.User{ID: uuid.New(), Email: "a@example.com", Name: "a"}
	repo.add(u)
	svc := newTestServiceWithFiles(repo, files)

	if _, err := svc.UploadAvatar(context.Background(), u.ID, "notes.txt", pngFixture(t)); err != ErrInvalidImage {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
	if len(files.objects) != 0 {
		t.Fatal("expected nothing stored for rejected upload")
	}
}
