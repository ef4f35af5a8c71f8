package flag

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nottube/nottube-api/internal/middleware"
)

func newTestRouter(fx *fixture) chi.Router {
	h := NewHandler(fx.svc)
	r := chi.NewRouter()
	r.Post("/flags", h.Create)
	r.With(middleware.RequireAdmin()).Patch("/flags/{id}", h.Resolve)
	r.Post("/flags/{id}/appeal", h.Appeal)
	return r
}

func authedRequest(method, path, body string, userID uuid.UUID, role string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.RoleKey, role)
	return req.WithContext(ctx)
}

func TestCreateFlagRejectsInvalidType(t *testing.T) {
	fx := newFixture()
	r := newTestRouter(fx)

	req := authedRequest(http.MethodPost, "/flags",
		`{"type":"playlist","targetId":"t1","reason":"spam"}`, uuid.New(), "user")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(fx.repo.flags) != 0 {
		t.Fatal("expected no flag persisted on validation failure")
	}
}

func TestCreateFlagRejectsShortReason(t *testing.T) {
	fx := newFixture()
	r := newTestRouter(fx)

	req := authedRequest(http.MethodPost, "/flags",
		`{"type":"video","targetId":"t1","reason":"no"}`, uuid.New(), "user")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(fx.repo.flags) != 0 {
		t.Fatal("expected no flag persisted on validation failure")
	}
}

func TestResolveRequiresAdmin(t *testing.T) {
	fx := newFixture()
	videoID := uuid.New()
	fx.videos.videos[videoID] = &fakeVideo{owner: uuid.New(), hidden: true}
	f := &Flag{ID: uuid.New(), Type: TargetVideo, TargetID: videoID.String(), Reason: "spam", CreatedBy: uuid.New(), Status: StatusOpen}
	fx.repo.flags[f.ID] = f

	r := newTestRouter(fx)
	req := authedRequest(http.MethodPatch, "/flags/"+f.ID.String(),
		`{"outcome":"denied"}`, uuid.New(), "user")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if fx.repo.flags[f.ID].Status != StatusOpen {
		t.Fatal("expected flag unchanged after rejected resolve")
	}
	if !fx.videos.videos[videoID].hidden {
		t.Fatal("expected target unchanged after rejected resolve")
	}
}

func TestResolveAsAdmin(t *testing.T) {
	fx := newFixture()
	f := &Flag{ID: uuid.New(), Type: TargetComment, TargetID: uuid.New().String(), Reason: "spam", CreatedBy: uuid.New(), Status: StatusOpen}
	fx.repo.flags[f.ID] = f

	r := newTestRouter(fx)
	req := authedRequest(http.MethodPatch, "/flags/"+f.ID.String(),
		`{"outcome":"accepted","resolution":"confirmed spam"}`, uuid.New(), "admin")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stored := fx.repo.flags[f.ID]
	if stored.Status != StatusResolved {
		t.Fatalf("expected resolved, got %q", stored.Status)
	}
	if stored.Resolution == nil || *stored.Resolution != "confirmed spam" {
		t.Fatal("expected resolution note stored")
	}
}

func TestResolveRejectsEmptyOutcome(t *testing.T) {
	fx := newFixture()
	f := &Flag{ID: uuid.New(), Type: TargetVideo, TargetID: uuid.New().String(), Reason: "spam", CreatedBy: uuid.New(), Status: StatusOpen}
	fx.repo.flags[f.ID] = f

	r := newTestRouter(fx)
	req := authedRequest(http.MethodPatch, "/flags/"+f.ID.String(),
		`{"outcome":""}`, uuid.New(), "admin")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if fx.repo.flags[f.ID].Status != StatusOpen {
		t.Fatal("expected flag unchanged after rejected update")
	}
}

func TestAppealConflictStatus(t *testing.T) {
	fx := newFixture()
	creator := uuid.New()
	f := &Flag{
		ID:            uuid.New(),
		Type:          TargetVideo,
		TargetID:      uuid.New().String(),
		Reason:        "spam",
		CreatedBy:     creator,
		Status:        StatusResolved,
		AppealMessage: strptr("first"),
	}
	fx.repo.flags[f.ID] = f

	r := newTestRouter(fx)
	req := authedRequest(http.MethodPost, "/flags/"+f.ID.String()+"/appeal",
		`{"appealMessage":"again"}`, creator, "user")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
