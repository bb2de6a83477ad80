package article_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"personal-site/internal/domain/entity"
	artUC "personal-site/internal/usecase/article"
)

/* ───────── スタブ実装 ───────── */

// 最小限のインメモリ ArticleRepository
type stubRepo struct {
	data map[string]*entity.Article
	err  error // 強制的にエラーを返したいとき用
}

func newStub() *stubRepo {
	return &stubRepo{data: map[string]*entity.Article{}}
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*entity.Article, 0, len(s.data))
	for _, a := range s.data {
		out = append(out, a)
	}
	// 本物のリポジトリと同じ並び: created_at DESC, id ASC
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *stubRepo) Get(_ context.Context, id string) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[id], nil
}

func (s *stubRepo) Create(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	cp := *a
	s.data[a.ID] = &cp
	return nil
}

func (s *stubRepo) Update(_ context.Context, a *entity.Article) error {
	if s.err != nil {
		return s.err
	}
	cp := *a
	s.data[a.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.data, id)
	return nil
}

// stubBlobs records uploads and returns deterministic URLs.
type stubBlobs struct {
	uploaded []string
	err      error
}

func (b *stubBlobs) Put(_ context.Context, name string, r io.Reader) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	b.uploaded = append(b.uploaded, name)
	return "https://blobs.example.com/" + name, nil
}

func newService(repo *stubRepo) (*artUC.Service, *stubBlobs) {
	blobs := &stubBlobs{}
	return &artUC.Service{Repo: repo, Blobs: blobs}, blobs
}

/* ───────── Create ───────── */

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	svc, _ := newService(newStub())

	art, err := svc.Create(context.Background(), artUC.CreateInput{
		Title:    "first post",
		Body:     "# hello",
		AuthorID: "admin-1",
	}, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if art.ID == "" {
		t.Error("ID must be assigned")
	}
	if art.CreatedAt.IsZero() || !art.CreatedAt.Equal(art.UpdatedAt) {
		t.Errorf("CreatedAt and UpdatedAt must both be set and equal at creation, got %v / %v",
			art.CreatedAt, art.UpdatedAt)
	}
	if art.AuthorID != "admin-1" {
		t.Errorf("AuthorID = %q, want admin-1", art.AuthorID)
	}
	if art.Tags == nil {
		t.Error("Tags must default to an empty slice, not nil")
	}
}

func TestCreate_DefaultImage(t *testing.T) {
	svc, _ := newService(newStub())

	noImage, err := svc.Create(context.Background(), artUC.CreateInput{
		Title: "no image", AuthorID: "admin-1",
	}, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if noImage.ImageURL != entity.DefaultImageURL {
		t.Errorf("ImageURL = %q, want default %q", noImage.ImageURL, entity.DefaultImageURL)
	}

	withImage, err := svc.Create(context.Background(), artUC.CreateInput{
		Title: "with image", ImageURL: "https://blobs.example.com/articles/1_cat.png", AuthorID: "admin-1",
	}, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if withImage.ImageURL == entity.DefaultImageURL {
		t.Error("supplied image must not be replaced by the default")
	}
}

func TestCreate_ForbiddenLeavesRepositoryUnchanged(t *testing.T) {
	repo := newStub()
	svc, _ := newService(repo)

	for _, role := range []entity.Role{entity.RoleUser, entity.RoleNone} {
		_, err := svc.Create(context.Background(), artUC.CreateInput{
			Title: "nope", AuthorID: "u1",
		}, role)
		if !errors.Is(err, entity.ErrForbidden) {
			t.Errorf("Create(role=%q) error = %v, want ErrForbidden", role, err)
		}
	}
	if len(repo.data) != 0 {
		t.Errorf("repository must be unchanged, has %d documents", len(repo.data))
	}
}

func TestCreate_EmptyTitle(t *testing.T) {
	svc, _ := newService(newStub())
	_, err := svc.Create(context.Background(), artUC.CreateInput{AuthorID: "admin-1"}, entity.RoleAdmin)
	if !errors.Is(err, entity.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

/* ───────── Get ───────── */

func TestGet_DraftVisibility(t *testing.T) {
	repo := newStub()
	svc, _ := newService(repo)

	draft, err := svc.Create(context.Background(), artUC.CreateInput{
		Title: "draft", IsDraft: true, AuthorID: "admin-1",
	}, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// 非管理者には存在しないIDと同じ NotFound を返す
	for _, role := range []entity.Role{entity.RoleUser, entity.RoleNone} {
		_, err := svc.Get(context.Background(), draft.ID, role)
		if !errors.Is(err, entity.ErrNotFound) {
			t.Errorf("Get(draft, role=%q) error = %v, want ErrNotFound", role, err)
		}
	}

	got, err := svc.Get(context.Background(), draft.ID, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Get(draft, admin): %v", err)
	}
	if got.ID != draft.ID {
		t.Errorf("got ID %q, want %q", got.ID, draft.ID)
	}
}

func TestGet_MissingAndDraftAreIndistinguishable(t *testing.T) {
	repo := newStub()
	svc, _ := newService(repo)

	draft, _ := svc.Create(context.Background(), artUC.CreateInput{
		Title: "draft", IsDraft: true, AuthorID: "admin-1",
	}, entity.RoleAdmin)

	_, errMissing := svc.Get(context.Background(), "no-such-id", entity.RoleUser)
	_, errDraft := svc.Get(context.Background(), draft.ID, entity.RoleUser)

	if !errors.Is(errMissing, entity.ErrNotFound) || !errors.Is(errDraft, entity.ErrNotFound) {
		t.Fatalf("both cases must be ErrNotFound, got %v / %v", errMissing, errDraft)
	}
}

/* ───────── List ───────── */

func TestList_FiltersAndOrders(t *testing.T) {
	repo := newStub()
	svc, _ := newService(repo)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// t1 < t2 < t3、全て公開 + ドラフト1件
	for i, title := range []string{"t1", "t2", "t3"} {
		repo.data[title] = &entity.Article{
			ID: title, Title: title, ImageURL: entity.DefaultImageURL,
			AuthorID: "admin-1", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	repo.data["d1"] = &entity.Article{
		ID: "d1", Title: "secret", IsDraft: true,
		AuthorID: "admin-1", CreatedAt: base.Add(10 * time.Hour),
	}

	got, err := svc.List(context.Background(), entity.RoleUser)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var ids []string
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	want := "t3,t2,t1"
	if strings.Join(ids, ",") != want {
		t.Errorf("List(user) order = %s, want %s", strings.Join(ids, ","), want)
	}

	admin, err := svc.List(context.Background(), entity.RoleAdmin)
	if err != nil {
		t.Fatalf("List(admin): %v", err)
	}
	if len(admin) != 4 || admin[0].ID != "d1" {
		t.Errorf("List(admin) must include the newest draft first, got %v", admin)
	}
}

func TestList_TieBreaksByIDAscending(t *testing.T) {
	repo := newStub()
	svc, _ := newService(repo)
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, id := range []string{"b", "a", "c"} {
		repo.data[id] = &entity.Article{ID: id, Title: id, AuthorID: "admin-1", CreatedAt: at}
	}

	got, err := svc.List(context.Background(), entity.RoleNone)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Errorf("equal timestamps must order by id ascending, got %s,%s,%s",
			got[0].ID, got[1].ID, got[2].ID)
	}
}

/* ───────── Update ───────── */

func TestUpdate_PreservesCreatedAtAndAuthor(t *testing.T) {
	repo := newStub()
	svc, _ := newService(repo)

	created, err := svc.Create(context.Background(), artUC.CreateInput{
		Title: "old title", Body: "body", AuthorID: "admin-1",
	}, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	wantCreatedAt := created.CreatedAt

	newTitle := "new"
	updated, err := svc.Update(context.Background(), created.ID, artUC.UpdateInput{
		Title: &newTitle,
	}, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != "new" {
		t.Errorf("Title = %q, want new", updated.Title)
	}
	if !updated.CreatedAt.Equal(wantCreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", wantCreatedAt, updated.CreatedAt)
	}
	if updated.AuthorID != "admin-1" {
		t.Errorf("AuthorID changed: %q", updated.AuthorID)
	}
	if !updated.UpdatedAt.After(wantCreatedAt) && !updated.UpdatedAt.Equal(wantCreatedAt) {
		t.Errorf("UpdatedAt must be reassigned, got %v", updated.UpdatedAt)
	}
	if updated.Body != "body" {
		t.Errorf("omitted fields must be preserved, Body = %q", updated.Body)
	}
}

func TestUpdate_ImageSemantics(t *testing.T) {
	repo := newStub()
	svc, _ := newService(repo)

	created, _ := svc.Create(context.Background(), artUC.CreateInput{
		Title: "pic", ImageURL: "https://blobs.example.com/articles/1_cat.png", AuthorID: "admin-1",
	}, entity.RoleAdmin)

	// nil はそのまま
	kept, err := svc.Update(context.Background(), created.ID, artUC.UpdateInput{}, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if kept.ImageURL != created.ImageURL {
		t.Errorf("nil image must preserve the stored URL, got %q", kept.ImageURL)
	}

	// 明示的な空文字はデフォルトに戻す
	empty := ""
	reset, err := svc.Update(context.Background(), created.ID, artUC.UpdateInput{ImageURL: &empty}, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if reset.ImageURL != entity.DefaultImageURL {
		t.Errorf("explicit empty image must reset to default, got %q", reset.ImageURL)
	}
}

func TestUpdate_NotFoundAndForbidden(t *testing.T) {
	svc, _ := newService(newStub())

	title := "x"
	if _, err := svc.Update(context.Background(), "missing", artUC.UpdateInput{Title: &title}, entity.RoleAdmin); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("missing id error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(context.Background(), "any", artUC.UpdateInput{Title: &title}, entity.RoleUser); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("user role error = %v, want ErrForbidden", err)
	}
}

/* ───────── Delete ───────── */

func TestDelete(t *testing.T) {
	repo := newStub()
	svc, _ := newService(repo)

	created, _ := svc.Create(context.Background(), artUC.CreateInput{
		Title: "bye", AuthorID: "admin-1",
	}, entity.RoleAdmin)

	if err := svc.Delete(context.Background(), created.ID, entity.RoleUser); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("user delete error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), created.ID, entity.RoleAdmin); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, entity.RoleAdmin); !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

/* ───────── AttachImage ───────── */

func TestAttachImage(t *testing.T) {
	svc, blobs := newService(newStub())

	url, err := svc.AttachImage(context.Background(), "cat.png",
		bytes.NewReader([]byte{0x89, 0x50}), entity.RoleAdmin)
	if err != nil {
		t.Fatalf("AttachImage: %v", err)
	}
	if len(blobs.uploaded) != 1 {
		t.Fatalf("uploads = %d, want 1", len(blobs.uploaded))
	}
	name := blobs.uploaded[0]
	if !strings.HasPrefix(name, "articles/") || !strings.HasSuffix(name, "_cat.png") {
		t.Errorf("blob name = %q, want articles/<millis>_cat.png", name)
	}
	if !strings.HasSuffix(url, name) {
		t.Errorf("url %q must reference the uploaded blob %q", url, name)
	}
}

func TestAttachImage_Forbidden(t *testing.T) {
	svc, blobs := newService(newStub())

	_, err := svc.AttachImage(context.Background(), "cat.png",
		bytes.NewReader(nil), entity.RoleUser)
	if !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
	if len(blobs.uploaded) != 0 {
		t.Error("no blob must be uploaded on a forbidden attach")
	}
}

func TestAttachImage_StripsDirectories(t *testing.T) {
	svc, blobs := newService(newStub())

	_, err := svc.AttachImage(context.Background(), "../../etc/passwd",
		bytes.NewReader([]byte("x")), entity.RoleAdmin)
	if err != nil {
		t.Fatalf("AttachImage: %v", err)
	}
	if !strings.HasSuffix(blobs.uploaded[0], "_passwd") || strings.Contains(blobs.uploaded[0], "..") {
		t.Errorf("blob name must contain only the base filename, got %q", blobs.uploaded[0])
	}
}
