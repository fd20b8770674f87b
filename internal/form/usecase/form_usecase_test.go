package usecase

import (
	"testing"
	"time"

	formdomain "formdrop-backend/internal/form/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFormRepo struct {
	forms   map[string]*formdomain.Form
	deleted []string
	closed  int64
}

func newFakeFormRepo(forms ...*formdomain.Form) *fakeFormRepo {
	repo := &fakeFormRepo{forms: map[string]*formdomain.Form{}}
	for _, f := range forms {
		repo.forms[f.ID] = f
	}
	return repo
}

func (f *fakeFormRepo) Create(form *formdomain.Form) error {
	if form.ID == "" {
		form.ID = "generated-id"
	}
	f.forms[form.ID] = form
	return nil
}

func (f *fakeFormRepo) FindByID(id string) (*formdomain.Form, error) { return f.forms[id], nil }

func (f *fakeFormRepo) FindByUserID(userID string) ([]*formdomain.Form, error) {
	var out []*formdomain.Form
	for _, form := range f.forms {
		if form.UserID == userID {
			out = append(out, form)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) Update(form *formdomain.Form) error { f.forms[form.ID] = form; return nil }

func (f *fakeFormRepo) Delete(id string) error {
	delete(f.forms, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeFormRepo) CloseExpired(now time.Time) (int64, error) { return f.closed, nil }

func ownedForm() *formdomain.Form {
	return &formdomain.Form{
		ID:          "form-1",
		UserID:      "owner-1",
		Title:       "Photo Contest",
		AccessLevel: formdomain.AccessPublic,
	}
}

func TestCreateFormDefaultsToPublic(t *testing.T) {
	uc := NewFormUsecase(newFakeFormRepo())

	form, err := uc.CreateForm("owner-1", "Photo Contest", formdomain.UploadConfig{}, nil, "", nil)

	require.NoError(t, err)
	assert.Equal(t, formdomain.AccessPublic, form.AccessLevel)
	assert.Equal(t, "owner-1", form.UserID)
}

func TestGetFormEnforcesOwnership(t *testing.T) {
	uc := NewFormUsecase(newFakeFormRepo(ownedForm()))

	form, err := uc.GetForm("owner-1", "form-1")
	require.NoError(t, err)
	assert.Equal(t, "Photo Contest", form.Title)

	_, err = uc.GetForm("intruder", "form-1")
	assert.ErrorIs(t, err, formdomain.ErrForbidden)

	_, err = uc.GetForm("owner-1", "missing")
	assert.ErrorIs(t, err, formdomain.ErrFormNotFound)
}

func TestUpdateFormAppliesPartialUpdates(t *testing.T) {
	uc := NewFormUsecase(newFakeFormRepo(ownedForm()))

	newTitle := "Renamed"
	closed := string(formdomain.AccessClosed)
	form, err := uc.UpdateForm("owner-1", "form-1", FormUpdateRequest{
		Title:       &newTitle,
		AccessLevel: &closed,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", form.Title)
	assert.Equal(t, formdomain.AccessClosed, form.AccessLevel)
}

func TestUpdateFormForbiddenForNonOwner(t *testing.T) {
	uc := NewFormUsecase(newFakeFormRepo(ownedForm()))

	newTitle := "Renamed"
	_, err := uc.UpdateForm("intruder", "form-1", FormUpdateRequest{Title: &newTitle})

	assert.ErrorIs(t, err, formdomain.ErrForbidden)
}

func TestDeleteFormEnforcesOwnership(t *testing.T) {
	repo := newFakeFormRepo(ownedForm())
	uc := NewFormUsecase(repo)

	assert.ErrorIs(t, uc.DeleteForm("intruder", "form-1"), formdomain.ErrForbidden)
	assert.Empty(t, repo.deleted)

	require.NoError(t, uc.DeleteForm("owner-1", "form-1"))
	assert.Equal(t, []string{"form-1"}, repo.deleted)
}

func TestGetPublicForm(t *testing.T) {
	form := ownedForm()
	uc := NewFormUsecase(newFakeFormRepo(form))

	got, err := uc.GetPublicForm("form-1")
	require.NoError(t, err)
	assert.Equal(t, "form-1", got.ID)

	_, err = uc.GetPublicForm("missing")
	assert.ErrorIs(t, err, formdomain.ErrFormNotFound)
}

func TestGetPublicFormClosed(t *testing.T) {
	form := ownedForm()
	form.AccessLevel = formdomain.AccessClosed
	uc := NewFormUsecase(newFakeFormRepo(form))

	_, err := uc.GetPublicForm("form-1")

	assert.ErrorIs(t, err, formdomain.ErrFormClosed)
}

func TestGetPublicFormExpired(t *testing.T) {
	form := ownedForm()
	past := time.Now().Add(-time.Minute)
	form.ExpiryDate = &past
	uc := NewFormUsecase(newFakeFormRepo(form))

	_, err := uc.GetPublicForm("form-1")

	assert.ErrorIs(t, err, formdomain.ErrFormClosed)
}
