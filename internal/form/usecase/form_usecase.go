package usecase

import (
	"time"

	formdomain "formdrop-backend/internal/form/domain"
	"formdrop-backend/internal/form/repository"
)

// formUsecase implements FormUsecase interface
type formUsecase struct {
	formRepo repository.FormRepository
}

// NewFormUsecase creates a new instance of formUsecase
func NewFormUsecase(formRepo repository.FormRepository) FormUsecase {
	return &formUsecase{
		formRepo: formRepo,
	}
}

func (u *formUsecase) CreateForm(userID, title string, uploadConfig formdomain.UploadConfig, designConfig formdomain.DesignConfig, accessLevel string, expiryDate *time.Time) (*formdomain.Form, error) {
	level := formdomain.AccessLevel(accessLevel)
	if level == "" {
		level = formdomain.AccessPublic
	}

	form := &formdomain.Form{
		UserID:       userID,
		Title:        title,
		UploadConfig: uploadConfig,
		DesignConfig: designConfig,
		AccessLevel:  level,
		ExpiryDate:   expiryDate,
	}

	if err := u.formRepo.Create(form); err != nil {
		return nil, err
	}

	return form, nil
}

func (u *formUsecase) GetUserForms(userID string) ([]*formdomain.Form, error) {
	return u.formRepo.FindByUserID(userID)
}

func (u *formUsecase) GetForm(userID, formID string) (*formdomain.Form, error) {
	form, err := u.ownedForm(userID, formID)
	if err != nil {
		return nil, err
	}
	return form, nil
}

func (u *formUsecase) UpdateForm(userID, formID string, updates FormUpdateRequest) (*formdomain.Form, error) {
	form, err := u.ownedForm(userID, formID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		form.Title = *updates.Title
	}
	if updates.UploadConfig != nil {
		form.UploadConfig = *updates.UploadConfig
	}
	if updates.DesignConfig != nil {
		form.DesignConfig = *updates.DesignConfig
	}
	if updates.AccessLevel != nil {
		form.AccessLevel = formdomain.AccessLevel(*updates.AccessLevel)
	}
	if updates.ExpiryDate != nil {
		form.ExpiryDate = updates.ExpiryDate
	}

	if err := u.formRepo.Update(form); err != nil {
		return nil, err
	}

	return form, nil
}

func (u *formUsecase) DeleteForm(userID, formID string) error {
	if _, err := u.ownedForm(userID, formID); err != nil {
		return err
	}
	return u.formRepo.Delete(formID)
}

func (u *formUsecase) GetPublicForm(formID string) (*formdomain.Form, error) {
	form, err := u.formRepo.FindByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, formdomain.ErrFormNotFound
	}
	if form.AccessLevel == formdomain.AccessClosed || form.Expired(time.Now()) {
		return nil, formdomain.ErrFormClosed
	}
	return form, nil
}

func (u *formUsecase) CloseExpiredForms(now time.Time) (int64, error) {
	return u.formRepo.CloseExpired(now)
}

func (u *formUsecase) ownedForm(userID, formID string) (*formdomain.Form, error) {
	form, err := u.formRepo.FindByID(formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, formdomain.ErrFormNotFound
	}
	if form.UserID != userID {
		return nil, formdomain.ErrForbidden
	}
	return form, nil
}
