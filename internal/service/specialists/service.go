package specialists

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	specialistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/specialist"
	"github.com/m04kA/SMC-ScheduleService/internal/service/specialists/models"
)

// Service сервис для работы с сотрудниками
type Service struct {
	specialistRepo SpecialistRepository
	fileStorage    FileStorage
	logger         Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(specialistRepo SpecialistRepository, fileStorage FileStorage, logger Logger) *Service {
	return &Service{
		specialistRepo: specialistRepo,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

// List получает список сотрудников, опционально фильтруя по подстроке имени
func (s *Service) List(ctx context.Context, search *string) (*models.SpecialistListResponse, error) {
	s.logger.Info("List: fetching specialists, search=%v", search)

	specialists, err := s.specialistRepo.List(ctx, search)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpecialists(specialists), nil
}

// GetByID получает сотрудника по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SpecialistResponse, error) {
	s.logger.Info("GetByID: fetching specialist id=%d", id)

	specialist, err := s.specialistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			s.logger.Warn("GetByID: specialist id=%d not found", id)
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("GetByID: repository error for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpecialist(specialist), nil
}

// Create создает нового сотрудника
func (s *Service) Create(ctx context.Context, req *models.CreateSpecialistRequest) (*models.SpecialistResponse, error) {
	s.logger.Info("Create: creating specialist %q %q", req.FirstName, req.LastName)

	if err := validateName(req.FirstName, req.LastName); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	specialist := &domain.Specialist{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	created, err := s.specialistRepo.Create(ctx, specialist)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created specialist id=%d", created.ID)
	return models.FromDomainSpecialist(created), nil
}

// Update обновляет данные сотрудника
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateSpecialistRequest) (*models.SpecialistResponse, error) {
	s.logger.Info("Update: updating specialist id=%d", id)

	if err := validateName(req.FirstName, req.LastName); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	specialist, err := s.specialistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			s.logger.Warn("Update: specialist id=%d not found", id)
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("Update: repository error for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	specialist.FirstName = strings.TrimSpace(req.FirstName)
	specialist.LastName = strings.TrimSpace(req.LastName)

	if err := s.specialistRepo.Update(ctx, specialist); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("Update: repository error for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated specialist id=%d", id)
	return models.FromDomainSpecialist(specialist), nil
}

// UploadPhoto сохраняет файл фото и привязывает его к сотруднику
func (s *Service) UploadPhoto(ctx context.Context, id int64, originalName string, content io.Reader) (*models.SpecialistResponse, error) {
	s.logger.Info("UploadPhoto: uploading photo for specialist id=%d, file=%q", id, originalName)

	specialist, err := s.specialistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			s.logger.Warn("UploadPhoto: specialist id=%d not found", id)
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("UploadPhoto: repository error for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UploadPhoto - repository error: %v", ErrInternal, err)
	}

	publicURL, err := s.fileStorage.Save(ctx, originalName, content)
	if err != nil {
		s.logger.Error("UploadPhoto: failed to save file for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UploadPhoto - failed to save file: %v", ErrInternal, err)
	}

	if err := s.specialistRepo.UpdatePhotoURL(ctx, id, publicURL); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			return nil, ErrSpecialistNotFound
		}
		s.logger.Error("UploadPhoto: failed to update photo url for specialist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UploadPhoto - failed to update photo url: %v", ErrInternal, err)
	}

	specialist.PhotoURL = &publicURL

	s.logger.Info("UploadPhoto: successfully uploaded photo for specialist id=%d", id)
	return models.FromDomainSpecialist(specialist), nil
}

// Delete удаляет сотрудника вместе с его бронями (каскадно в БД)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting specialist id=%d", id)

	if err := s.specialistRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			s.logger.Warn("Delete: specialist id=%d not found", id)
			return ErrSpecialistNotFound
		}
		s.logger.Error("Delete: repository error for specialist id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted specialist id=%d", id)
	return nil
}

// validateName проверяет имя и фамилию сотрудника
func validateName(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(firstName) > domain.MaxFirstNameLength {
		return fmt.Errorf("%w: firstName is too long", ErrInvalidInput)
	}
	if utf8.RuneCountInString(lastName) > domain.MaxLastNameLength {
		return fmt.Errorf("%w: lastName is too long", ErrInvalidInput)
	}
	return nil
}
