package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

// Service сервис для работы с каталогом услуг: сами услуги,
// пользовательские поля и порядок колонок таблицы
type Service struct {
	serviceRepo ServiceRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога услуг
func NewService(serviceRepo ServiceRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// List получает услуги, опционально фильтруя по подстроке названия
// или значения пользовательского поля (регистронезависимо).
// Каталог небольшой, фильтрация в памяти.
func (s *Service) List(ctx context.Context, search *string) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, search=%v", search)

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	if search != nil && *search != "" {
		services = filterServices(services, *search)
	}

	return models.FromDomainServices(services), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%d", id)

	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// Create создает услугу вместе со значениями пользовательских полей
// в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service %q", req.Name)

	if err := validateService(req.Name, req.Price); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if err := s.validateFieldIDs(ctx, req.CustomFieldValues); err != nil {
		return nil, err
	}

	service := &domain.Service{
		Name:         strings.TrimSpace(req.Name),
		Price:        req.Price,
		Color:        req.Color,
		CustomFields: req.CustomFieldValues,
	}
	if service.CustomFields == nil {
		service.CustomFields = make(map[int64]string)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.serviceRepo.Create(txCtx, service)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		if err := s.serviceRepo.ReplaceCustomFieldValues(txCtx, created.ID, service.CustomFields); err != nil {
			return fmt.Errorf("%w: Create - failed to save custom field values: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Create: %v", err)
		return nil, err
	}

	s.logger.Info("Create: successfully created service id=%d", service.ID)
	return models.FromDomainService(service), nil
}

// Update обновляет услугу; значения пользовательских полей заменяются целиком
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	if err := validateService(req.Name, req.Price); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.validateFieldIDs(ctx, req.CustomFieldValues); err != nil {
		return nil, err
	}

	service := &domain.Service{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Price:        req.Price,
		Color:        req.Color,
		CustomFields: req.CustomFieldValues,
	}
	if service.CustomFields == nil {
		service.CustomFields = make(map[int64]string)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.serviceRepo.Update(txCtx, service); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if err := s.serviceRepo.ReplaceCustomFieldValues(txCtx, id, service.CustomFields); err != nil {
			return fmt.Errorf("%w: Update - failed to replace custom field values: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
		} else {
			s.logger.Error("Update: %v", err)
		}
		return nil, err
	}

	s.logger.Info("Update: successfully updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// Delete удаляет услугу; значения полей и ссылки из броней каскадно в БД
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting service id=%d", id)

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted service id=%d", id)
	return nil
}

// ListCustomFields получает определения пользовательских полей
func (s *Service) ListCustomFields(ctx context.Context) (*models.CustomFieldListResponse, error) {
	s.logger.Info("ListCustomFields: fetching custom fields")

	fields, err := s.serviceRepo.ListCustomFields(ctx)
	if err != nil {
		s.logger.Error("ListCustomFields: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCustomFields - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomFields(fields), nil
}

// CreateCustomField создает пользовательское поле и добавляет его колонку
// в конец порядка колонок (одна транзакция)
func (s *Service) CreateCustomField(ctx context.Context, req *models.CreateCustomFieldRequest) (*models.CustomFieldResponse, error) {
	s.logger.Info("CreateCustomField: creating custom field %q", req.Name)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomFieldNameLength {
		return nil, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	field := &domain.CustomField{Name: name}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.serviceRepo.CreateCustomField(txCtx, field)
		if err != nil {
			return fmt.Errorf("%w: CreateCustomField - repository error: %v", ErrInternal, err)
		}

		if err := s.serviceRepo.AppendColumnIfMissing(txCtx, domain.CustomFieldColumnKey(created.ID)); err != nil {
			return fmt.Errorf("%w: CreateCustomField - failed to append column: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("CreateCustomField: %v", err)
		return nil, err
	}

	s.logger.Info("CreateCustomField: successfully created custom field id=%d", field.ID)
	return models.FromDomainCustomField(field), nil
}

// GetColumnOrder получает порядок колонок таблицы услуг
func (s *Service) GetColumnOrder(ctx context.Context) (*models.ColumnOrderResponse, error) {
	s.logger.Info("GetColumnOrder: fetching column order")

	columns, err := s.serviceRepo.GetColumnOrder(ctx)
	if err != nil {
		s.logger.Error("GetColumnOrder: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetColumnOrder - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainColumnOrder(columns), nil
}

// UpdateColumnOrder транзакционно переписывает позиции колонок 1..n
// в порядке запроса
func (s *Service) UpdateColumnOrder(ctx context.Context, req *models.UpdateColumnOrderRequest) (*models.ColumnOrderResponse, error) {
	s.logger.Info("UpdateColumnOrder: updating column order, %d columns", len(req.Columns))

	if len(req.Columns) == 0 {
		return nil, fmt.Errorf("%w: columns are required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(req.Columns))
	for _, key := range req.Columns {
		if key == "" {
			return nil, fmt.Errorf("%w: empty column key", ErrInvalidInput)
		}
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: duplicate column key %q", ErrInvalidInput, key)
		}
		seen[key] = struct{}{}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for i, key := range req.Columns {
			if err := s.serviceRepo.UpsertColumnPosition(txCtx, key, i+1); err != nil {
				return fmt.Errorf("%w: UpdateColumnOrder - failed to upsert %q: %v", ErrInternal, key, err)
			}
		}
		return nil
	})

	if err != nil {
		s.logger.Error("UpdateColumnOrder: %v", err)
		return nil, err
	}

	s.logger.Info("UpdateColumnOrder: successfully updated column order")
	return &models.ColumnOrderResponse{Columns: req.Columns}, nil
}

// validateFieldIDs проверяет, что все указанные поля существуют
func (s *Service) validateFieldIDs(ctx context.Context, values map[int64]string) error {
	if len(values) == 0 {
		return nil
	}

	fields, err := s.serviceRepo.ListCustomFields(ctx)
	if err != nil {
		s.logger.Error("validateFieldIDs: repository error: %v", err)
		return fmt.Errorf("%w: failed to list custom fields: %v", ErrInternal, err)
	}

	known := make(map[int64]struct{}, len(fields))
	for _, f := range fields {
		known[f.ID] = struct{}{}
	}

	for fieldID := range values {
		if _, ok := known[fieldID]; !ok {
			s.logger.Warn("validateFieldIDs: custom field id=%d not found", fieldID)
			return fmt.Errorf("%w: id=%d", ErrFieldNotFound, fieldID)
		}
	}

	return nil
}

// validateService проверяет основные поля услуги
func validateService(name string, price float64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

// filterServices фильтрует услуги по подстроке названия или значения
// пользовательского поля
func filterServices(services []*domain.Service, search string) []*domain.Service {
	needle := strings.ToLower(search)

	filtered := make([]*domain.Service, 0, len(services))
	for _, svc := range services {
		if strings.Contains(strings.ToLower(svc.Name), needle) {
			filtered = append(filtered, svc)
			continue
		}
		for _, value := range svc.CustomFields {
			if strings.Contains(strings.ToLower(value), needle) {
				filtered = append(filtered, svc)
				break
			}
		}
	}
	return filtered
}
