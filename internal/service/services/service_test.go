package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ScheduleService/internal/service/services/models"
)

type fakeServiceRepo struct {
	services     []*domain.Service
	customFields []*domain.CustomField

	nextFieldID     int64
	appendedColumns []string
	upsertedColumns map[string]int
	replacedValues  map[int64]map[int64]string
}

func (f *fakeServiceRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	s.ID = int64(len(f.services) + 1)
	f.services = append(f.services, s)
	return s, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, serviceRepo.ErrServiceNotFound
}

func (f *fakeServiceRepo) List(_ context.Context) ([]*domain.Service, error) {
	return f.services, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, _ *domain.Service) error { return nil }

func (f *fakeServiceRepo) ReplaceCustomFieldValues(_ context.Context, serviceID int64, values map[int64]string) error {
	if f.replacedValues == nil {
		f.replacedValues = make(map[int64]map[int64]string)
	}
	f.replacedValues[serviceID] = values
	return nil
}

func (f *fakeServiceRepo) Delete(_ context.Context, _ int64) error { return nil }

func (f *fakeServiceRepo) ListCustomFields(_ context.Context) ([]*domain.CustomField, error) {
	return f.customFields, nil
}

func (f *fakeServiceRepo) CreateCustomField(_ context.Context, field *domain.CustomField) (*domain.CustomField, error) {
	f.nextFieldID++
	field.ID = f.nextFieldID
	f.customFields = append(f.customFields, field)
	return field, nil
}

func (f *fakeServiceRepo) GetColumnOrder(_ context.Context) ([]*domain.ColumnOrder, error) {
	return nil, nil
}

func (f *fakeServiceRepo) UpsertColumnPosition(_ context.Context, columnKey string, position int) error {
	if f.upsertedColumns == nil {
		f.upsertedColumns = make(map[string]int)
	}
	f.upsertedColumns[columnKey] = position
	return nil
}

func (f *fakeServiceRepo) AppendColumnIfMissing(_ context.Context, columnKey string) error {
	f.appendedColumns = append(f.appendedColumns, columnKey)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestFilterServices(t *testing.T) {
	catalog := []*domain.Service{
		{ID: 1, Name: "Стрижка мужская", CustomFields: map[int64]string{1: "30 минут"}},
		{ID: 2, Name: "Окрашивание", CustomFields: map[int64]string{1: "120 минут", 2: "Мастер Анна"}},
		{ID: 3, Name: "Маникюр", CustomFields: map[int64]string{}},
	}

	tests := []struct {
		name    string
		search  string
		wantIDs []int64
	}{
		{name: "by name", search: "стрижка", wantIDs: []int64{1}},
		{name: "case insensitive", search: "ОКРАШ", wantIDs: []int64{2}},
		{name: "by custom field value", search: "анна", wantIDs: []int64{2}},
		{name: "matches name and field", search: "мин", wantIDs: []int64{1, 2}},
		{name: "no matches", search: "педикюр", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterServices(catalog, tt.search)

			ids := make([]int64, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestCreate_UnknownFieldRejected(t *testing.T) {
	repo := &fakeServiceRepo{
		customFields: []*domain.CustomField{{ID: 1, Name: "Длительность"}},
	}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:              "Стрижка",
		Price:             1500,
		CustomFieldValues: map[int64]string{99: "значение"},
	})
	assert.ErrorIs(t, err, ErrFieldNotFound)
	assert.Empty(t, repo.services)
}

func TestCreate_SavesCustomFieldValues(t *testing.T) {
	repo := &fakeServiceRepo{
		customFields: []*domain.CustomField{{ID: 1, Name: "Длительность"}},
	}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateServiceRequest{
		Name:              "Стрижка",
		Price:             1500,
		Color:             "#ff0000",
		CustomFieldValues: map[int64]string{1: "30 минут"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Стрижка", resp.Name)
	assert.Equal(t, map[int64]string{1: "30 минут"}, repo.replacedValues[resp.ID])
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&fakeServiceRepo{}, &fakeTxManager{}, noopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateServiceRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateServiceRequest{Name: "Стрижка", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateCustomField_AppendsColumn(t *testing.T) {
	repo := &fakeServiceRepo{}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	resp, err := svc.CreateCustomField(context.Background(), &models.CreateCustomFieldRequest{Name: "Длительность"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	// Колонка нового поля дописана в конец порядка колонок
	assert.Equal(t, []string{domain.CustomFieldColumnKey(resp.ID)}, repo.appendedColumns)
}

func TestUpdateColumnOrder(t *testing.T) {
	repo := &fakeServiceRepo{}
	svc := NewService(repo, &fakeTxManager{}, noopLogger{})

	resp, err := svc.UpdateColumnOrder(context.Background(), &models.UpdateColumnOrderRequest{
		Columns: []string{"price", "name", "custom_1"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"price", "name", "custom_1"}, resp.Columns)
	// Позиции переписаны как 1..n в порядке запроса
	assert.Equal(t, map[string]int{"price": 1, "name": 2, "custom_1": 3}, repo.upsertedColumns)
}

func TestUpdateColumnOrder_Validation(t *testing.T) {
	svc := NewService(&fakeServiceRepo{}, &fakeTxManager{}, noopLogger{})

	_, err := svc.UpdateColumnOrder(context.Background(), &models.UpdateColumnOrderRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateColumnOrder(context.Background(), &models.UpdateColumnOrderRequest{
		Columns: []string{"name", "name"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
