package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"
)

type fakeTx struct{}

func (fakeTx) ExecContext(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeBeginner struct {
	beginErr error
	begins   int
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begins++
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return fakeTx{}, nil
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	// Конфликт сериализации на каждой попытке
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return &pq.Error{Code: "40001"}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailure)
	// Инфраструктурный сентинел не подмешивается - исчерпание повторов
	// не должно выглядеть как внутренняя ошибка
	assert.False(t, errors.Is(err, ErrTxFailed))
	assert.Equal(t, 3, beginner.begins)
}

func TestDoSerializable_RetrySucceeds(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 2 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_BeginFailure(t *testing.T) {
	beginner := &fakeBeginner{beginErr: errors.New("connection refused")}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTxFailed)
	// Отказ инфраструктуры не маскируется под конфликт повторяемых записей
	assert.False(t, errors.Is(err, ErrSerializationFailure))
}

func TestDoSerializable_BusinessErrorPassesThrough(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	sentinel := errors.New("slot conflict")
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	// Бизнес-ошибка не повторяется
	assert.Equal(t, 1, beginner.begins)
}

func TestDo_PutsExecutorIntoContext(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)
}
