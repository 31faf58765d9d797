package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"labtrack/internal/domain/labtest"
	"labtrack/internal/infrastructure/database"
)

const testColumns = `Test_Id, Product, Device_Id, Board_Version, Firmware, Profile,
	Test_Engineer, Power_Source, Pump_Type, Pump_Id`

type testRepository struct {
	db *database.DB
}

// NewTestRepository creates a repository over the device test table
func NewTestRepository(db *database.DB) labtest.Repository {
	return &testRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTest(s rowScanner) (labtest.Test, error) {
	var t labtest.Test
	err := s.Scan(&t.ID, &t.Product, &t.DeviceID, &t.BoardVersion, &t.Firmware, &t.Profile,
		&t.TestEngineer, &t.PowerSource, &t.PumpType, &t.PumpID)
	return t, err
}

func (r *testRepository) List(ctx context.Context) ([]labtest.Test, error) {
	return r.list(ctx, `SELECT `+testColumns+` FROM tableoftestsv1 ORDER BY Test_Id`)
}

func (r *testRepository) ListByProduct(ctx context.Context, product string) ([]labtest.Test, error) {
	return r.list(ctx, `SELECT `+testColumns+` FROM tableoftestsv1 WHERE Product = ? ORDER BY Test_Id`, product)
}

func (r *testRepository) GetByID(ctx context.Context, id int64) (*labtest.Test, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT `+testColumns+` FROM tableoftestsv1 WHERE Test_Id = ?`), id)

	t, err := scanTest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, labtest.ErrTestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select test: %w", err)
	}
	return &t, nil
}

func (r *testRepository) list(ctx context.Context, query string, args ...any) ([]labtest.Test, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	defer rows.Close()

	tests := []labtest.Test{}
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan test: %w", err)
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
