package order

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateForProduct_CommitsBothWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price, offer FROM products").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"price", "offer"}).
			AddRow(100.0, []byte(`{"type":"flat","flatDiscount":20}`)))
	mock.ExpectQuery("INSERT INTO orders").WithArgs(7, 1, 100.0, 80.0, 80.0).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(42))
	mock.ExpectExec("UPDATE products SET in_cart = TRUE").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ord, err := repo.CreateForProduct(7)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if ord.ID != 42 || ord.Quantity != 1 {
		t.Fatalf("unexpected order %+v", ord)
	}
	if ord.OriginalPrice != 100 || ord.OfferedPrice != 80 || ord.TotalPrice != 80 {
		t.Fatalf("unexpected prices %+v", ord)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// If the cart-flag update fails after the order insert, the transaction rolls
// back and nothing persists.
func TestCreateForProduct_RollsBackWhenFlagUpdateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price, offer FROM products").WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"price", "offer"}).AddRow(100.0, nil))
	mock.ExpectQuery("INSERT INTO orders").WithArgs(7, 1, 100.0, 100.0, 100.0).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(42))
	mock.ExpectExec("UPDATE products SET in_cart = TRUE").WithArgs(7).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if _, err := repo.CreateForProduct(7); err == nil {
		t.Fatal("expected an error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateForProduct_ProductMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT price, offer FROM products").WithArgs(7).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if _, err := repo.CreateForProduct(7); err != ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteByProductID_CommitsBothWrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM orders").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE products SET in_cart = FALSE").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteByProductID(7); err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteByProductID_NoMatchingOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM orders").WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.DeleteByProductID(7); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders").WithArgs(3, 240.0, 300.0, 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.UpdateQuantity(9, 3, 240, 300); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTotals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"total", "units", "original"}).AddRow(230.0, 3, 300.0))

	totals, err := repo.Totals()
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if totals.TotalAmount != 230 || totals.TotalUnits != 3 || totals.OriginalPrice != 300 {
		t.Fatalf("unexpected totals %+v", totals)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
