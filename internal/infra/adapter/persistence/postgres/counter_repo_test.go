package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"personal-site/internal/domain/entity"
	pg "personal-site/internal/infra/adapter/persistence/postgres"
)

func counterValueRows(raw string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"value"}).AddRow([]byte(raw))
}

func TestCounterRepo_Increment_ExistingValue(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(counterValueRows(`41`))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE counters SET value")).
		WithArgs("visits", []byte(`42`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewCounterRepo(db)
	got, err := repo.Increment(context.Background())
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if got != 42 {
		t.Errorf("Increment = %d, want 42", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCounterRepo_Increment_AbsentCreatesWithOne(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO counters")).
		WithArgs("visits").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewCounterRepo(db)
	got, err := repo.Increment(context.Background())
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if got != 1 {
		t.Errorf("Increment on absent counter = %d, want 1", got)
	}
}

func TestCounterRepo_Increment_CorruptValueResets(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// 数値でない値は破損として扱い、型エラーを伝播せず 1 から数え直す
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(counterValueRows(`"oops"`))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE counters SET value")).
		WithArgs("visits", []byte(`1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewCounterRepo(db)
	got, err := repo.Increment(context.Background())
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if got != 1 {
		t.Errorf("Increment on corrupt counter = %d, want 1", got)
	}
}

func TestCounterRepo_Read_DefaultsToOne(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	repo := pg.NewCounterRepo(db)
	got, err := repo.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != 1 {
		t.Errorf("Read on absent counter = %d, want 1", got)
	}
}

func TestCounterRepo_Read_NeverWrites(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// SELECT のみを期待し、それ以外の文が発行されたら失敗する
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(counterValueRows(`7`))

	repo := pg.NewCounterRepo(db)
	got, err := repo.Read(context.Background())
	if err != nil || got != 7 {
		t.Fatalf("Read = (%d, %v), want (7, nil)", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCounterRepo_Increment_CreateRaceRetriesAsUpdate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// 二つのトランザクションが不在のカウンタを同時に作ろうとすると、
	// 負けた側の INSERT は一意制約違反になる。リトライで行を読み直す。
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO counters")).
		WithArgs("visits").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(counterValueRows(`1`))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE counters SET value")).
		WithArgs("visits", []byte(`2`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewCounterRepo(db)
	got, err := repo.Increment(context.Background())
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if got != 2 {
		t.Errorf("Increment after lost create race = %d, want 2", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCounterRepo_Increment_SerializationConflictRetries(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(counterValueRows(`5`))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE counters SET value")).
		WithArgs("visits", []byte(`6`)).
		WillReturnError(&pgconn.PgError{Code: "40001"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
		WithArgs("visits").
		WillReturnRows(counterValueRows(`6`))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE counters SET value")).
		WithArgs("visits", []byte(`7`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewCounterRepo(db)
	got, err := repo.Increment(context.Background())
	if err != nil {
		t.Fatalf("Increment: %v", err)
	}
	if got != 7 {
		t.Errorf("Increment after serialization conflict = %d, want 7", got)
	}
}

func TestCounterRepo_Increment_ExhaustedRetriesIsStoreConflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	for i := 0; i < 5; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM counters")).
			WithArgs("visits").
			WillReturnRows(counterValueRows(`5`))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE counters SET value")).
			WithArgs("visits", []byte(`6`)).
			WillReturnError(&pgconn.PgError{Code: "40001"})
		mock.ExpectRollback()
	}

	repo := pg.NewCounterRepo(db)
	_, err := repo.Increment(context.Background())
	if !errors.Is(err, entity.ErrStoreConflict) {
		t.Errorf("error = %v, want ErrStoreConflict", err)
	}
}

func TestCounterRepo_Increment_ConnectionFailureIsStoreUnavailable(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin().WillReturnError(context.DeadlineExceeded)

	repo := pg.NewCounterRepo(db)
	_, err := repo.Increment(context.Background())
	if !errors.Is(err, entity.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}
