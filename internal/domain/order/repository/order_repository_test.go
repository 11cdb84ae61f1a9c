package repository

import (
	"context"
	"errors"
	"testing"
	"time"
	"topup_store/internal/domain/order/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

// 所有带默认值的字段在测试里显式赋值，让 gorm 走普通 INSERT 而不是 RETURNING
func testOrder() *model.Order {
	now := time.Now()
	o := &model.Order{
		OrderNumber:          "NS-1724900000000-abcd1234",
		UserID:               "0b9f2a9e-7f71-4c80-9d2e-111111111111",
		TotalAmount:          200,
		OrderStatus:          model.OrderStatusPending,
		PaymentMethod:        model.PaymentMethodQR,
		PaymentStatus:        model.PaymentStatusPending,
		DeliveryStatus:       model.DeliveryStatusPending,
		CustomerPhone:        "9801234567",
		PaymentScreenshotURL: "https://cdn.example.com/payment-proofs/u1/x.jpg",
	}
	o.ID = "5f6a1f70-3c2a-4f4b-8e2d-222222222222"
	o.CreatedAt = now
	o.UpdatedAt = now
	return o
}

func testItem() *model.OrderItem {
	now := time.Now()
	item := &model.OrderItem{
		ProductID: "93d1cf32-9a0b-4bb6-9e55-333333333333",
		Quantity:  2,
		Price:     100,
	}
	item.ID = "7a8b9c0d-1e2f-4a3b-8c4d-444444444444"
	item.CreatedAt = now
	item.UpdatedAt = now
	return item
}

func TestCreateWithItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Order and item committed together", func(t *testing.T) {
		gdb, mock := setupMockDB(t)
		repo := NewOrderRepository(gdb)

		order := testOrder()
		item := testItem()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateWithItem(ctx, order, item)

		assert.NoError(t, err)
		assert.Equal(t, order.ID, item.OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Item failure rolls back the order", func(t *testing.T) {
		gdb, mock := setupMockDB(t)
		repo := NewOrderRepository(gdb)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		err := repo.CreateWithItem(ctx, testOrder(), testItem())

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Writes main status and both sub-statuses in one UPDATE", func(t *testing.T) {
		gdb, mock := setupMockDB(t)
		repo := NewOrderRepository(gdb)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).
			WithArgs(
				model.DeliveryStatusPending,
				model.OrderStatusApproved,
				model.PaymentStatusApproved,
				sqlmock.AnyArg(), // updated_at
				"o1",
			).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows, err := repo.UpdateStatus(ctx, "o1",
			model.OrderStatusApproved, model.PaymentStatusApproved, model.DeliveryStatusPending)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown id affects zero rows", func(t *testing.T) {
		gdb, mock := setupMockDB(t)
		repo := NewOrderRepository(gdb)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rows, err := repo.UpdateStatus(ctx, "missing",
			model.OrderStatusCompleted, model.PaymentStatusApproved, model.DeliveryStatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
