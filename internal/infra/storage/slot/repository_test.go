package slot

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const migrationPath = "../../../../migrations/001_init.up.sql"

// openTestDB подключается к PostgreSQL из TEST_DATABASE_DSN и накатывает схему
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile(migrationPath)
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	return db
}

func createSlot(t *testing.T, db *sql.DB, repo *Repository, capacity int) int64 {
	t.Helper()

	var serviceID int64
	err := db.QueryRow(`INSERT INTO services (provider_id, name) VALUES (1, 'test') RETURNING id`).Scan(&serviceID)
	require.NoError(t, err)

	inserted, err := repo.CreateBatch(context.Background(), []domain.Slot{{
		ServiceID:       serviceID,
		Date:            time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("09:00"),
		EndTime:         types.TimeString("09:30"),
		DurationMinutes: 30,
		MaxConcurrent:   capacity,
		IsAvailable:     true,
	}})
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	slots, err := repo.ListByServiceAndDate(context.Background(), serviceID,
		time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC), false)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	return slots[0].ID
}

func TestReserve_ConcurrentNeverExceedsCapacity(t *testing.T) {
	db := openTestDB(t)
	wrapped := dbmetrics.Wrap(db, nil, "test")
	repo := NewRepository(wrapped)
	txMgr := txmanager.NewTransactionManager(wrapped)

	for _, capacity := range []int{1, 3} {
		slotID := createSlot(t, db, repo, capacity)

		const attempts = 10
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			rejected  int
		)

		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := txMgr.Do(context.Background(), func(ctx context.Context) error {
					_, err := repo.Reserve(ctx, slotID)
					return err
				})

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, ErrSlotNotAvailable):
					rejected++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, capacity, succeeded)
		assert.Equal(t, attempts-capacity, rejected)

		got, err := repo.GetByID(context.Background(), slotID)
		require.NoError(t, err)
		assert.Equal(t, capacity, got.CurrentCount)
		assert.False(t, got.IsAvailable)
	}
}

func TestRelease_NotBelowZero(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))
	slotID := createSlot(t, db, repo, 2)

	reserved, err := repo.Reserve(context.Background(), slotID)
	require.NoError(t, err)
	assert.Equal(t, 1, reserved.CurrentCount)
	assert.True(t, reserved.IsAvailable)

	for i := 0; i < 2; i++ {
		released, err := repo.Release(context.Background(), slotID)
		require.NoError(t, err)
		assert.Equal(t, 0, released.CurrentCount)
		assert.True(t, released.IsAvailable)
	}
}

func TestDeleteUnbookedByArrangement_KeepsSlotsWithHistory(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(dbmetrics.Wrap(db, nil, "test"))
	ctx := context.Background()

	var serviceID, templateID, arrangementID int64
	require.NoError(t, db.QueryRow(`INSERT INTO services (provider_id, name) VALUES (1, 'test') RETURNING id`).Scan(&serviceID))
	require.NoError(t, db.QueryRow(`INSERT INTO templates (provider_id, name) VALUES (1, 'test') RETURNING id`).Scan(&templateID))
	require.NoError(t, db.QueryRow(`
		INSERT INTO arrangements (service_id, template_id, arrangement_index, start_date, repeat_times, repeat_interval_weeks)
		VALUES ($1, $2, 1, '2030-01-07', 1, 1) RETURNING id`, serviceID, templateID).Scan(&arrangementID))

	date := time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)
	slots := make([]domain.Slot, 0, 3)
	for _, start := range []string{"09:00", "09:30", "10:00"} {
		begin := types.TimeString(start)
		end, err := begin.AddMinutes(30)
		require.NoError(t, err)
		slots = append(slots, domain.Slot{
			ServiceID:       serviceID,
			ArrangementID:   &arrangementID,
			Date:            date,
			StartTime:       begin,
			EndTime:         end,
			DurationMinutes: 30,
			MaxConcurrent:   1,
			IsAvailable:     true,
		})
	}
	inserted, err := repo.CreateBatch(ctx, slots)
	require.NoError(t, err)
	require.Equal(t, 3, inserted)

	created, err := repo.ListByServiceAndDate(ctx, serviceID, date, false)
	require.NoError(t, err)
	require.Len(t, created, 3)

	// Первый слот занят, на втором была запись, которую отменили
	_, err = repo.Reserve(ctx, created[0].ID)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO appointments (user_id, service_id, slot_id, status) VALUES (1, $1, $2, 'pending')`,
		serviceID, created[0].ID)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO appointments (user_id, service_id, slot_id, status) VALUES (2, $1, $2, 'cancelled')`,
		serviceID, created[1].ID)
	require.NoError(t, err)

	deleted, err := repo.DeleteUnbookedByArrangement(ctx, arrangementID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	left, err := repo.ListByServiceAndDate(ctx, serviceID, date, false)
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, created[0].ID, left[0].ID)
	assert.Equal(t, created[1].ID, left[1].ID)

	deleted, err = repo.DeleteUnbookedByTemplate(ctx, templateID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}
