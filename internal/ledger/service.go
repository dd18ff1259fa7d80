package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service — единственная точка входа для всех денежных вычислений
// центра. Раньше расчёт долга и распределение платежей дублировались
// на каждом экране; теперь экраны только вызывают этот сервис.
type Service struct {
	db    *gorm.DB
	rdb   *redis.Client // nil — кэширование отключено
	locks *pairLocks
}

func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		db:    db,
		rdb:   rdb,
		locks: newPairLocks(),
	}
}

// DB отдаёт соединение для read-only запросов обработчиков (списки,
// пагинация). Мутации проходят только через методы сервиса.
func (s *Service) DB() *gorm.DB { return s.db }

const (
	lockTimeout  = 5 * time.Second
	txMaxRetries = 3
)

// pairLocks сериализует мутации по ключу "student:group". Пространство
// ключей ограничено парами зачислений, записи не удаляются.
type pairLocks struct {
	mu sync.Mutex
	m  map[string]chan struct{}
}

func newPairLocks() *pairLocks {
	return &pairLocks{m: make(map[string]chan struct{})}
}

func pairKey(studentID, groupID uint) string {
	return fmt.Sprintf("%d:%d", studentID, groupID)
}

func (l *pairLocks) sem(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.m[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.m[key] = ch
	}
	return ch
}

// acquire берёт блокировку пары либо возвращает ErrConcurrencyConflict
// по таймауту. Проигравший гонку увидит уже свежие данные, а не тот
// снимок, который проверял до блокировки.
func (l *pairLocks) acquire(ctx context.Context, key string) error {
	timer := time.NewTimer(lockTimeout)
	defer timer.Stop()
	select {
	case l.sem(key) <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrConcurrencyConflict
	case <-ctx.Done():
		return ErrConcurrencyConflict
	}
}

func (l *pairLocks) release(key string) {
	<-l.sem(key)
}

// acquireAll берёт несколько блокировок в детерминированном порядке,
// чтобы два встречных перевода не взяли их крест-накрест.
func (l *pairLocks) acquireAll(ctx context.Context, keys []string) ([]string, error) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	taken := make([]string, 0, len(sorted))
	for _, k := range sorted {
		if err := l.acquire(ctx, k); err != nil {
			for _, t := range taken {
				l.release(t)
			}
			return nil, err
		}
		taken = append(taken, k)
	}
	return taken, nil
}

func (l *pairLocks) releaseAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.release(keys[i])
	}
}

// runInTx выполняет fn в транзакции с ограниченным числом повторов
// при сбоях сериализации Postgres (SQLSTATE 40001/40P01).
func (s *Service) runInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < txMaxRetries; attempt++ {
		err = s.db.WithContext(ctx).Transaction(fn)
		if err == nil || !retryableDBError(err) {
			return err
		}
		slog.Warn("транзакция не сериализовалась, повтор", "attempt", attempt+1, "error", err)
	}
	return ErrConcurrencyConflict
}

func retryableDBError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// Ключи кэша Redis. Обработчики читают по этим же ключам, сервис
// сбрасывает их после каждой мутации затронутых месяцев.

func ReportCacheKey(month Month) string {
	return "report:monthly:" + month.String()
}

func SalaryPreviewCacheKey(teacherID uint, month Month) string {
	return fmt.Sprintf("salary:preview:%d:%s", teacherID, month)
}

func (s *Service) invalidateCaches(ctx context.Context, teacherID uint, months ...Month) {
	if s.rdb == nil {
		return
	}
	keys := make([]string, 0, len(months)*2)
	for _, m := range months {
		keys = append(keys, ReportCacheKey(m))
		if teacherID != 0 {
			keys = append(keys, SalaryPreviewCacheKey(teacherID, m))
		}
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("не удалось сбросить кэш", "keys", keys, "error", err)
	}
}
