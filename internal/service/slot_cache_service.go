package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"clinic-admin/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	// RedisSlotKeyPrefix prefixes per doctor, per day slot keys: slots:{doctor}:{yyyy-mm-dd}
	RedisSlotKeyPrefix = "slots:"

	// RedisSlotGenerationPrefix prefixes the per doctor invalidation counter.
	RedisSlotGenerationPrefix = "slots-gen:"

	// dayOffMarker is cached for dates the doctor does not work.
	dayOffMarker = "-"

	slotDateLayout = "2006-01-02"

	// Timeout for individual Redis operations
	redisSlotTimeout = 2 * time.Second

	scanBatchSize = 200
)

// storeIfGenerationScript writes the slot keys only while the doctor's
// generation still equals the one read before loading. KEYS[1] is the
// generation key, KEYS[2..n] the slot keys; ARGV[1] is the expected generation
// followed by a value and a TTL in milliseconds per slot key.
var storeIfGenerationScript = redis.NewScript(`
	local current = redis.call('GET', KEYS[1]) or '0'
	if current ~= ARGV[1] then
		return 0
	end
	for i = 2, #KEYS do
		redis.call('SET', KEYS[i], ARGV[2 * i - 2], 'PX', ARGV[2 * i - 1])
	end
	return 1
`)

// SlotLoader computes the slots of [from, to] from the database.
type SlotLoader func(ctx context.Context, from, to time.Time) ([]entity.DaySlots, error)

// CacheRecorder receives cache hit and miss events.
type CacheRecorder interface {
	RecordSlotCache(hit bool)
}

// SlotCache caches generated appointment slots in Redis per doctor and day.
// Concurrent misses for the same doctor and range share one load.
type SlotCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	metrics     CacheRecorder
	group       singleflight.Group
	now         func() time.Time
}

// NewSlotCache creates a SlotCache. A nil client disables caching.
func NewSlotCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration, metrics CacheRecorder) *SlotCache {
	return &SlotCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		metrics:     metrics,
		now:         time.Now,
	}
}

func slotKey(doctorID int, day time.Time) string {
	return fmt.Sprintf("%s%d:%s", RedisSlotKeyPrefix, doctorID, day.Format(slotDateLayout))
}

func generationKey(doctorID int) string {
	return RedisSlotGenerationPrefix + strconv.Itoa(doctorID)
}

// generation reads the doctor's invalidation counter. A missing key is "0".
func (c *SlotCache) generation(ctx context.Context, doctorID int) (string, error) {
	gen, err := c.redisClient.Get(ctx, generationKey(doctorID)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// Slots returns the working days in [from, to] with Past recomputed against now.
func (c *SlotCache) Slots(ctx context.Context, doctorID int, from, to time.Time, load SlotLoader) ([]entity.DaySlots, error) {
	days := eachDay(from, to)
	if c.redisClient == nil {
		return c.markPast(load(ctx, from, to))
	}

	cached, missing := c.lookup(ctx, doctorID, days)
	if len(missing) > 0 {
		loaded, err := c.fill(ctx, doctorID, missing, load)
		if err != nil {
			return nil, err
		}
		for k, v := range loaded {
			cached[k] = v
		}
	}

	result := make([]entity.DaySlots, 0, len(days))
	for _, day := range days {
		if ds, ok := cached[day.Format(slotDateLayout)]; ok && ds != nil {
			cp := *ds
			cp.Slots = append([]entity.TimeSlot(nil), ds.Slots...)
			result = append(result, cp)
		}
	}
	return c.markPast(result, nil)
}

// lookup reads the cached days. Absent keys are returned as missing; a Redis
// failure treats every day as missing.
func (c *SlotCache) lookup(ctx context.Context, doctorID int, days []time.Time) (map[string]*entity.DaySlots, []time.Time) {
	cached := make(map[string]*entity.DaySlots, len(days))
	keys := make([]string, len(days))
	for i, day := range days {
		keys[i] = slotKey(doctorID, day)
	}

	opCtx, cancel := context.WithTimeout(ctx, redisSlotTimeout)
	defer cancel()
	values, err := c.redisClient.MGet(opCtx, keys...).Result()
	if err != nil {
		c.log.Warnf("Failed to read slot cache for doctor %d: %+v", doctorID, err)
		c.record(false)
		return cached, days
	}

	var missing []time.Time
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, days[i])
			continue
		}
		date := days[i].Format(slotDateLayout)
		if raw == dayOffMarker {
			cached[date] = nil
			continue
		}
		var ds entity.DaySlots
		if err := json.Unmarshal([]byte(raw), &ds); err != nil {
			missing = append(missing, days[i])
			continue
		}
		cached[date] = &ds
	}

	c.record(len(missing) == 0)
	return cached, missing
}

// fill loads the span covering missing and writes every day of it back. The
// write is skipped when Invalidate ran while the load was in flight, so a
// snapshot taken before a booking committed is never cached.
func (c *SlotCache) fill(ctx context.Context, doctorID int, missing []time.Time, load SlotLoader) (map[string]*entity.DaySlots, error) {
	from, to := missing[0], missing[len(missing)-1]
	flightKey := fmt.Sprintf("%d:%s:%s", doctorID, from.Format(slotDateLayout), to.Format(slotDateLayout))

	v, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		gen, genErr := c.generation(ctx, doctorID)
		if genErr != nil {
			c.log.Warnf("Failed to read slot cache generation for doctor %d: %+v", doctorID, genErr)
		}

		loaded, err := load(ctx, from, to)
		if err != nil {
			return nil, err
		}

		byDate := make(map[string]*entity.DaySlots, len(loaded))
		for i := range loaded {
			byDate[loaded[i].Date] = &loaded[i]
		}

		keys := []string{generationKey(doctorID)}
		args := []interface{}{gen}
		for _, day := range eachDay(from, to) {
			date := day.Format(slotDateLayout)
			value := dayOffMarker
			if ds, ok := byDate[date]; ok {
				encoded, err := json.Marshal(ds)
				if err != nil {
					return nil, err
				}
				value = string(encoded)
			} else {
				byDate[date] = nil
			}
			keys = append(keys, slotKey(doctorID, day))
			args = append(args, value, max(c.calculateTTL(day).Milliseconds(), 1))
		}

		if genErr != nil {
			return byDate, nil
		}
		stored, err := storeIfGenerationScript.Run(ctx, c.redisClient, keys, args...).Int()
		switch {
		case err != nil:
			c.log.Warnf("Failed to write slot cache for doctor %d: %+v", doctorID, err)
		case stored == 0:
			c.log.Debugf("Slot cache for doctor %d invalidated during load, not stored", doctorID)
		}
		return byDate, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]*entity.DaySlots), nil
}

// Invalidate drops the cached days of a doctor. Without dates every cached
// day of the doctor is dropped.
func (c *SlotCache) Invalidate(ctx context.Context, doctorID int, dates ...time.Time) error {
	if c.redisClient == nil {
		return nil
	}

	// Bumped first so fills that started earlier discard their snapshot.
	if err := c.redisClient.Incr(ctx, generationKey(doctorID)).Err(); err != nil {
		c.log.Warnf("Failed to bump slot cache generation for doctor %d: %+v", doctorID, err)
		return fmt.Errorf("bump slot cache generation for doctor %d: %w", doctorID, err)
	}

	var keys []string
	if len(dates) > 0 {
		for _, d := range dates {
			keys = append(keys, slotKey(doctorID, d))
		}
	} else {
		pattern := fmt.Sprintf("%s%d:*", RedisSlotKeyPrefix, doctorID)
		iter := c.redisClient.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			c.log.Warnf("Failed to scan slot cache for doctor %d: %+v", doctorID, err)
			return fmt.Errorf("scan slot cache for doctor %d: %w", doctorID, err)
		}
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Failed to invalidate slot cache for doctor %d: %+v", doctorID, err)
		return fmt.Errorf("invalidate slot cache for doctor %d: %w", doctorID, err)
	}
	c.log.Debugf("Invalidated %d slot cache keys for doctor %d", len(keys), doctorID)
	return nil
}

func (c *SlotCache) markPast(days []entity.DaySlots, err error) ([]entity.DaySlots, error) {
	if err != nil {
		return nil, err
	}
	now := c.now()
	for i := range days {
		for j := range days[i].Slots {
			days[i].Slots[j].Past = days[i].Slots[j].Start.Before(now)
		}
	}
	return days, nil
}

func (c *SlotCache) record(hit bool) {
	if c.metrics != nil {
		c.metrics.RecordSlotCache(hit)
	}
}

// calculateTTL never outlives the cached day and keeps past days only briefly.
func (c *SlotCache) calculateTTL(day time.Time) time.Duration {
	remaining := day.AddDate(0, 0, 1).Sub(c.now())
	if remaining <= 0 {
		return time.Minute
	}
	return min(c.ttl, remaining)
}

func eachDay(from, to time.Time) []time.Time {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
