package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/ports"
)

var _ ports.LeaderboardCache = (*LeaderboardCache)(nil)

// DefaultLeaderboardKey clave del ranking serializado; la generación vive en <key>:gen.
const DefaultLeaderboardKey = "lead-manager:leaderboard"

// setIfGeneration escribe el ranking solo si la generación no cambió desde la lectura.
// KEYS[1]=ranking KEYS[2]=generación ARGV[1]=generación leída ARGV[2]=JSON ARGV[3]=ttl ms.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// LeaderboardCache guarda el ranking como JSON con TTL. Cada alta de lead lo invalida
// y sube la generación, así un cálculo previo a la invalidación no se vuelve a guardar.
type LeaderboardCache struct {
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
}

// NewLeaderboardCache construye el cache. ttl <= 0 deja la entrada sin expiración.
func NewLeaderboardCache(client *redis.Client, key string, ttl time.Duration) *LeaderboardCache {
	if key == "" {
		key = DefaultLeaderboardKey
	}
	if ttl < 0 {
		ttl = 0
	}
	return &LeaderboardCache{client: client, key: key, genKey: key + ":gen", ttl: ttl}
}

// Get devuelve el ranking cacheado; ok es false si no hay entrada.
func (c *LeaderboardCache) Get(ctx context.Context) ([]dto.LeaderboardEntry, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leaderboard cache get: %w", err)
	}
	var entries []dto.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Entrada corrupta: se trata como miss y se reescribe en el próximo guardado.
		return nil, false, nil
	}
	return entries, true, nil
}

// Generation devuelve la generación actual (0 si nunca se invalidó).
func (c *LeaderboardCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("leaderboard cache generation: %w", err)
	}
	return gen, nil
}

// SetIfGeneration reemplaza el ranking si la generación sigue siendo generation.
func (c *LeaderboardCache) SetIfGeneration(ctx context.Context, generation int64, entries []dto.LeaderboardEntry) (bool, error) {
	if entries == nil {
		entries = []dto.LeaderboardEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return false, fmt.Errorf("leaderboard cache encode: %w", err)
	}
	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{c.key, c.genKey},
		strconv.FormatInt(generation, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("leaderboard cache set: %w", err)
	}
	return stored == 1, nil
}

// Invalidate borra la entrada y sube la generación en una sola transacción.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("leaderboard cache invalidate: %w", err)
	}
	return nil
}
