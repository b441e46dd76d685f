package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"velora_back_end/internal/models"
)

// Repository : stockage du panier, cloisonné par utilisateur.
// Le mécanisme (Redis, mémoire) est interchangeable sans toucher à la
// logique du panier. Dernier écrivain gagnant entre appareils, voulu.
type Repository interface {
	Load(ctx context.Context, userID string) ([]models.CartItem, error)
	Save(ctx context.Context, userID string, items []models.CartItem) error
	Clear(ctx context.Context, userID string) error
}

// --- Implémentation Redis ---

const cartTTL = 30 * 24 * time.Hour // panier conservé 30 jours

type RedisRepository struct {
	Client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{Client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func (r *RedisRepository) Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := r.Client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil || data == "" {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		// panier corrompu → on repart de zéro plutôt que de bloquer l'utilisateur
		return []models.CartItem{}, nil
	}
	return items, nil
}

func (r *RedisRepository) Save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, cartKey(userID), data, cartTTL).Err()
}

func (r *RedisRepository) Clear(ctx context.Context, userID string) error {
	return r.Client.Del(ctx, cartKey(userID)).Err()
}

// --- Implémentation mémoire (tests) ---

type MemoryRepository struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string][]models.CartItem)}
}

func (m *MemoryRepository) Load(_ context.Context, userID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]models.CartItem, len(m.carts[userID]))
	copy(items, m.carts[userID])
	return items, nil
}

func (m *MemoryRepository) Save(_ context.Context, userID string, items []models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]models.CartItem, len(items))
	copy(stored, items)
	m.carts[userID] = stored
	return nil
}

func (m *MemoryRepository) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	return nil
}
