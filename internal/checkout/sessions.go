package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore : persistance de la session checkout entre deux requêtes.
// Une session par utilisateur, même cloisonnement que le panier.
type SessionStore struct {
	Client *redis.Client
}

const sessionTTL = 2 * time.Hour

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{Client: client}
}

func sessionKey(userID string) string {
	return "checkout:" + userID
}

// Load retourne la session en cours, nil si aucune
func (s *SessionStore) Load(ctx context.Context, userID string) (*Session, error) {
	data, err := s.Client.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionKey(sess.UserID), data, sessionTTL).Err()
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.Client.Del(ctx, sessionKey(userID)).Err()
}
