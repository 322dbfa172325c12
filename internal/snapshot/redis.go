package snapshot

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ErrStaleSnapshot means a save carried a version at or below the one
// already stored. The caller's state is behind another writer; the
// stored snapshot wins and the caller should reload before writing.
var ErrStaleSnapshot = errors.New("stale_snapshot")

const keyPrefix = "ledger:snapshot:"

// saveScript stores blob+version only if version is strictly newer than
// the stored one. Last-write-wins is not good enough for snapshots that
// can arrive from more than one device, so the gate runs atomically in
// Redis.
var saveScript = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'version')
if cur and tonumber(cur) >= tonumber(ARGV[2]) then
	return 0
end
redis.call('HSET', KEYS[1], 'blob', ARGV[1], 'version', ARGV[2])
return 1
`)

// Store keeps one crash-recovery state blob per operator.
type Store struct {
	Client *redis.Client
}

func NewStore(opt *redis.Options) *Store {
	return &Store{Client: redis.NewClient(opt)}
}

func (s *Store) Save(ctx context.Context, hostID string, blob []byte, version uint64) error {
	ok, err := saveScript.Run(ctx, s.Client, []string{keyPrefix + hostID},
		blob, strconv.FormatUint(version, 10)).Int()
	if err != nil {
		return err
	}
	if ok == 0 {
		return ErrStaleSnapshot
	}
	return nil
}

// Load returns the stored blob and its version. ok is false when no
// snapshot exists for the operator.
func (s *Store) Load(ctx context.Context, hostID string) ([]byte, uint64, bool, error) {
	vals, err := s.Client.HMGet(ctx, keyPrefix+hostID, "blob", "version").Result()
	if err != nil {
		return nil, 0, false, err
	}
	if vals[0] == nil {
		return nil, 0, false, nil
	}
	blobStr, _ := vals[0].(string)
	var version uint64
	if vals[1] != nil {
		if vStr, ok := vals[1].(string); ok {
			version, _ = strconv.ParseUint(vStr, 10, 64)
		}
	}
	return []byte(blobStr), version, true, nil
}

func (s *Store) Delete(ctx context.Context, hostID string) error {
	return s.Client.Del(ctx, keyPrefix+hostID).Err()
}
