package Note

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/przwal/notesapp/database"

	"github.com/go-redis/redis/v8"
)

// 笔记列表页缓存有效期，写操作会主动失效，短一点兜底
const noteListCacheTTL = 5 * time.Minute

// NoteCacheInterface 笔记列表缓存接口
type NoteCacheInterface interface {
	CacheNoteList(userID string, page, pageSize int, list *database.NoteListResponse) error
	GetCachedNoteList(userID string, page, pageSize int) (*database.NoteListResponse, error)
	InvalidateNoteLists(userID string) error
}

type NoteCache struct {
	redisClient *redis.Client
}

func NewNoteCache(client *redis.Client) NoteCacheInterface {
	return &NoteCache{redisClient: client}
}

func noteListKey(userID string, page, pageSize int) string {
	return fmt.Sprintf("notes:%s:%d:%d", userID, page, pageSize)
}

// CacheNoteList 缓存一页笔记列表
func (nc *NoteCache) CacheNoteList(userID string, page, pageSize int, list *database.NoteListResponse) error {
	if nc.redisClient == nil {
		return nil // 降级：直接返回成功
	}

	ctx := context.Background()
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return nc.redisClient.Set(ctx, noteListKey(userID, page, pageSize), data, noteListCacheTTL).Err()
}

// GetCachedNoteList 从缓存获取一页笔记列表
func (nc *NoteCache) GetCachedNoteList(userID string, page, pageSize int) (*database.NoteListResponse, error) {
	if nc.redisClient == nil {
		return nil, errors.New("redis不可用")
	}

	ctx := context.Background()
	data, err := nc.redisClient.Get(ctx, noteListKey(userID, page, pageSize)).Result()
	if err != nil {
		return nil, err
	}

	var list database.NoteListResponse
	err = json.Unmarshal([]byte(data), &list)
	return &list, err
}

// InvalidateNoteLists 清掉某个用户的全部列表缓存（笔记写入后调用）
func (nc *NoteCache) InvalidateNoteLists(userID string) error {
	if nc.redisClient == nil {
		return nil // 降级：直接返回成功
	}

	ctx := context.Background()
	keys, err := nc.redisClient.Keys(ctx, "notes:"+userID+":*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return nc.redisClient.Del(ctx, keys...).Err()
}
