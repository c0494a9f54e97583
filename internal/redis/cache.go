package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	Client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{Client: client}
}

const galleryKey = "gallery:urls"
const galleryTTL = 5 * time.Minute

// GetGalleryURLs returns the cached gallery listing, if any. A nil Cache or
// any redis failure reads as a miss.
func (c *Cache) GetGalleryURLs(ctx context.Context) ([]string, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	val, err := c.Client.Get(ctx, galleryKey).Result()
	if err != nil {
		return nil, false
	}
	var urls []string
	if err := json.Unmarshal([]byte(val), &urls); err != nil {
		return nil, false
	}
	return urls, true
}

func (c *Cache) SetGalleryURLs(ctx context.Context, urls []string) {
	if c == nil || c.Client == nil {
		return
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return
	}
	c.Client.Set(ctx, galleryKey, data, galleryTTL)
}
