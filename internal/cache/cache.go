// Package cache stores accepted resolutions keyed by normalized query
// identity. Records are serialized JSON held in a memory layer with an
// optional disk layer behind it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/ppiankov/gazetteer/internal/model"
	"github.com/ppiankov/gazetteer/internal/score"
)

// Cache is the byte-level storage interface shared by the layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// coordBucketDegrees is the coarse coordinate grid for cache keys: about
// 11km per cell, so caller GPS jitter maps to one key while same-named
// places in different cities map to different keys.
const coordBucketDegrees = 0.1

// Key derives the cache key for a query: normalized name plus the coarse
// coordinate bucket, or the name alone when no coordinate is supplied.
func Key(query model.PlaceQuery) string {
	identity := score.Normalize(query.Name)
	if query.Coordinate != nil {
		latBucket := int(math.Floor(query.Coordinate.Lat / coordBucketDegrees))
		lonBucket := int(math.Floor(query.Coordinate.Lon / coordBucketDegrees))
		identity = fmt.Sprintf("%s|%d:%d", identity, latBucket, lonBucket)
	}
	hash := sha256.Sum256([]byte(identity))
	return "gazetteer:v1:" + hex.EncodeToString(hash[:])
}
