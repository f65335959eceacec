package cache

import (
	"testing"
	"time"

	"github.com/ppiankov/gazetteer/internal/model"
)

func TestKey_CoordinateBuckets(t *testing.T) {
	base := model.PlaceQuery{Name: "Golden Gate Bridge", Coordinate: &model.Coordinate{Lat: 37.8199, Lon: -122.4783}}
	jitter := model.PlaceQuery{Name: "golden  gate BRIDGE", Coordinate: &model.Coordinate{Lat: 37.8215, Lon: -122.4790}}
	farAway := model.PlaceQuery{Name: "Golden Gate Bridge", Coordinate: &model.Coordinate{Lat: 48.8584, Lon: 2.2945}}

	// GPS jitter and case/whitespace noise land in the same bucket.
	if Key(base) != Key(jitter) {
		t.Error("nearby coordinate with equivalent name should share a key")
	}
	if Key(base) == Key(farAway) {
		t.Error("same name in a different city must get its own key")
	}
}

func TestKey_MissingCoordinate(t *testing.T) {
	named := model.PlaceQuery{Name: "Hyde Park"}
	located := model.PlaceQuery{Name: "Hyde Park", Coordinate: &model.Coordinate{Lat: 51.5073, Lon: -0.1657}}

	if Key(named) == Key(located) {
		t.Error("coordinate presence must change the key")
	}
	if Key(named) != Key(model.PlaceQuery{Name: "hyde park"}) {
		t.Error("key must be insensitive to name case")
	}
}

func TestStore_PutGetInvalidate(t *testing.T) {
	store := NewStore(model.CacheConfig{MemoryTTL: time.Minute})

	query := model.PlaceQuery{Name: "British Museum"}
	key := Key(query)
	entry := model.CandidateEntry{Source: "wikipedia", Language: "en", Title: "British Museum"}
	breakdown := model.ScoreBreakdown{Semantic: 1, Total: 0.95, ConfidenceThreshold: 0.7}

	if _, found := store.Get(key); found {
		t.Fatal("empty store must miss")
	}
	if err := store.Put(key, entry, breakdown); err != nil {
		t.Fatalf("put: %v", err)
	}

	record, found := store.Get(key)
	if !found {
		t.Fatal("stored record must be retrievable")
	}
	if record.Entry.Title != "British Museum" || record.Score.Total != 0.95 {
		t.Errorf("record round-trip mangled: %+v", record)
	}
	if record.InsertedAt.IsZero() {
		t.Error("insertion time must be recorded")
	}

	store.Invalidate(key)
	if _, found := store.Get(key); found {
		t.Error("invalidated key must miss")
	}
}

func TestStore_DiskPromotion(t *testing.T) {
	dir := t.TempDir()
	cfg := model.CacheConfig{MemoryTTL: time.Minute, DiskTTL: time.Hour, DiskDir: dir}

	first := NewStore(cfg)
	key := Key(model.PlaceQuery{Name: "Pergamon Museum"})
	entry := model.CandidateEntry{Source: "wikipedia", Language: "de", Title: "Pergamonmuseum"}
	if err := first.Put(key, entry, model.ScoreBreakdown{Total: 0.9}); err != nil {
		t.Fatalf("put: %v", err)
	}

	// A fresh store over the same directory has cold memory but warm disk.
	second := NewStore(cfg)
	record, found := second.Get(key)
	if !found {
		t.Fatal("record must survive a restart via the disk layer")
	}
	if record.Entry.Title != "Pergamonmuseum" {
		t.Errorf("unexpected entry %q", record.Entry.Title)
	}
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(model.CacheConfig{MemoryTTL: time.Minute, DiskTTL: time.Hour, DiskDir: t.TempDir()})
	key := Key(model.PlaceQuery{Name: "x"})
	if err := store.Put(key, model.CandidateEntry{Title: "x"}, model.ScoreBreakdown{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	store.Clear()
	if _, found := store.Get(key); found {
		t.Error("cleared store must miss")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry must miss and be removed")
	}
}
