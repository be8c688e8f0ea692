package ingest

import "testing"

func TestParseCachePutGet(t *testing.T) {
	cache := NewParseCache()
	raw := []byte("k,v\n1,2\n")

	if _, ok := cache.Get(raw); ok {
		t.Fatal("Get() on an empty cache should miss")
	}

	tbl := NewTable([]string{"k", "v"})
	tbl.AppendStringRow([]string{"1", "2"})
	cache.Put(raw, &LoadResult{Table: tbl, Encoding: "UTF-8", Warnings: []string{"w"}})

	res, ok := cache.Get(raw)
	if !ok {
		t.Fatal("Get() after Put() should hit")
	}
	if !res.FromCache {
		t.Error("FromCache = false on a cache hit")
	}
	if res.Encoding != "UTF-8" || len(res.Warnings) != 1 {
		t.Errorf("hit = %+v, advisories and encoding should replay", res)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestParseCacheIsolation(t *testing.T) {
	cache := NewParseCache()
	raw := []byte("k\nv\n")

	tbl := NewTable([]string{"k"})
	tbl.AppendStringRow([]string{"v"})
	res := &LoadResult{Table: tbl}
	cache.Put(raw, res)

	// Mutations of the stored result must not reach the cache, in either
	// direction.
	res.Table.Rows[0][0] = "changed-after-put"
	hit, _ := cache.Get(raw)
	if hit.Table.Rows[0][0] != "v" {
		t.Errorf("Put() shared storage with the caller: %v", hit.Table.Rows[0][0])
	}

	hit.Table.Rows[0][0] = "changed-after-get"
	again, _ := cache.Get(raw)
	if again.Table.Rows[0][0] != "v" {
		t.Errorf("Get() shared storage between hits: %v", again.Table.Rows[0][0])
	}
}

func TestParseCacheKeysByContent(t *testing.T) {
	cache := NewParseCache()
	tbl := NewTable([]string{"k"})
	cache.Put([]byte("one"), &LoadResult{Table: tbl})

	if _, ok := cache.Get([]byte("two")); ok {
		t.Error("different bytes should miss")
	}
	if _, ok := cache.Get([]byte("one")); !ok {
		t.Error("same bytes should hit")
	}
}

func TestParseCacheSkipsEmptyResults(t *testing.T) {
	cache := NewParseCache()
	cache.Put([]byte("a"), nil)
	cache.Put([]byte("b"), &LoadResult{})
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, nil and table-less results should not be stored", cache.Len())
	}
}
