package kv

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStores(t *testing.T) {
	ctx := context.Background()
	drivers := []struct {
		name string
		open func() (Store, error)
	}{
		{"memory", func() (Store, error) { return NewMemory(), nil }},
		{"bunt", func() (Store, error) { return OpenBunt(":memory:") }},
		{"bunt file", func() (Store, error) { return OpenBunt(filepath.Join(t.TempDir(), "cart.db")) }},
		{"ledis", func() (Store, error) { return OpenLedis(t.TempDir()) }},
	}

	for _, driver := range drivers {
		Convey("Given a "+driver.name+" store", t, func() {
			store, err := driver.open()
			So(err, ShouldBeNil)
			Reset(func() { store.Close() })

			Convey("A missing key reports ErrNotFound", func() {
				_, err := store.Get(ctx, "@items")
				So(err, ShouldEqual, ErrNotFound)
			})

			Convey("A value set can be read back", func() {
				So(store.Set(ctx, "@items", `[{"id":"a"}]`), ShouldBeNil)
				v, err := store.Get(ctx, "@items")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, `[{"id":"a"}]`)
			})

			Convey("A later set overwrites the whole value", func() {
				So(store.Set(ctx, "@items", "first"), ShouldBeNil)
				So(store.Set(ctx, "@items", "second"), ShouldBeNil)
				v, err := store.Get(ctx, "@items")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "second")
			})

			Convey("A cancelled context refuses the write", func() {
				cctx, cancel := context.WithCancel(ctx)
				cancel()
				So(store.Set(cctx, "@items", "x"), ShouldNotBeNil)
			})
		})
	}
}

func TestOpen(t *testing.T) {
	Convey("Open picks drivers by name", t, func() {
		store, err := Open(context.Background(), Options{Driver: "Memory"})
		So(err, ShouldBeNil)
		So(store, ShouldHaveSameTypeAs, &Memory{})

		store, err = Open(context.Background(), Options{Driver: ""})
		So(err, ShouldBeNil)
		So(store, ShouldHaveSameTypeAs, &Memory{})

		_, err = Open(context.Background(), Options{Driver: "etcd"})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "etcd")
	})
}
