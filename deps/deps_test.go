package deps

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/op/go-logging"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/cart/core/kv"
	"github.com/tryanzu/cart/modules/cart"
)

func TestBootstrap(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	Convey("Given a config pointing at an in-memory bunt store and a seed", t, func() {
		dir := t.TempDir()
		seedFile := filepath.Join(dir, "seed.toml")
		So(ioutil.WriteFile(seedFile, []byte("[[items]]\nid = \"1234\"\ntitle = \"Test product\"\nprice = 1000\n"), 0644), ShouldBeNil)

		file := filepath.Join(dir, "config.hjson")
		So(ioutil.WriteFile(file, []byte(`{
			log: { level: "warning" }
			storage: {
				driver: "bunt"
				path: ":memory:"
				key: "@test"
			}
			cart: { seed: "`+filepath.ToSlash(seedFile)+`" }
		}`), 0644), ShouldBeNil)

		d, err := Bootstrap(ctx, file)
		So(err, ShouldBeNil)
		Reset(func() { d.Close() })

		Convey("Every provider is filled", func() {
			So(d.Config(), ShouldNotBeNil)
			So(d.Log(), ShouldNotBeNil)
			So(d.Reporter(), ShouldNotBeNil)
			So(d.Storage(), ShouldHaveSameTypeAs, &kv.Bunt{})
			So(d.Bridge().Key(), ShouldEqual, "@test")
			So(logging.GetLevel("cart"), ShouldEqual, logging.WARNING)
			So(d.Log().Module, ShouldEqual, "deps")
		})

		Convey("The cart starts from the seed on first run", func() {
			s, err := d.Cart().Items()
			So(err, ShouldBeNil)
			So(s, ShouldResemble, cart.State{{ID: "1234", Title: "Test product", Price: 1000, Quantity: 1}})
		})

		Convey("Mutations reach the configured key after a flush", func() {
			d.Cart().Add(cart.AddInput{ID: "a", Price: 10})
			So(d.Bridge().Flush(ctx), ShouldBeNil)
			v, err := d.Storage().Get(ctx, "@test")
			So(err, ShouldBeNil)
			So(v, ShouldContainSubstring, `"id":"a"`)
		})
	})

	Convey("An unknown storage driver aborts the bootstrap", t, func() {
		file := filepath.Join(t.TempDir(), "config.hjson")
		ioutil.WriteFile(file, []byte(`{ storage: { driver: "floppy" } }`), 0644)
		_, err := Bootstrap(ctx, file)
		So(err, ShouldNotBeNil)
	})
}
