package seed

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/cart/modules/cart"
)

func write(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "seed.toml")
	if err := ioutil.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("No path means an empty seed", t, func() {
		s, err := Load("")
		So(err, ShouldBeNil)
		So(s, ShouldBeEmpty)
	})

	Convey("Seed items are read in order", t, func() {
		path := write(t, `
[[items]]
id = "1234"
title = "Test product"
image_url = "test"
price = 1000
quantity = 0

[[items]]
id = "99"
title = "Second"
price = 15
quantity = 4
`)
		s, err := Load(path)
		So(err, ShouldBeNil)
		So(s, ShouldResemble, cart.State{
			{ID: "1234", Title: "Test product", Image: "test", Price: 1000, Quantity: 1},
			{ID: "99", Title: "Second", Price: 15, Quantity: 4},
		})
	})

	Convey("Duplicated ids are rejected", t, func() {
		path := write(t, "[[items]]\nid = \"a\"\n[[items]]\nid = \"a\"\n")
		_, err := Load(path)
		So(err, ShouldNotBeNil)
	})

	Convey("Missing and malformed files are errors", t, func() {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		So(err, ShouldNotBeNil)

		_, err = Load(write(t, "[[items]\nid ="))
		So(err, ShouldNotBeNil)
	})
}
