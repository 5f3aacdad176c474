package cart

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type recordingBucket struct {
	restore State
	err     error
	saves   []State
}

func (b *recordingBucket) Restore(ctx context.Context) (State, error) {
	return b.restore, b.err
}

func (b *recordingBucket) Save(s State) {
	b.saves = append(b.saves, s)
}

func (b *recordingBucket) last() State {
	if len(b.saves) == 0 {
		return nil
	}
	return b.saves[len(b.saves)-1]
}

func boot(t *testing.T, restore State) (*Cart, *recordingBucket) {
	bucket := &recordingBucket{restore: restore}
	c, err := Boot(context.Background(), bucket)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	return c, bucket
}

func sample(id string) AddInput {
	return AddInput{ID: id, Title: "T", Image: "u", Price: 1000}
}

func TestCartOperations(t *testing.T) {
	Convey("Starting from an empty cart", t, func() {
		c, bucket := boot(t, nil)

		Convey("Adding a product leaves one unit of it", func() {
			s, err := c.Add(sample("a"))
			So(err, ShouldBeNil)
			So(s, ShouldResemble, State{{ID: "a", Title: "T", Image: "u", Price: 1000, Quantity: 1}})
			So(bucket.last(), ShouldResemble, s)

			Convey("Adding it again increments it", func() {
				s, err := c.Add(AddInput{ID: "a", Title: "Other", Price: 1})
				So(err, ShouldBeNil)
				So(s, ShouldHaveLength, 1)
				So(s[0].Quantity, ShouldEqual, 2)
				So(s[0].Title, ShouldEqual, "T")
				So(s[0].Price, ShouldEqual, 1000)

				Convey("Decrementing takes one unit away", func() {
					s, err := c.Decrement("a")
					So(err, ShouldBeNil)
					So(s, ShouldHaveLength, 1)
					So(s[0].Quantity, ShouldEqual, 1)

					Convey("Decrementing the last unit removes the line", func() {
						s, err := c.Decrement("a")
						So(err, ShouldBeNil)
						So(s, ShouldBeEmpty)
						So(bucket.last(), ShouldBeEmpty)
						So(bucket.saves, ShouldHaveLength, 4)
					})
				})
			})
		})

		Convey("An explicit positive quantity is kept", func() {
			in := sample("b")
			in.Quantity = 3
			s, _ := c.Add(in)
			So(s[0].Quantity, ShouldEqual, 3)
		})

		Convey("A zero or negative quantity means one", func() {
			for _, q := range []int{0, -4} {
				in := sample("q")
				in.Quantity = q
				c, _ := boot(t, nil)
				s, _ := c.Add(in)
				So(s[0].Quantity, ShouldEqual, 1)
			}
		})

		Convey("Insertion order is preserved across updates", func() {
			c.Add(sample("a"))
			c.Add(sample("b"))
			c.Add(sample("c"))
			c.Increment("a")
			s, _ := c.Decrement("b")
			So(ids(s), ShouldResemble, []string{"a", "c"})
			s, _ = c.Increment("c")
			So(ids(s), ShouldResemble, []string{"a", "c"})
		})
	})
}

func TestCartProperties(t *testing.T) {
	Convey("Ids stay unique whatever gets added", t, func() {
		c, _ := boot(t, nil)
		for _, id := range []string{"a", "b", "a", "c", "b", "a"} {
			c.Add(sample(id))
		}
		s, _ := c.Items()
		So(s.Validate(), ShouldBeNil)
		So(ids(s), ShouldResemble, []string{"a", "b", "c"})
		So(s.Count(), ShouldEqual, 6)
		So(s.Total(), ShouldEqual, 6000)
	})

	Convey("Adding an existing id is the same as incrementing it", t, func() {
		seed := State{{ID: "x", Title: "X", Price: 5, Quantity: 2}}
		viaAdd, addBucket := boot(t, seed)
		viaInc, incBucket := boot(t, seed)

		a, err := viaAdd.Add(AddInput{ID: "x", Title: "ignored", Image: "ignored", Price: 99, Quantity: 7})
		So(err, ShouldBeNil)
		b, err := viaInc.Increment("x")
		So(err, ShouldBeNil)
		So(a, ShouldResemble, b)
		So(addBucket.saves, ShouldResemble, incBucket.saves)
	})

	Convey("Unknown ids are reported without touching the cart", t, func() {
		c, bucket := boot(t, State{{ID: "a", Quantity: 1}})
		before, _ := c.Items()

		_, err := c.Increment("missing")
		So(IsNotFound(err), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "missing")

		_, err = c.Decrement("missing")
		var nf *NotFoundError
		So(errors.As(err, &nf), ShouldBeTrue)
		So(nf.ID, ShouldEqual, "missing")

		after, _ := c.Items()
		So(after, ShouldResemble, before)
		So(bucket.saves, ShouldBeEmpty)
	})

	Convey("Quantities never drop below one", t, func() {
		c, _ := boot(t, nil)
		c.Add(sample("a"))
		c.Add(sample("b"))
		for i := 0; i < 3; i++ {
			c.Decrement("a")
			s, _ := c.Items()
			So(s.Validate(), ShouldBeNil)
		}
		s, _ := c.Items()
		So(ids(s), ShouldResemble, []string{"b"})
	})

	Convey("Returned states never change afterwards", t, func() {
		c, bucket := boot(t, nil)
		first, _ := c.Add(sample("a"))
		c.Add(sample("a"))
		c.Add(sample("b"))
		So(first, ShouldResemble, State{{ID: "a", Title: "T", Image: "u", Price: 1000, Quantity: 1}})
		So(bucket.saves[0][0].Quantity, ShouldEqual, 1)

		first[0].Quantity = 50
		s, _ := c.Items()
		So(s[0].Quantity, ShouldEqual, 2)
	})
}

func TestCartLifecycle(t *testing.T) {
	Convey("A cart that was never booted fails fast", t, func() {
		var nilCart *Cart
		_, err := nilCart.Items()
		So(err, ShouldEqual, ErrUninitialized)

		zero := &Cart{}
		_, err = zero.Add(sample("a"))
		So(err, ShouldEqual, ErrUninitialized)
		_, err = zero.Increment("a")
		So(err, ShouldEqual, ErrUninitialized)
		_, err = zero.Decrement("a")
		So(err, ShouldEqual, ErrUninitialized)
		So(err.Error(), ShouldEqual, "cart accessed without initialization")
	})

	Convey("Boot restores the persisted lines", t, func() {
		c, _ := boot(t, State{{ID: "a", Quantity: 2}, {ID: "b", Quantity: 1}})
		s, _ := c.Items()
		So(ids(s), ShouldResemble, []string{"a", "b"})
	})

	Convey("Boot falls back to an empty cart on a corrupt snapshot", t, func() {
		bucket := &recordingBucket{err: &DeserializationError{Key: "@items", Err: errors.New("bad json")}}
		c, err := Boot(context.Background(), bucket)
		So(err, ShouldBeNil)
		s, _ := c.Items()
		So(s, ShouldBeEmpty)
	})

	Convey("Boot falls back to an empty cart when restored lines break invariants", t, func() {
		c, _ := boot(t, State{{ID: "a", Quantity: 0}})
		s, _ := c.Items()
		So(s, ShouldBeEmpty)
	})

	Convey("Add refuses a product without id", t, func() {
		c, bucket := boot(t, nil)
		_, err := c.Add(AddInput{Title: "nameless", Price: 10})

		var invalid *InvalidStateError
		So(errors.As(err, &invalid), ShouldBeTrue)
		So(bucket.saves, ShouldBeEmpty)
	})

	Convey("Boot surfaces other restore failures", t, func() {
		_, err := Boot(context.Background(), &recordingBucket{err: errors.New("boom")})
		So(err, ShouldNotBeNil)

		_, err = Boot(context.Background(), nil)
		So(err, ShouldNotBeNil)
	})
}

func TestStateValidate(t *testing.T) {
	var tests = []struct {
		in State
		ok bool
	}{
		{State{}, true},
		{State{{ID: "a", Quantity: 1}, {ID: "b", Quantity: 9}}, true},
		{State{{ID: "", Quantity: 1}}, false},
		{State{{ID: "a", Quantity: 1}, {ID: "a", Quantity: 1}}, false},
		{State{{ID: "a", Quantity: 0}}, false},
	}

	for _, test := range tests {
		err := test.in.Validate()
		if (err == nil) != test.ok {
			t.Errorf("%+v: validate returned %v", test.in, err)
		}
	}
}

func ids(s State) []string {
	out := make([]string, 0, len(s))
	for _, item := range s {
		out = append(out, item.ID)
	}
	return out
}
