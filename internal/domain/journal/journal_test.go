package journal

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/mergington/activities/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func change(i int) model.Change {
	return model.Change{ID: fmt.Sprintf("c%d", i), Action: model.ActionEnrolled, Activity: "Chess Club", Email: fmt.Sprintf("s%d@x.edu", i)}
}

func TestRing(t *testing.T) {
	ctx := context.Background()

	Convey("Given a ring of size 3", t, func() {
		r := NewRing(WithSize(3))

		Convey("Then it starts empty", func() {
			So(r.Len(), ShouldEqual, 0)
			So(r.Cap(), ShouldEqual, 3)
			So(r.Recent(ctx, 5), ShouldBeEmpty)
		})

		Convey("When two changes are recorded", func() {
			So(r.Record(ctx, change(1)), ShouldBeNil)
			So(r.Record(ctx, change(2)), ShouldBeNil)

			Convey("Then Recent returns them newest first", func() {
				got := r.Recent(ctx, 10)
				So(len(got), ShouldEqual, 2)
				So(got[0].ID, ShouldEqual, "c2")
				So(got[1].ID, ShouldEqual, "c1")
			})

			Convey("And Recent honours the limit", func() {
				got := r.Recent(ctx, 1)
				So(len(got), ShouldEqual, 1)
				So(got[0].ID, ShouldEqual, "c2")
			})
		})

		Convey("When more changes than the capacity are recorded", func() {
			for i := 1; i <= 5; i++ {
				So(r.Record(ctx, change(i)), ShouldBeNil)
			}

			Convey("Then the oldest are evicted", func() {
				So(r.Len(), ShouldEqual, 3)
				got := r.Recent(ctx, 3)
				So(got[0].ID, ShouldEqual, "c5")
				So(got[1].ID, ShouldEqual, "c4")
				So(got[2].ID, ShouldEqual, "c3")
			})
		})

		Convey("When a change without an id is recorded", func() {
			err := r.Record(ctx, model.Change{})

			Convey("Then it is rejected", func() {
				So(err, ShouldEqual, ErrEmptyID)
				So(r.Len(), ShouldEqual, 0)
			})
		})

		Convey("When asked for a non-positive count", func() {
			So(r.Record(ctx, change(1)), ShouldBeNil)

			Convey("Then it returns nothing", func() {
				So(r.Recent(ctx, 0), ShouldBeEmpty)
				So(r.Recent(ctx, -1), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a default ring under concurrent writers", t, func() {
		r := NewRing()
		var wg sync.WaitGroup
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					_ = r.Record(ctx, change(w*100+i))
				}
			}(w)
		}
		wg.Wait()

		Convey("Then every change is retained", func() {
			So(r.Len(), ShouldEqual, 800)
			So(len(r.Recent(ctx, 1000)), ShouldEqual, 800)
		})
	})
}
