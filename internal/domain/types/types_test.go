package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/mergington/activities/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWireNames(t *testing.T) {
	Convey("Given API body types", t, func() {
		Convey("When a message is encoded", func() {
			b, err := json.Marshal(types.Message{Message: "Signed up a@x.edu for Chess Club"})

			Convey("Then it uses the message key", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"message":"Signed up a@x.edu for Chess Club"}`)
			})
		})

		Convey("When a summary is encoded", func() {
			b, err := json.Marshal(types.Summary{Enrolled: 2, Capacity: 12, SpotsLeft: 10})

			Convey("Then it uses snake_case keys", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldEqual, `{"enrolled":2,"capacity":12,"spots_left":10}`)
			})
		})
	})
}
