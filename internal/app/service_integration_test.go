package service_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	service "github.com/mergington/activities/internal/app"
	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// waitForChanges polls the journal until it holds n changes or times out.
func waitForChanges(ctx context.Context, svc *service.Service, n int) []model.Change {
	deadline := time.Now().Add(5 * time.Second)
	for {
		changes, _ := svc.Changes(ctx, 1000)
		if len(changes) >= n || time.Now().After(deadline) {
			return changes
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
			service.WithJournalSize(500),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When filling Mathletes to capacity", func() {
			for i := range 8 {
				_, err := svc.Enroll(ctx, "Mathletes", fmt.Sprintf("student%d@mergington.edu", i))
				So(err, ShouldBeNil)
			}

			Convey("Then the next signup is refused as full", func() {
				_, err := svc.Enroll(ctx, "Mathletes", "late@mergington.edu")
				So(err, ShouldEqual, activity.ErrActivityFull)

				club, _ := svc.Get(ctx, "Mathletes")
				So(len(club.Participants), ShouldEqual, 10)
			})

			Convey("Then every signup reaches the journal, newest first", func() {
				changes := waitForChanges(ctx, svc, 8)
				So(len(changes), ShouldEqual, 8)
				for _, c := range changes {
					So(c.Action, ShouldEqual, model.ActionEnrolled)
					So(c.Activity, ShouldEqual, "Mathletes")
					So(c.ID, ShouldNotBeEmpty)
				}
			})
		})

		Convey("When a signup is refused", func() {
			_, err := svc.Enroll(ctx, "Chess Club", "michael@mergington.edu")
			So(err, ShouldNotBeNil)
			_, err = svc.Enroll(ctx, "Chess Club", "fresh@mergington.edu")
			So(err, ShouldBeNil)

			Convey("Then only the successful mutation is journaled", func() {
				waitForChanges(ctx, svc, 1)
				time.Sleep(50 * time.Millisecond)
				changes, _ := svc.Changes(ctx, 1000)
				So(len(changes), ShouldEqual, 1)
				So(changes[0].Email, ShouldEqual, "fresh@mergington.edu")
			})
		})

		Convey("When many students race for the last spots", func() {
			var (
				wg       sync.WaitGroup
				accepted atomic.Int32
				full     atomic.Int32
			)
			for i := range 100 {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := svc.Enroll(ctx, "Chess Club", fmt.Sprintf("racer%d@mergington.edu", i))
					switch err {
					case nil:
						accepted.Add(1)
					case activity.ErrActivityFull:
						full.Add(1)
					}
				}(i)
			}
			wg.Wait()

			Convey("Then exactly the free spots are taken", func() {
				So(accepted.Load(), ShouldEqual, 10)
				So(full.Load(), ShouldEqual, 90)

				club, _ := svc.Get(ctx, "Chess Club")
				So(len(club.Participants), ShouldEqual, club.MaxParticipants)
			})

			Convey("Then the journal eventually holds every accepted signup", func() {
				So(len(waitForChanges(ctx, svc, 10)), ShouldEqual, 10)
				So(svc.GetStats()["journalLength"], ShouldEqual, 10)
			})
		})

		Convey("When an enrollment is reversed", func() {
			_, err := svc.Enroll(ctx, "Drama Club", "actor@mergington.edu")
			So(err, ShouldBeNil)
			_, err = svc.Unenroll(ctx, "Drama Club", "actor@mergington.edu")
			So(err, ShouldBeNil)

			Convey("Then both changes are journaled", func() {
				changes := waitForChanges(ctx, svc, 2)
				So(len(changes), ShouldEqual, 2)

				actions := map[model.Action]bool{}
				for _, c := range changes {
					actions[c.Action] = true
				}
				So(actions[model.ActionEnrolled], ShouldBeTrue)
				So(actions[model.ActionUnenrolled], ShouldBeTrue)
			})
		})
	})
}
