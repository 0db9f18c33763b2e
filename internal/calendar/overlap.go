package calendar

import (
	"slices"
	"strings"

	"github.com/openlot/driveboard/internal/appointment"
)

// Placement is the horizontal position assigned to an appointment among the
// colliding bookings of one day.
type Placement struct {
	ColumnIndex  int // 0-based column within the cluster
	TotalColumns int // cluster size; 1 means full width
}

// GroupOverlaps partitions one day's appointments into overlap clusters and
// assigns each appointment a column. Colliding bookings get distinct,
// densely-packed columns; an appointment with no collisions spans the full
// width.
//
// Clustering is transitive: an appointment joins the current cluster if it
// overlaps any member so far, so a chain A-B, B-C lands in one cluster even
// when A and C do not touch. Intervals are half-open, so back-to-back
// bookings never collide. Ordering is by start time with ID as tie-break,
// which makes the result independent of input order.
//
// Callers must pass appointments from a single calendar day; the week view
// runs this once per day, never across the whole week.
func GroupOverlaps(appts []*appointment.Appointment) map[string]Placement {
	placements := make(map[string]Placement, len(appts))
	if len(appts) == 0 {
		return placements
	}

	sorted := slices.Clone(appts)
	slices.SortFunc(sorted, func(a, b *appointment.Appointment) int {
		if c := a.ScheduledStart.Compare(b.ScheduledStart); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	cluster := []*appointment.Appointment{sorted[0]}
	closeCluster := func() {
		for i, member := range cluster {
			placements[member.ID] = Placement{ColumnIndex: i, TotalColumns: len(cluster)}
		}
	}

	for _, a := range sorted[1:] {
		joined := false
		for _, member := range cluster {
			if a.OverlapsWith(member) {
				joined = true
				break
			}
		}
		if joined {
			cluster = append(cluster, a)
			continue
		}
		closeCluster()
		cluster = []*appointment.Appointment{a}
	}
	closeCluster()

	return placements
}
