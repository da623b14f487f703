package order

// Milestone steps shown by progress trackers. The eight non-terminal states collapse
// into four coarse steps.
const (
	MilestoneNone      = -1
	MilestoneConfirmed = 0
	MilestonePreparing = 1
	MilestoneOnTheWay  = 2
	MilestoneDelivered = 3
)

// Progress is the tracker view of a status. A cancelled order shows a banner instead
// of a step.
type Progress struct {
	Step      int
	Cancelled bool
}

// ProgressOf maps a status onto its milestone step.
func ProgressOf(s Status) Progress {
	switch s {
	case Confirmed:
		return Progress{Step: MilestoneConfirmed}
	case Preparing, ReadyForPickup, AssignedToDriver, PickedUp:
		return Progress{Step: MilestonePreparing}
	case InTransit:
		return Progress{Step: MilestoneOnTheWay}
	case Delivered:
		return Progress{Step: MilestoneDelivered}
	case Cancelled:
		return Progress{Step: MilestoneNone, Cancelled: true}
	default:
		return Progress{Step: MilestoneNone}
	}
}

// IsLit reports whether milestone step is reached.
func (p Progress) IsLit(step int) bool {
	return !p.Cancelled && p.Step >= step
}
