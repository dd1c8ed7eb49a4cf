package domain

var Milestones = []int{1, 5, 10, 25, 50, 100}

type MilestoneProgress struct {
	Previous int
	Next     int
	Percent  float64
	Reached  []int
}

// Milestone locates total between two consecutive milestones. Past the
// last milestone the bar stays full.
func Milestone(total int) MilestoneProgress {
	out := MilestoneProgress{}
	idx := -1
	for i, m := range Milestones {
		if total < m {
			idx = i
			break
		}
		out.Reached = append(out.Reached, m)
	}
	last := Milestones[len(Milestones)-1]
	switch {
	case idx == -1:
		out.Previous, out.Next, out.Percent = last, last, 100
		return out
	case idx > 0:
		out.Previous = Milestones[idx-1]
	}
	out.Next = Milestones[idx]
	out.Percent = float64(total-out.Previous) / float64(out.Next-out.Previous) * 100
	return out
}
