package wellbeing

// Window literals accepted for score computation and trend lookups.
const (
	Window7d  = "7d"
	Window30d = "30d"
)

// ValidWindow reports whether w is one of the two accepted time windows.
func ValidWindow(w string) bool {
	return w == Window7d || w == Window30d
}

// Trend returns the signed delta between the current score and the most
// recent previously stored score for the same subject and window, or nil
// when no prior score exists. Retrieval of the prior value belongs to
// the caller.
func Trend(current int, previous *int) *int {
	if previous == nil {
		return nil
	}
	delta := current - *previous
	return &delta
}
