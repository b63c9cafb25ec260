package wagerqueue

// AutoPostJob posts the round once every card in play is complete. RoundDate
// keeps River's by-args uniqueness to one auto-post per round day.
type AutoPostJob struct {
	RoundDate string `json:"round_date"`
}

// Kind returns the job type identifier for River
func (AutoPostJob) Kind() string { return "wager_auto_post" }
