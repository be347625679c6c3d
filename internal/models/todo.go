package models

// Todo is a single task owned by one user. CreatorID is set at creation and
// never changes. CompletedAt holds a Unix-millisecond timestamp and is nil
// exactly when Completed is false.
type Todo struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	CreatorID   int64  `json:"creatorId"`
}
