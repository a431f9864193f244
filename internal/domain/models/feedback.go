package models

// Feedback is a parent's rating of an assistant answer.
type Feedback string

const (
	FeedbackPositive Feedback = "positive"
	FeedbackNegative Feedback = "negative"
)

func (f Feedback) IsValid() bool {
	return f == FeedbackPositive || f == FeedbackNegative
}
