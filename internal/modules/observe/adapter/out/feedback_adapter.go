package out

import (
	"context"

	feedbackdto "passby/internal/modules/feedback/dto"
	feedbackin "passby/internal/modules/feedback/port/in"
	observeout "passby/internal/modules/observe/port/out"
)

// FeedbackAdapter forwards observe cues into the feedback module. The
// feedback usecase already swallows sink failures, so the adapter only has
// to translate the cue name.
type FeedbackAdapter struct {
	feedback feedbackin.Usecase
}

var _ observeout.FeedbackPort = (*FeedbackAdapter)(nil)

func NewFeedbackAdapter(feedback feedbackin.Usecase) *FeedbackAdapter {
	return &FeedbackAdapter{feedback: feedback}
}

func (a *FeedbackAdapter) Emit(ctx context.Context, cue observeout.Cue) {
	_ = a.feedback.Emit(ctx, feedbackdto.EmitInput{Kind: string(cue)})
}
