package ports

type OutcomeRecorder interface {
	Submission(outcome string)
	Assignment(outcome string)
	Update(outcome string)
}

type NopRecorder struct{}

func (NopRecorder) Submission(string) {}
func (NopRecorder) Assignment(string) {}
func (NopRecorder) Update(string)     {}
