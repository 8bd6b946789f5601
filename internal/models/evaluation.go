package models

import "time"

type Ratings struct {
	Beauty     int `json:"beauty" validate:"min=1,max=5"`
	Boring     int `json:"boring" validate:"min=1,max=5"`
	Depressing int `json:"depressing" validate:"min=1,max=5"`
	Lively     int `json:"lively" validate:"min=1,max=5"`
	Wealthy    int `json:"wealthy" validate:"min=1,max=5"`
	Safe       int `json:"safe" validate:"min=1,max=5"`
}

// Raw is the unaveraged ambiance score, in [-8, 20] for valid ratings.
func (r Ratings) Raw() int {
	return r.Beauty + r.Lively + r.Wealthy + r.Safe - r.Boring - r.Depressing
}

type Evaluation struct {
	ID          string    `db:"id" json:"id"`
	EvaluatorID string    `db:"evaluator_id" json:"evaluator_id"`
	MediaID     string    `db:"media_id" json:"media_id"`
	// flattened into the row and the JSON body
	Ratings
	Comment     string    `db:"comment" json:"comment"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EvaluationPatch carries the fields supplied to an update; nil means untouched.
type EvaluationPatch struct {
	Beauty     *int    `json:"beauty" validate:"omitnil,min=1,max=5"`
	Boring     *int    `json:"boring" validate:"omitnil,min=1,max=5"`
	Depressing *int    `json:"depressing" validate:"omitnil,min=1,max=5"`
	Lively     *int    `json:"lively" validate:"omitnil,min=1,max=5"`
	Wealthy    *int    `json:"wealthy" validate:"omitnil,min=1,max=5"`
	Safe       *int    `json:"safe" validate:"omitnil,min=1,max=5"`
	Comment    *string `json:"comment" validate:"omitnil,min=1"`
}

func (p EvaluationPatch) ApplyTo(e *Evaluation) {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&e.Beauty, p.Beauty)
	set(&e.Boring, p.Boring)
	set(&e.Depressing, p.Depressing)
	set(&e.Lively, p.Lively)
	set(&e.Wealthy, p.Wealthy)
	set(&e.Safe, p.Safe)
	if p.Comment != nil {
		e.Comment = *p.Comment
	}
}
