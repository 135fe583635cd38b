package form

import "thelab/models"

// FormTarget is the part of the state machine the presenter may touch.
type FormTarget interface {
	Reset()
	ImposeError(field models.FieldKey, message string)
}

// Presenter maps a classified submission result to its side effect.
// It holds no business logic: success resets the form, a conflict becomes an
// inline field error, a failure becomes an error notification.
type Presenter struct {
	notifier       Notifier
	warnOnConflict bool
}

// NewPresenter builds a presenter. A nil notifier logs notifications.
// warnOnConflict additionally raises a warning notification for conflicts.
func NewPresenter(notifier Notifier, warnOnConflict bool) *Presenter {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Presenter{notifier: notifier, warnOnConflict: warnOnConflict}
}

// Present applies result to target.
func (p *Presenter) Present(result models.SubmissionResult, target FormTarget) {
	p.present(result, target, p.warnOnConflict)
}

// PresentExternal applies the result of a submission whose payload did not
// come from the form. Conflicts always raise a warning notification.
func (p *Presenter) PresentExternal(result models.SubmissionResult, target FormTarget) {
	p.present(result, target, true)
}

func (p *Presenter) present(result models.SubmissionResult, target FormTarget, warnOnConflict bool) {
	switch result.Kind {
	case models.ResultSuccess:
		p.notifier.Notify(NotifySuccess, result.Message)
		target.Reset()

	case models.ResultConflict:
		// Current values and touched flags stay as they are
		target.ImposeError(result.Field, result.Message)
		if warnOnConflict {
			p.notifier.Notify(NotifyWarning, result.Message)
		}

	default:
		msg := result.Message
		if msg == "" {
			msg = models.MsgUnexpectedError
		}
		p.notifier.Notify(NotifyError, msg)
	}
}
