package session

import (
	"context"

	"github.com/to404hanga/codestudio_arena/event"
	"github.com/to404hanga/codestudio_arena/model"
)

const (
	PromptDiscardChanges = "You have unsaved changes. Discard them and switch problem?"
	PromptExit           = "You have unsaved changes. Leave the contest anyway?"
)

// Confirmer 向用户确认一个可能丢失修改的操作
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Confirmed 预先给定的确认结果, 用于请求参数里携带 confirm 的场景
func Confirmed(ok bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) {
		return ok, nil
	})
}

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarn    NoticeLevel = "warn"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Presenter 把通知和跳转推送给前端
type Presenter interface {
	Notify(ctx context.Context, eventID string, notice Notice)
	Redirect(ctx context.Context, eventID, path string)
}

// Publisher 会话审计事件
type Publisher interface {
	Publish(ctx context.Context, msg *event.SessionMessage)
}

// Journal 本地运行/提交记录
type Journal interface {
	Record(ctx context.Context, attempt *model.Attempt) error
}

type nopPresenter struct{}

func (nopPresenter) Notify(context.Context, string, Notice)   {}
func (nopPresenter) Redirect(context.Context, string, string) {}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, *event.SessionMessage) {}

type nopJournal struct{}

func (nopJournal) Record(context.Context, *model.Attempt) error { return nil }
